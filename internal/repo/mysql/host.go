/**
 * 主机仓库层:主机数据访问
 * @author: sun977
 * @date: 2025.11.21
 * @description: 主机及标签关联的数据访问
 * @func:单纯数据访问,不应该包含业务逻辑
 */
package mysql

import (
	"context"
	"errors"

	"neowatch/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HostRepository 主机仓库结构体
// 负责处理主机及标签关联的数据访问，不包含业务逻辑
type HostRepository struct {
	db *gorm.DB // 数据库连接
}

// NewHostRepository 创建主机仓库实例
func NewHostRepository(db *gorm.DB) *HostRepository {
	return &HostRepository{
		db: db,
	}
}

// CreateHost 创建主机并关联标签
// 主机写入和标签关联在同一事务内完成
func (r *HostRepository) CreateHost(ctx context.Context, host *model.Host, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Create(host).Error; err != nil {
			return err
		}
		return r.attachTags(tx, host, tags)
	})
}

// GetHostByID 根据ID获取主机(预加载标签)
// 未找到时返回 nil, nil，由业务层处理
func (r *HostRepository) GetHostByID(ctx context.Context, id uint) (*model.Host, error) {
	var host model.Host
	err := r.db.WithContext(ctx).Preload("Tags").First(&host, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &host, nil
}

// ListHosts 按过滤器查询主机列表(预加载标签)
// 名称过滤为子串匹配；标签过滤匹配至少携带一个名称子串匹配标签的主机。
// 大小写敏感性遵循存储排序规则(MySQL默认utf8mb4排序不区分大小写)
func (r *HostRepository) ListHosts(ctx context.Context, filter *model.HostFilter) ([]*model.Host, error) {
	query := r.db.WithContext(ctx).Model(&model.Host{}).Preload("Tags")

	if filter != nil {
		if filter.NameContains != "" {
			query = query.Where("hosts.name LIKE ?", "%"+filter.NameContains+"%")
		}
		if filter.TagContains != "" {
			query = query.Where(
				"hosts.id IN (?)",
				r.db.Model(&model.HostTag{}).
					Select("host_tags.host_id").
					Joins("JOIN tags ON tags.id = host_tags.tag_id").
					Where("tags.name LIKE ?", "%"+filter.TagContains+"%"),
			)
		}
	}

	var hosts []*model.Host
	err := query.Order("hosts.id ASC").Find(&hosts).Error
	return hosts, err
}

// UpdateHost 更新主机，replaceTags为true时全量替换标签关联
// 先删后建避免关联表唯一约束冲突；与主机更新在同一事务内完成，
// 防止重建失败后出现可观测的零标签中间态
func (r *HostRepository) UpdateHost(ctx context.Context, host *model.Host, tags []string, replaceTags bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// MySQL的RowsAffected只统计值发生变更的行,相同值的更新返回0,
		// 存在性必须用读取判定
		var existing model.Host
		if err := tx.First(&existing, host.ID).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Host{}).Where("id = ?", host.ID).
			Updates(map[string]interface{}{"name": host.Name, "address": host.Address}).Error; err != nil {
			return err
		}

		if !replaceTags {
			return nil
		}

		if err := tx.Where("host_id = ?", host.ID).Delete(&model.HostTag{}).Error; err != nil {
			return err
		}
		return r.attachTags(tx, host, tags)
	})
}

// DeleteHost 删除主机
// 级联删除标签关联和探测记录(含逐包明细和统计汇总)，整体在一个事务内
// 未找到时返回 gorm.ErrRecordNotFound
func (r *HostRepository) DeleteHost(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var host model.Host
		if err := tx.First(&host, id).Error; err != nil {
			return err
		}

		// 删除探测记录的子表
		pingIDs := tx.Model(&model.Ping{}).Select("id").Where("host_id = ?", id)
		if err := tx.Where("ping_id IN (?)", pingIDs).Delete(&model.Icmp{}).Error; err != nil {
			return err
		}
		if err := tx.Where("ping_id IN (?)", pingIDs).Delete(&model.Stats{}).Error; err != nil {
			return err
		}
		if err := tx.Where("host_id = ?", id).Delete(&model.Ping{}).Error; err != nil {
			return err
		}

		// 删除标签关联和主机本身
		if err := tx.Where("host_id = ?", id).Delete(&model.HostTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Host{}, id).Error
	})
}

// ListTagNames 获取全部标签名列表
func (r *HostRepository) ListTagNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&model.Tag{}).
		Order("name ASC").Pluck("name", &names).Error
	if names == nil {
		names = []string{}
	}
	return names, err
}

// attachTags 为主机建立标签关联(find-or-create语义)
// 调用方必须已处于事务内
func (r *HostRepository) attachTags(tx *gorm.DB, host *model.Host, tags []string) error {
	host.Tags = host.Tags[:0]

	seen := make(map[string]struct{}, len(tags))
	for _, name := range tags {
		if name == "" {
			continue
		}
		// 同一请求内的重复标签只关联一次
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		tag, err := r.findOrCreateTag(tx, name)
		if err != nil {
			return err
		}

		if err := tx.Create(&model.HostTag{HostID: host.ID, TagID: tag.ID}).Error; err != nil {
			return err
		}
		host.Tags = append(host.Tags, tag)
	}
	return nil
}

// findOrCreateTag 按名称查找标签，不存在则创建
// 并发创建同名标签时，唯一约束让后写者失败，失败方退化为重读已存在的行
func (r *HostRepository) findOrCreateTag(tx *gorm.DB, name string) (*model.Tag, error) {
	var tag model.Tag
	err := tx.Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = model.Tag{Name: name}
	err = tx.Create(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// REPEATABLE READ下普通读走事务快照,看不到竞争事务刚提交的行,
		// 这里必须用锁定读取最新已提交版本(SQLite方言会忽略锁定子句)
		var existing model.Tag
		if readErr := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", name).First(&existing).Error; readErr != nil {
			return nil, readErr
		}
		return &existing, nil
	}
	return nil, err
}
