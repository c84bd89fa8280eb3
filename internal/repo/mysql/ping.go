/**
 * 探测仓库层:探测记录数据访问
 * @author: sun977
 * @date: 2025.11.21
 * @description: 探测记录(Ping)的数据访问，记录不可变，只有创建和查询
 * @func:单纯数据访问,不应该包含业务逻辑
 */
package mysql

import (
	"context"
	"errors"

	"neowatch/internal/model"

	"gorm.io/gorm"
)

// PingRepository 探测记录仓库结构体
type PingRepository struct {
	db *gorm.DB // 数据库连接
}

// NewPingRepository 创建探测记录仓库实例
func NewPingRepository(db *gorm.DB) *PingRepository {
	return &PingRepository{
		db: db,
	}
}

// CreatePing 创建探测记录
// 逐包明细和统计汇总随主记录一并写入(同一事务)
// 主机外键无效时返回错误
func (r *PingRepository) CreatePing(ctx context.Context, ping *model.Ping) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 校验主机引用有效
		var count int64
		if err := tx.Model(&model.Host{}).Where("id = ?", ping.HostID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return model.ErrHostNotFound
		}

		// gorm级联创建Icmps和Stats子记录
		return tx.Omit("Host").Create(ping).Error
	})
}

// ListPings 按过滤器查询探测记录
// 按创建顺序稳定排序，最新的在最后
func (r *PingRepository) ListPings(ctx context.Context, filter *model.PingFilter) ([]*model.Ping, error) {
	query := r.db.WithContext(ctx).Model(&model.Ping{}).
		Preload("Icmps").
		Preload("Stats").
		Preload("Host").
		Preload("Host.Tags")

	if filter != nil {
		if filter.HostID != 0 {
			query = query.Where("host_id = ?", filter.HostID)
		}
		if filter.UserID != 0 {
			query = query.Where("user_id = ?", filter.UserID)
		}
	}

	var pings []*model.Ping
	err := query.Order("created_at ASC, id ASC").Find(&pings).Error
	if pings == nil {
		pings = []*model.Ping{}
	}
	return pings, err
}

// GetLatestPingByHost 获取主机最近一次探测记录
// 未找到时返回 nil, nil
func (r *PingRepository) GetLatestPingByHost(ctx context.Context, hostID uint) (*model.Ping, error) {
	var ping model.Ping
	err := r.db.WithContext(ctx).
		Preload("Icmps").
		Preload("Stats").
		Where("host_id = ?", hostID).
		Order("created_at DESC, id DESC").
		First(&ping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ping, nil
}
