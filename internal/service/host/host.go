/**
 * 服务层:主机管理服务
 * @author: sun977
 * @date: 2025.11.21
 * @description: 主机CRUD与标签查询的业务逻辑
 * @func:
 *   - CreateHost/GetHost/ListHosts/UpdateHost/DeleteHost
 *   - ListTags/ListHostsByTag
 */
package host

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"neowatch/internal/model"
	"neowatch/internal/pkg/logger"
	"neowatch/internal/repo/mysql"
	redisRepo "neowatch/internal/repo/redis"
)

// HostService 主机管理服务
type HostService struct {
	hostRepo   *mysql.HostRepository
	probeCache *redisRepo.ProbeCacheRepository
}

// NewHostService 创建主机管理服务实例
func NewHostService(hostRepo *mysql.HostRepository, probeCache *redisRepo.ProbeCacheRepository) *HostService {
	return &HostService{
		hostRepo:   hostRepo,
		probeCache: probeCache,
	}
}

// CreateHost 创建主机
func (s *HostService) CreateHost(ctx context.Context, req *model.CreateHostRequest) (*model.HostResponse, error) {
	if err := validateHostFields(req.Name, req.Address); err != nil {
		return nil, err
	}

	host := &model.Host{
		Name:    req.Name,
		Address: req.Address,
	}
	if err := s.hostRepo.CreateHost(ctx, host, req.Tags); err != nil {
		return nil, err
	}

	logger.LogBusinessOperation("host_create", 0, "", "", "success", "host created", map[string]interface{}{
		"host_id": host.ID,
		"address": host.Address,
	})

	return model.NewHostResponse(host), nil
}

// GetHost 根据ID获取主机
func (s *HostService) GetHost(ctx context.Context, id uint) (*model.HostResponse, error) {
	host, err := s.hostRepo.GetHostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if host == nil {
		return nil, model.ErrHostNotFound
	}
	return model.NewHostResponse(host), nil
}

// ListHosts 按过滤器查询主机列表
func (s *HostService) ListHosts(ctx context.Context, filter *model.HostFilter) ([]*model.HostResponse, error) {
	hosts, err := s.hostRepo.ListHosts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return model.NewHostResponseList(hosts), nil
}

// UpdateHost 更新主机
// 请求携带tags时全量替换现有标签集合，不做合并
func (s *HostService) UpdateHost(ctx context.Context, id uint, req *model.UpdateHostRequest) (*model.HostResponse, error) {
	if err := validateHostFields(req.Name, req.Address); err != nil {
		return nil, err
	}

	host := &model.Host{
		ID:      id,
		Name:    req.Name,
		Address: req.Address,
	}
	replaceTags := req.Tags != nil

	if err := s.hostRepo.UpdateHost(ctx, host, req.Tags, replaceTags); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrHostNotFound
		}
		return nil, err
	}

	// 返回值统一经过读路径，保证标签归一化和时间戳一致
	return s.GetHost(ctx, id)
}

// DeleteHost 删除主机
// 级联删除标签关联和探测记录，并使最近探测缓存失效
func (s *HostService) DeleteHost(ctx context.Context, id uint) error {
	err := s.hostRepo.DeleteHost(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ErrHostNotFound
		}
		return err
	}

	if s.probeCache != nil {
		// 缓存清理失败不影响删除结果
		if cacheErr := s.probeCache.Invalidate(ctx, id); cacheErr != nil {
			logger.LogError(cacheErr, "", 0, "", "probe_cache_invalidate", map[string]interface{}{
				"host_id": id,
			})
		}
	}

	logger.LogBusinessOperation("host_delete", 0, "", "", "success", "host deleted", map[string]interface{}{
		"host_id": id,
	})
	return nil
}

// ListTags 获取全部标签名列表
func (s *HostService) ListTags(ctx context.Context) ([]string, error) {
	return s.hostRepo.ListTagNames(ctx)
}

// ListHostsByTag 获取携带指定标签的主机列表
// 标签名按子串匹配
func (s *HostService) ListHostsByTag(ctx context.Context, tag string) ([]*model.HostResponse, error) {
	return s.ListHosts(ctx, &model.HostFilter{TagContains: tag})
}

// validateHostFields 校验主机必填字段
func validateHostFields(name, address string) error {
	if name == "" {
		return model.NewValidationError("name", "name is required")
	}
	if address == "" {
		return model.NewValidationError("address", "address is required")
	}
	return nil
}
