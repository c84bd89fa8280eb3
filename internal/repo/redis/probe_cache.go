/**
 * 探测仓库层:最近探测结果缓存
 * @author: sun977
 * @date: 2025.11.21
 * @description: 按主机缓存最近一次探测记录(Redis存储,适合多实例部署)
 * @func:单纯数据访问,不应该包含业务逻辑
 */
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"neowatch/internal/model"

	"github.com/go-redis/redis/v8"
)

// ProbeCacheRepository 最近探测结果缓存库
// client为nil时所有操作降级为空操作，Redis是可选依赖
type ProbeCacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProbeCacheRepository 创建探测缓存库实例
func NewProbeCacheRepository(client *redis.Client, ttl time.Duration) *ProbeCacheRepository {
	return &ProbeCacheRepository{
		client: client,
		ttl:    ttl,
	}
}

// StoreLatest 写入主机的最近探测记录
func (r *ProbeCacheRepository) StoreLatest(ctx context.Context, hostID uint, ping *model.Ping) error {
	if r.client == nil {
		return nil
	}

	data, err := json.Marshal(ping)
	if err != nil {
		return fmt.Errorf("failed to marshal ping: %w", err)
	}

	key := r.latestKey(hostID)
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store latest ping: %w", err)
	}
	return nil
}

// GetLatest 读取主机的最近探测记录
// 缓存未命中返回 nil, nil，由调用方回源数据库
func (r *ProbeCacheRepository) GetLatest(ctx context.Context, hostID uint) (*model.Ping, error) {
	if r.client == nil {
		return nil, nil
	}

	data, err := r.client.Get(ctx, r.latestKey(hostID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest ping: %w", err)
	}

	var ping model.Ping
	if err := json.Unmarshal(data, &ping); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached ping: %w", err)
	}
	return &ping, nil
}

// Invalidate 清除主机的缓存(主机删除时调用)
func (r *ProbeCacheRepository) Invalidate(ctx context.Context, hostID uint) error {
	if r.client == nil {
		return nil
	}
	return r.client.Del(ctx, r.latestKey(hostID)).Err()
}

// latestKey 生成缓存键[KEY:probe:latest:{hostID}]
func (r *ProbeCacheRepository) latestKey(hostID uint) string {
	return fmt.Sprintf("probe:latest:%d", hostID)
}
