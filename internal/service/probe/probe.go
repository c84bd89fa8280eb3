/**
 * 服务层:探测服务
 * @author: sun977
 * @date: 2025.11.21
 * @description: 执行主机探测并持久化结果，维护最近探测缓存
 * @func:
 *   - RunProbe: 探测并记录
 *   - ListPings/ListPingsByHost/GetLatestPing
 */
package probe

import (
	"context"

	"neowatch/internal/model"
	"neowatch/internal/pkg/logger"
	probePkg "neowatch/internal/pkg/probe"
	"neowatch/internal/repo/mysql"
	redisRepo "neowatch/internal/repo/redis"
)

// ProbeService 探测服务
type ProbeService struct {
	runner     *probePkg.Runner
	hostRepo   *mysql.HostRepository
	pingRepo   *mysql.PingRepository
	probeCache *redisRepo.ProbeCacheRepository
}

// NewProbeService 创建探测服务实例
func NewProbeService(runner *probePkg.Runner, hostRepo *mysql.HostRepository, pingRepo *mysql.PingRepository, probeCache *redisRepo.ProbeCacheRepository) *ProbeService {
	return &ProbeService{
		runner:     runner,
		hostRepo:   hostRepo,
		pingRepo:   pingRepo,
		probeCache: probeCache,
	}
}

// RunProbe 对主机执行count次探测并持久化结果
// userID为触发探测的用户，可为nil
// 部分丢包是正常结果；重试策略归属调用方，这里不做自动重试
func (s *ProbeService) RunProbe(ctx context.Context, hostID uint, count int, userID *uint) (*model.Ping, error) {
	host, err := s.hostRepo.GetHostByID(ctx, hostID)
	if err != nil {
		return nil, err
	}
	if host == nil {
		return nil, model.ErrHostNotFound
	}

	result, err := s.runner.Probe(ctx, host.Address, count)
	if err != nil {
		logger.LogBusinessOperation("probe_run", derefUserID(userID), "", "", "failed", "probe failed", map[string]interface{}{
			"host_id": hostID,
			"address": host.Address,
			"count":   count,
			"error":   err.Error(),
		})
		return nil, err
	}

	ping := buildPing(host, userID, result)
	if err := s.pingRepo.CreatePing(ctx, ping); err != nil {
		return nil, err
	}
	ping.Host = host

	// 写穿最近探测缓存，失败只记录不影响结果
	if s.probeCache != nil {
		if cacheErr := s.probeCache.StoreLatest(ctx, hostID, ping); cacheErr != nil {
			logger.LogError(cacheErr, "", derefUserID(userID), "", "probe_cache_store", map[string]interface{}{
				"host_id": hostID,
			})
		}
	}

	logger.LogBusinessOperation("probe_run", derefUserID(userID), "", "", "success", "probe completed", map[string]interface{}{
		"host_id":     hostID,
		"address":     host.Address,
		"transmitted": ping.Stats.Transmitted,
		"lost":        ping.Stats.Lost,
	})

	return ping, nil
}

// ListPings 查询全部探测记录，按创建顺序排列
func (s *ProbeService) ListPings(ctx context.Context) ([]*model.Ping, error) {
	return s.pingRepo.ListPings(ctx, nil)
}

// ListPingsByHost 查询指定主机的探测记录
func (s *ProbeService) ListPingsByHost(ctx context.Context, hostID uint) ([]*model.Ping, error) {
	return s.pingRepo.ListPings(ctx, &model.PingFilter{HostID: hostID})
}

// GetLatestPing 获取主机最近一次探测记录
// 先查缓存，未命中回源数据库；主机存在但从未被探测过时返回 nil, nil
func (s *ProbeService) GetLatestPing(ctx context.Context, hostID uint) (*model.Ping, error) {
	host, err := s.hostRepo.GetHostByID(ctx, hostID)
	if err != nil {
		return nil, err
	}
	if host == nil {
		return nil, model.ErrHostNotFound
	}

	if s.probeCache != nil {
		cached, cacheErr := s.probeCache.GetLatest(ctx, hostID)
		if cacheErr != nil {
			logger.LogError(cacheErr, "", 0, "", "probe_cache_get", map[string]interface{}{
				"host_id": hostID,
			})
		} else if cached != nil {
			return cached, nil
		}
	}

	return s.pingRepo.GetLatestPingByHost(ctx, hostID)
}

// buildPing 由探测结果构造持久化记录
func buildPing(host *model.Host, userID *uint, result *probePkg.ProbeResult) *model.Ping {
	icmps := make([]model.Icmp, 0, len(result.Packets))
	for _, pkt := range result.Packets {
		icmps = append(icmps, model.Icmp{
			Seq:  pkt.Seq,
			TTL:  pkt.TTL,
			Time: pkt.Time,
		})
	}

	return &model.Ping{
		IP:     result.IP,
		HostID: host.ID,
		UserID: userID,
		Icmps:  icmps,
		Stats: &model.Stats{
			Transmitted: result.Statistics.Transmitted,
			Received:    result.Statistics.Received,
			Lost:        result.Statistics.Lost,
			Min:         result.Statistics.Min,
			Avg:         result.Statistics.Avg,
			Max:         result.Statistics.Max,
			Stddev:      result.Statistics.Stddev,
		},
	}
}

// derefUserID 解引用可空用户ID，nil时返回0
func derefUserID(userID *uint) uint {
	if userID == nil {
		return 0
	}
	return *userID
}
