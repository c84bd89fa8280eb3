/**
 * 测试:探测结果缓存
 * @author: sun977
 * @date: 2025.11.21
 * @description: 缓存仓储在无Redis时的降级行为测试
 * @func:
 */
package redis

import (
	"context"
	"testing"
	"time"

	"neowatch/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeCacheRepository_NilClientDegrades(t *testing.T) {
	repo := NewProbeCacheRepository(nil, time.Minute)
	ctx := context.Background()

	ping := &model.Ping{ID: 7, IP: "127.0.0.1", HostID: 3}

	// 无Redis时写入是no-op,读取返回未命中,都不报错
	require.NoError(t, repo.StoreLatest(ctx, 3, ping))

	got, err := repo.GetLatest(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Invalidate(ctx, 3))
}
