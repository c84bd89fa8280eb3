/**
 * 测试:主机服务
 * @author: sun977
 * @date: 2025.11.21
 * @description: 主机管理业务逻辑测试
 * @func:
 */
package host

import (
	"context"
	"testing"

	"neowatch/internal/config"
	"neowatch/internal/model"
	"neowatch/internal/pkg/database"
	"neowatch/internal/repo/mysql"
	redisRepo "neowatch/internal/repo/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHostService(t *testing.T) *HostService {
	t.Helper()

	db, err := database.NewSQLiteConnection(&config.SQLiteConfig{
		Path:     ":memory:",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Host{},
		&model.Tag{},
		&model.HostTag{},
		&model.Ping{},
		&model.Icmp{},
		&model.Stats{},
	))

	// 缓存客户端为空时降级为直查,测试无需Redis
	probeCache := redisRepo.NewProbeCacheRepository(nil, 0)
	return NewHostService(mysql.NewHostRepository(db), probeCache)
}

func TestHostService_CreateValidation(t *testing.T) {
	svc := newTestHostService(t)
	ctx := context.Background()

	_, err := svc.CreateHost(ctx, &model.CreateHostRequest{Address: "10.0.0.1"})
	assert.True(t, model.IsValidationError(err), "missing name should be a validation error, got %v", err)

	_, err = svc.CreateHost(ctx, &model.CreateHostRequest{Name: "web-1"})
	assert.True(t, model.IsValidationError(err), "missing address should be a validation error, got %v", err)
}

func TestHostService_CreateThenGet(t *testing.T) {
	svc := newTestHostService(t)
	ctx := context.Background()

	created, err := svc.CreateHost(ctx, &model.CreateHostRequest{
		Name:    "web-1",
		Address: "10.0.0.1",
		Tags:    []string{"prod", "prod", "web"},
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	// 请求内重复标签只关联一次
	assert.ElementsMatch(t, []string{"prod", "web"}, created.Tags)

	got, err := svc.GetHost(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "web-1", got.Name)
}

func TestHostService_GetNotFound(t *testing.T) {
	svc := newTestHostService(t)

	_, err := svc.GetHost(context.Background(), 404)
	assert.ErrorIs(t, err, model.ErrHostNotFound)
}

func TestHostService_UpdateTagSemantics(t *testing.T) {
	svc := newTestHostService(t)
	ctx := context.Background()

	created, err := svc.CreateHost(ctx, &model.CreateHostRequest{
		Name:    "web-1",
		Address: "10.0.0.1",
		Tags:    []string{"prod", "web"},
	})
	require.NoError(t, err)

	// 携带 tags 时全量替换
	updated, err := svc.UpdateHost(ctx, created.ID, &model.UpdateHostRequest{
		Name:    "web-1",
		Address: "10.0.0.2",
		Tags:    []string{"staging"},
	})
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.2", updated.Address)
	assert.Equal(t, []string{"staging"}, updated.Tags)

	// tags 为 nil 时保留原有标签
	updated, err = svc.UpdateHost(ctx, created.ID, &model.UpdateHostRequest{
		Name:    "web-1b",
		Address: "10.0.0.2",
	})
	require.NoError(t, err)
	assert.Equal(t, "web-1b", updated.Name)
	assert.Equal(t, []string{"staging"}, updated.Tags)

	// tags 为空数组时清空标签
	updated, err = svc.UpdateHost(ctx, created.ID, &model.UpdateHostRequest{
		Name:    "web-1b",
		Address: "10.0.0.2",
		Tags:    []string{},
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Tags)
}

func TestHostService_UpdateNotFound(t *testing.T) {
	svc := newTestHostService(t)

	_, err := svc.UpdateHost(context.Background(), 404, &model.UpdateHostRequest{Name: "x", Address: "y"})
	assert.ErrorIs(t, err, model.ErrHostNotFound)
}

func TestHostService_Delete(t *testing.T) {
	svc := newTestHostService(t)
	ctx := context.Background()

	created, err := svc.CreateHost(ctx, &model.CreateHostRequest{Name: "web-1", Address: "10.0.0.1"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteHost(ctx, created.ID))

	_, err = svc.GetHost(ctx, created.ID)
	assert.ErrorIs(t, err, model.ErrHostNotFound)

	err = svc.DeleteHost(ctx, created.ID)
	assert.ErrorIs(t, err, model.ErrHostNotFound)
}

func TestHostService_TagQueries(t *testing.T) {
	svc := newTestHostService(t)
	ctx := context.Background()

	_, err := svc.CreateHost(ctx, &model.CreateHostRequest{Name: "web-1", Address: "10.0.0.1", Tags: []string{"prod", "web"}})
	require.NoError(t, err)
	_, err = svc.CreateHost(ctx, &model.CreateHostRequest{Name: "db-1", Address: "10.0.0.2", Tags: []string{"prod"}})
	require.NoError(t, err)

	tags, err := svc.ListTags(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"prod", "web"}, tags)

	hosts, err := svc.ListHostsByTag(ctx, "prod")
	require.NoError(t, err)
	assert.Len(t, hosts, 2)

	hosts, err = svc.ListHostsByTag(ctx, "web")
	require.NoError(t, err)
	require.Len(t, hosts, 1)
	assert.Equal(t, "web-1", hosts[0].Name)
}
