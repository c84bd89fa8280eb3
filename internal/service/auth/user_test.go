/**
 * 测试:用户服务
 * @author: sun977
 * @date: 2025.11.21
 * @description: 用户注册与信息维护的服务层测试
 * @func:
 */
package auth

import (
	"context"
	"testing"

	"neowatch/internal/config"
	"neowatch/internal/model"
	authPkg "neowatch/internal/pkg/auth"
	"neowatch/internal/pkg/database"
	"neowatch/internal/repo/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T) *UserService {
	t.Helper()

	db, err := database.NewSQLiteConnection(&config.SQLiteConfig{
		Path:     ":memory:",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Host{},
		&model.Ping{},
		&model.Icmp{},
		&model.Stats{},
	))

	return NewUserService(mysql.NewUserRepository(db), authPkg.NewPasswordManager(nil))
}

func TestUserService_Register(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	info, err := svc.Register(ctx, &model.RegisterRequest{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotZero(t, info.ID)
	assert.Equal(t, "alice", info.Name)
	assert.Equal(t, "alice@example.com", info.Email)

	// 落库的是哈希而非明文
	stored, err := svc.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.NotEmpty(t, stored.Password)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	req := &model.RegisterRequest{Name: "alice", Email: "dup@example.com", Password: "secret123"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, &model.RegisterRequest{Name: "bob", Email: "dup@example.com", Password: "other456"})
	assert.ErrorIs(t, err, model.ErrEmailAlreadyExists)
}

func TestUserService_RegisterValidation(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  *model.RegisterRequest
	}{
		{"缺少名称", &model.RegisterRequest{Email: "a@example.com", Password: "secret123"}},
		{"缺少邮箱", &model.RegisterRequest{Name: "a", Password: "secret123"}},
		{"非法邮箱", &model.RegisterRequest{Name: "a", Email: "not-an-email", Password: "secret123"}},
		{"密码过短", &model.RegisterRequest{Name: "a", Email: "a@example.com", Password: "123"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.req)
			assert.True(t, model.IsValidationError(err), "expected validation error, got %v", err)
		})
	}
}

func TestUserService_GetUserByID(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	info, err := svc.Register(ctx, &model.RegisterRequest{Name: "alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	got, err := svc.GetUserByID(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, info.Email, got.Email)

	_, err = svc.GetUserByID(ctx, 9999)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestUserService_UpdateUser(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	info, err := svc.Register(ctx, &model.RegisterRequest{Name: "alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	// 只改名称,邮箱与密码保持不变
	updated, err := svc.UpdateUser(ctx, info.ID, &model.UpdateUserRequest{Name: "alice2"})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	before, err := svc.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)

	// 改密码后哈希变化
	_, err = svc.UpdateUser(ctx, info.ID, &model.UpdateUserRequest{Password: "newsecret456"})
	require.NoError(t, err)

	after, err := svc.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, before.Password, after.Password)
}

func TestUserService_DeleteUser(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	info, err := svc.Register(ctx, &model.RegisterRequest{Name: "alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, info.ID))

	_, err = svc.GetUserByID(ctx, info.ID)
	assert.ErrorIs(t, err, model.ErrUserNotFound)

	err = svc.DeleteUser(ctx, info.ID)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}
