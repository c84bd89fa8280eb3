/**
 * 测试:会话认证服务
 * @author: sun977
 * @date: 2025.11.21
 * @description: 登录换令牌与令牌校验的服务层测试
 * @func:
 */
package auth

import (
	"context"
	"testing"
	"time"

	"neowatch/internal/model"
	authPkg "neowatch/internal/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionService(t *testing.T, tokenTTL time.Duration) (*SessionService, *UserService) {
	t.Helper()

	userService := newTestUserService(t)
	jwtManager := authPkg.NewJWTManager("test-secret-0123456789abcdef", "neowatch-test", tokenTTL)
	return NewSessionService(userService, jwtManager), userService
}

func TestSessionService_SignIn(t *testing.T) {
	svc, userService := newTestSessionService(t, time.Hour)
	ctx := context.Background()

	info, err := userService.Register(ctx, &model.RegisterRequest{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	resp, err := svc.SignIn(ctx, &model.SignInRequest{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.True(t, resp.Auth)
	require.NotEmpty(t, resp.Token)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, info.ID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestSessionService_SignInFailuresAreGeneric(t *testing.T) {
	svc, userService := newTestSessionService(t, time.Hour)
	ctx := context.Background()

	_, err := userService.Register(ctx, &model.RegisterRequest{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	// 邮箱不存在和密码错误返回同一个错误,不向调用方泄露差别
	_, errUnknown := svc.SignIn(ctx, &model.SignInRequest{Email: "nobody@example.com", Password: "secret123"})
	_, errWrongPass := svc.SignIn(ctx, &model.SignInRequest{Email: "alice@example.com", Password: "wrong"})

	assert.ErrorIs(t, errUnknown, model.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, model.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestSessionService_ValidateTokenRejectsTampered(t *testing.T) {
	svc, userService := newTestSessionService(t, time.Hour)
	ctx := context.Background()

	_, err := userService.Register(ctx, &model.RegisterRequest{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	resp, err := svc.SignIn(ctx, &model.SignInRequest{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	tampered := resp.Token + "x"
	_, err = svc.ValidateToken(tampered)
	assert.Error(t, err)
}

func TestSessionService_ValidateTokenRejectsExpired(t *testing.T) {
	svc, userService := newTestSessionService(t, -time.Minute)
	ctx := context.Background()

	_, err := userService.Register(ctx, &model.RegisterRequest{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	resp, err := svc.SignIn(ctx, &model.SignInRequest{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, authPkg.ErrTokenExpired)
}
