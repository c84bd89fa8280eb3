/**
 * 服务层:会话服务
 * @author: sun977
 * @date: 2025.11.21
 * @description: 登录认证与令牌验证的业务逻辑
 * @func:
 *   - SignIn: 邮箱密码登录，签发访问令牌
 *   - ValidateToken: 验证访问令牌并解析用户身份
 */
package auth

import (
	"context"

	"neowatch/internal/model"
	"neowatch/internal/pkg/auth"
	"neowatch/internal/pkg/logger"
)

// SessionService 会话服务
type SessionService struct {
	userService *UserService
	jwtManager  *auth.JWTManager
}

// NewSessionService 创建会话服务实例
func NewSessionService(userService *UserService, jwtManager *auth.JWTManager) *SessionService {
	return &SessionService{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

// SignIn 邮箱密码登录
// 认证失败统一返回ErrInvalidCredentials，对客户端不区分"用户不存在"和"密码错误"
func (s *SessionService) SignIn(ctx context.Context, req *model.SignInRequest) (*model.SignInResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, model.ErrInvalidCredentials
	}

	user, err := s.userService.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		logger.LogBusinessOperation("signin", 0, "", "", "failed", "signin rejected", map[string]interface{}{
			"email": req.Email,
		})
		return nil, model.ErrInvalidCredentials
	}

	// 密码比较为常量时间，防时序攻击
	match, err := s.verifyPassword(req.Password, user.Password)
	if err != nil || !match {
		logger.LogBusinessOperation("signin", user.ID, "", "", "failed", "signin rejected", map[string]interface{}{
			"email": req.Email,
		})
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	logger.LogBusinessOperation("signin", user.ID, "", "", "success", "signin succeeded", map[string]interface{}{
		"email": user.Email,
	})

	return &model.SignInResponse{Auth: true, Token: token}, nil
}

// ValidateToken 验证访问令牌并返回声明
// 供认证中间件调用
func (s *SessionService) ValidateToken(tokenString string) (*auth.JWTClaims, error) {
	return s.jwtManager.ValidateAccessToken(tokenString)
}

// verifyPassword 校验密码与存储哈希
func (s *SessionService) verifyPassword(password, encodedHash string) (bool, error) {
	return s.userService.passwordManager.VerifyPassword(password, encodedHash)
}
