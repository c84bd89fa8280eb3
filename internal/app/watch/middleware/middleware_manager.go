/**
 * 中间件:中间件管理器
 * @author: sun977
 * @date: 2025.11.21
 * @description: 统一管理Gin中间件的创建与配置
 * @func:
 *   - NewMiddlewareManager: 创建中间件管理器
 */
package middleware

import (
	"sync"

	"neowatch/internal/config"
	"neowatch/internal/service/auth"
)

// MiddlewareManager 中间件管理器
// 负责管理所有Gin框架的中间件，提供统一的中间件接口
type MiddlewareManager struct {
	sessionService *auth.SessionService   // 会话服务，用于JWT令牌验证
	securityConfig *config.SecurityConfig // 安全配置，用于中间件配置

	rateLimiter     RateLimiter
	rateLimiterOnce sync.Once
}

// NewMiddlewareManager 创建中间件管理器
func NewMiddlewareManager(sessionService *auth.SessionService, securityConfig *config.SecurityConfig) *MiddlewareManager {
	return &MiddlewareManager{
		sessionService: sessionService,
		securityConfig: securityConfig,
	}
}
