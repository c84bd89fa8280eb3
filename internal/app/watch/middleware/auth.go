/**
 * 中间件:认证相关中间件
 * @author: sun977
 * @date: 2025.11.21
 * @description: 定义认证相关中间件
 * @func:
 *   - GinJWTAuthMiddleware: Gin JWT认证中间件
 *   - extractTokenFromGinHeader: 从Gin请求头中提取JWT令牌
 */
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"neowatch/internal/model"
	"neowatch/internal/pkg/logger"
	"neowatch/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GinJWTAuthMiddleware Gin JWT认证中间件
// 验证请求头中的JWT令牌，并将用户ID存储到Gin上下文中
// 认证每请求无状态；缺失头、格式错误、过期、签名无效均在到达任何仓库之前被拒绝
// 使用方式: router.Use(middlewareManager.GinJWTAuthMiddleware())
func (m *MiddlewareManager) GinJWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 从请求头中提取访问令牌
		accessToken, err := m.extractTokenFromGinHeader(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: model.ErrUnauthorized.Error()})
			c.Abort()
			return
		}

		// 验证令牌
		claims, err := m.sessionService.ValidateToken(accessToken)
		if err != nil {
			logger.LogError(err, c.GetHeader("X-Request-ID"), 0, c.ClientIP(), "token_validation", map[string]interface{}{
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			})
			c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: model.ErrUnauthorized.Error()})
			c.Abort()
			return
		}

		// 将用户身份写入上下文供后续处理器使用
		c.Set(utils.ContextKeyUserID, claims.UserID)
		c.Next()
	}
}

// extractTokenFromGinHeader 从Gin请求头中提取JWT令牌
// 期望格式: Authorization: Bearer <token>
func (m *MiddlewareManager) extractTokenFromGinHeader(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errors.New("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("empty bearer token")
	}

	return token, nil
}
