/**
 * 中间件:安全相关中间件
 * @author: sun977
 * @date: 2025.11.21
 * @description: CORS跨域中间件
 * @func:
 *   - GinCORSMiddleware: CORS中间件
 */
package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// GinCORSMiddleware CORS中间件
// 按配置的白名单放行跨域请求，预检请求直接返回204
func (m *MiddlewareManager) GinCORSMiddleware() gin.HandlerFunc {
	cfg := &m.securityConfig.CORS

	allowMethods := strings.Join(cfg.AllowMethods, ", ")
	allowHeaders := strings.Join(cfg.AllowHeaders, ", ")
	maxAge := strconv.Itoa(int(cfg.MaxAge.Seconds()))

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && m.originAllowed(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", allowMethods)
			c.Header("Access-Control-Allow-Headers", allowHeaders)
			if cfg.AllowCredentials {
				c.Header("Access-Control-Allow-Credentials", "true")
			}
			if cfg.MaxAge > 0 {
				c.Header("Access-Control-Max-Age", maxAge)
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// originAllowed 检查来源是否在白名单中
func (m *MiddlewareManager) originAllowed(origin string) bool {
	for _, allowed := range m.securityConfig.CORS.AllowOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
