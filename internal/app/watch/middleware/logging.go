/**
 * 中间件:日志中间件
 * @author: sun977
 * @date: 2025.11.21
 * @description: 请求日志中间件，负责请求ID传播和访问日志采集
 * @func:
 *   - GinLoggingMiddleware: 访问日志中间件
 */
package middleware

import (
	"time"

	"neowatch/internal/pkg/logger"
	"neowatch/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GinLoggingMiddleware 访问日志中间件
// 请求没有携带X-Request-ID时生成一个，并在响应头中回传
func (m *MiddlewareManager) GinLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = utils.GenerateRequestID()
		}
		c.Header("X-Request-ID", requestID)
		c.Set("request_id", requestID)

		c.Next()

		logger.LogAccessRequest(c, startTime, requestID, utils.GetCurrentUserID(c))
	}
}
