/**
 * 工具类:通用工具
 * @author: sun977
 * @date: 2025.11.21
 * @description: 请求ID生成与Gin上下文取值辅助
 * @func:
 *   - GenerateRequestID: 生成请求唯一标识
 *   - GetCurrentUserID: 从Gin上下文取当前用户ID
 */
package utils

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/gin-gonic/gin"
)

// ContextKeyUserID 认证中间件写入Gin上下文的用户ID键名
const ContextKeyUserID = "user_id"

// GenerateRequestID 生成请求唯一标识
func GenerateRequestID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}

// GetCurrentUserID 从Gin上下文获取当前认证用户ID
// 未认证时返回0
func GetCurrentUserID(c *gin.Context) uint {
	value, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0
	}
	if id, ok := value.(uint); ok {
		return id
	}
	return 0
}
