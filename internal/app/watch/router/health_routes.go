/**
 * 路由:健康检查路由
 * @author: sun977
 * @date: 2025.11.21
 * @description: 存活与就绪检查路由,无需认证
 * @func:
 */
package router

import (
	"github.com/gin-gonic/gin"
)

// setupHealthRoutes 设置健康检查路由
func (r *Router) setupHealthRoutes(root *gin.RouterGroup) {
	root.GET("/health", r.healthHandler.Health)
	root.GET("/health/ready", r.healthHandler.Ready)
}
