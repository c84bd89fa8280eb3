/**
 * 路由:主机路由
 * @author: sun977
 * @date: 2025.11.21
 * @description: 主机增删改查路由,需要JWT认证
 * @func:
 */
package router

import (
	"github.com/gin-gonic/gin"
)

// setupHostRoutes 设置主机管理路由
func (r *Router) setupHostRoutes(api *gin.RouterGroup) {
	hosts := api.Group("/hosts")
	hosts.Use(r.middlewareManager.GinJWTAuthMiddleware())
	{
		hosts.POST("", r.hostHandler.CreateHost)
		hosts.GET("", r.hostHandler.ListHosts)
		hosts.GET("/:hostId", r.hostHandler.GetHost)
		hosts.PUT("/:hostId", r.hostHandler.UpdateHost)
		hosts.DELETE("/:hostId", r.hostHandler.DeleteHost)

		// 探测相关的主机子路由
		// GET 树上 latest 是静态段,POST 树上 count 是参数段,互不冲突
		hosts.POST("/:hostId/pings/:count", r.pingHandler.RunProbe)
		hosts.GET("/:hostId/pings", r.pingHandler.ListHostPings)
		hosts.GET("/:hostId/pings/latest", r.pingHandler.GetLatestHostPing)
	}
}
