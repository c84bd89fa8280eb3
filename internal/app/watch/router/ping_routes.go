/**
 * 路由:探测历史路由
 * @author: sun977
 * @date: 2025.11.21
 * @description: 全量探测历史查询路由,需要JWT认证
 * @func:
 */
package router

import (
	"github.com/gin-gonic/gin"
)

// setupPingRoutes 设置探测历史路由
func (r *Router) setupPingRoutes(api *gin.RouterGroup) {
	pings := api.Group("/pings")
	pings.Use(r.middlewareManager.GinJWTAuthMiddleware())
	{
		pings.GET("", r.pingHandler.ListPings)
	}
}
