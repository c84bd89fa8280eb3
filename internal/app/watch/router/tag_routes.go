/**
 * 路由:标签路由
 * @author: sun977
 * @date: 2025.11.21
 * @description: 标签查询路由,需要JWT认证
 * @func:
 */
package router

import (
	"github.com/gin-gonic/gin"
)

// setupTagRoutes 设置标签路由
func (r *Router) setupTagRoutes(api *gin.RouterGroup) {
	tags := api.Group("/tags")
	tags.Use(r.middlewareManager.GinJWTAuthMiddleware())
	{
		tags.GET("", r.tagHandler.ListTags)
		tags.GET("/:tag/hosts", r.tagHandler.ListHostsByTag)
	}
}
