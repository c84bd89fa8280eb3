/**
 * 路由:用户路由
 * @author: sun977
 * @date: 2025.11.21
 * @description: 需要JWT认证的当前用户路由
 * @func:
 */
package router

import (
	"github.com/gin-gonic/gin"
)

// setupUserRoutes 设置用户自助路由
func (r *Router) setupUserRoutes(api *gin.RouterGroup) {
	user := api.Group("/users")
	user.Use(r.middlewareManager.GinJWTAuthMiddleware())
	{
		// 获取当前用户信息,响应不携带密码哈希
		user.GET("/me", r.userHandler.GetMe)
		// 更新当前用户信息
		user.PUT("/me", r.userHandler.UpdateMe)
		// 注销当前用户
		user.DELETE("/me", r.userHandler.DeleteMe)
	}
}
