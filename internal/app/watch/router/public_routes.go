/**
 * 路由:公开路由
 * @author: sun977
 * @date: 2025.11.21
 * @description: 无需认证的注册与登录路由
 * @func:
 */
package router

import (
	"github.com/gin-gonic/gin"
)

// setupPublicRoutes 设置公开路由
func (r *Router) setupPublicRoutes(api *gin.RouterGroup) {
	// 用户注册
	api.POST("/users", r.userHandler.Register)
	// 用户登录,换取访问令牌
	api.POST("/signin", r.signInHandler.SignIn)
}
