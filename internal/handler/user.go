/**
 * 处理器:用户管理
 * @author: sun977
 * @date: 2025.11.21
 * @description: 用户注册与当前用户信息维护
 * @func: Register / GetMe / UpdateMe / DeleteMe
 */
package handler

import (
	"net/http"

	"neowatch/internal/model"
	"neowatch/internal/pkg/logger"
	"neowatch/internal/pkg/utils"
	"neowatch/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户接口处理器
type UserHandler struct {
	userService *auth.UserService
}

// NewUserHandler 创建用户处理器实例
func NewUserHandler(userService *auth.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Register 用户注册,返回体不含密码哈希
// POST /api/users
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}

	info, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	logger.LogBusinessOperation("register_user", info.ID, c.ClientIP(),
		c.GetString("request_id"), "success", "用户注册成功", map[string]interface{}{
			"email": info.Email,
		})

	c.JSON(http.StatusCreated, info)
}

// GetMe 查询当前登录用户
// GET /api/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	if userID == 0 {
		writeError(c, model.ErrUnauthorized)
		return
	}

	info, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// UpdateMe 更新当前登录用户,字段缺省表示不修改
// PUT /api/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	if userID == 0 {
		writeError(c, model.ErrUnauthorized)
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}

	info, err := h.userService.UpdateUser(c.Request.Context(), userID, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	logger.LogBusinessOperation("update_user", userID, c.ClientIP(),
		c.GetString("request_id"), "success", "用户信息更新成功", nil)

	c.JSON(http.StatusOK, info)
}

// DeleteMe 注销当前登录用户,历史探测记录保留但解除关联
// DELETE /api/users/me
func (h *UserHandler) DeleteMe(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	if userID == 0 {
		writeError(c, model.ErrUnauthorized)
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}

	logger.LogBusinessOperation("delete_user", userID, c.ClientIP(),
		c.GetString("request_id"), "success", "用户注销成功", nil)

	c.Status(http.StatusNoContent)
}
