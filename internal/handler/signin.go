/**
 * 处理器:登录认证
 * @author: sun977
 * @date: 2025.11.21
 * @description: 邮箱密码登录换取访问令牌
 * @func: SignIn
 */
package handler

import (
	"net/http"

	"neowatch/internal/model"
	"neowatch/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// SignInHandler 登录接口处理器
type SignInHandler struct {
	sessionService *auth.SessionService
}

// NewSignInHandler 创建登录处理器实例
func NewSignInHandler(sessionService *auth.SessionService) *SignInHandler {
	return &SignInHandler{
		sessionService: sessionService,
	}
}

// SignIn 用户登录,失败时统一返回泛化消息,不区分邮箱不存在与密码错误
// POST /api/signin
func (h *SignInHandler) SignIn(c *gin.Context) {
	var req model.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}

	resp, err := h.sessionService.SignIn(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
