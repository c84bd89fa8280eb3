/**
 * 处理器:HTTP 错误翻译
 * @author: sun977
 * @date: 2025.11.21
 * @description: 业务错误到 HTTP 状态码的统一翻译,所有处理器共用
 * @func: writeError / writeValidationError
 */
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"neowatch/internal/model"
	"neowatch/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// writeError 将业务层错误翻译成 HTTP 响应
// 处理器只在这里做一次错误翻译,业务层返回的哨兵错误决定状态码
func writeError(c *gin.Context, err error) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: validationErr.Message})
		return
	}

	switch {
	case errors.Is(err, model.ErrHostNotFound),
		errors.Is(err, model.ErrUserNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, model.ErrUnknownHost),
		errors.Is(err, model.ErrProbeExecutionFailed):
		// 探测失败对调用方是请求问题(目标不可达/不存在),不是服务故障
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, model.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, model.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenInvalid),
		errors.Is(err, model.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "unauthorized"})
	default:
		// 内部错误只记日志,不向客户端泄露细节
		logger.LogError(err, c.GetString("request_id"), 0, c.ClientIP(), "http_request", map[string]interface{}{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Internal Server Error"})
	}
}

// writeBadRequest 请求体解析失败等纯输入错误
func writeBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: message})
}

// parseIDParam 解析路径中的数字 ID 参数
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	idStr := c.Param(name)
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		writeBadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
