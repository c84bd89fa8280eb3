/**
 * 模型:错误定义
 * @author: sun977
 * @date: 2025.11.20
 * @description: 业务错误常量和错误类型定义，各仓库/探测器返回类型化错误，由API边界统一翻译为HTTP状态码
 * @func: 各种错误常量和ValidationError结构体
 */
package model

import "errors"

// 主机相关错误
var (
	ErrHostNotFound = errors.New("host not found")
)

// 用户相关错误
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
)

// 认证错误
// 登录失败对客户端统一表述，不区分"用户不存在"和"密码错误"
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("unauthorized")
)

// 探测相关错误
var (
	ErrUnknownHost          = errors.New("unknown host")
	ErrProbeExecutionFailed = errors.New("failed to ping host")
	ErrProbeParseFailed     = errors.New("failed to parse probe output")
)

// ValidationError 验证错误结构体
type ValidationError struct {
	Field   string `json:"field"`   // 字段名
	Message string `json:"message"` // 错误消息
}

// NewValidationError 创建验证错误
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error 实现error接口
func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError 检查是否为验证错误
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
