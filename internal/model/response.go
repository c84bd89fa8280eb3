/**
 * 模型:响应模型
 * @author: sun977
 * @date: 2025.11.20
 * @description: API响应数据模型，标签关联在仓库边界统一归一化为纯标签名数组
 * @func: 各种Response结构体及映射函数
 */
package model

import (
	"time"
)

// HostResponse 主机响应结构
// 标签以纯名称数组形式返回
type HostResponse struct {
	ID        uint      `json:"id"`         // 主机ID
	Name      string    `json:"name"`       // 主机名称
	Address   string    `json:"address"`    // 主机地址
	Tags      []string  `json:"tags"`       // 标签名列表
	CreatedAt time.Time `json:"created_at"` // 创建时间
	UpdatedAt time.Time `json:"updated_at"` // 更新时间
}

// NewHostResponse 将主机模型映射为响应结构
// 所有读路径统一经过该映射，保证标签归一化行为一致
func NewHostResponse(host *Host) *HostResponse {
	return &HostResponse{
		ID:        host.ID,
		Name:      host.Name,
		Address:   host.Address,
		Tags:      host.TagNames(),
		CreatedAt: host.CreatedAt,
		UpdatedAt: host.UpdatedAt,
	}
}

// NewHostResponseList 批量映射主机模型
func NewHostResponseList(hosts []*Host) []*HostResponse {
	resp := make([]*HostResponse, 0, len(hosts))
	for _, host := range hosts {
		resp = append(resp, NewHostResponse(host))
	}
	return resp
}

// UserInfo 用户信息响应结构
// 密码哈希永不跨越API边界
type UserInfo struct {
	ID        uint      `json:"id"`         // 用户ID
	Name      string    `json:"name"`       // 用户名称
	Email     string    `json:"email"`      // 邮箱地址
	CreatedAt time.Time `json:"created_at"` // 创建时间
}

// NewUserInfo 将用户模型映射为响应结构
func NewUserInfo(user *User) *UserInfo {
	return &UserInfo{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// SignInResponse 登录响应结构
type SignInResponse struct {
	Auth  bool   `json:"auth"`  // 认证是否成功
	Token string `json:"token"` // 访问令牌
}

// ErrorResponse 错误响应结构
// 所有失败响应(204除外)统一为 {"error": "<message>"}
type ErrorResponse struct {
	Error string `json:"error"` // 错误消息
}
