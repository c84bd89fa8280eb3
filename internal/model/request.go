/**
 * 模型:请求模型
 * @author: sun977
 * @date: 2025.11.20
 * @description: API请求数据模型，各仓库读操作使用显式过滤器结构而非通用字典
 * @func: 各种Request结构体和Filter结构体定义
 */
package model

// CreateHostRequest 创建主机请求结构
type CreateHostRequest struct {
	Name    string   `json:"name"`    // 主机名称，必填
	Address string   `json:"address"` // 主机地址，必填
	Tags    []string `json:"tags"`    // 标签名列表，可选
}

// UpdateHostRequest 更新主机请求结构
// 提供tags时全量替换现有标签关联，不做合并
type UpdateHostRequest struct {
	Name    string   `json:"name"`    // 主机名称，必填
	Address string   `json:"address"` // 主机地址，必填
	Tags    []string `json:"tags"`    // 标签名列表，可选
}

// HostFilter 主机查询过滤器
// 枚举支持的谓词，零值字段不参与过滤
type HostFilter struct {
	NameContains string // 名称子串匹配
	TagContains  string // 至少携带一个名称子串匹配的标签
}

// IsEmpty 检查过滤器是否为空
func (f *HostFilter) IsEmpty() bool {
	return f == nil || (f.NameContains == "" && f.TagContains == "")
}

// PingFilter 探测记录查询过滤器
type PingFilter struct {
	HostID uint // 按被探测主机过滤，0表示不过滤
	UserID uint // 按触发用户过滤，0表示不过滤
}

// RegisterRequest 用户注册请求结构
type RegisterRequest struct {
	Name     string `json:"name"`     // 用户名称，必填
	Email    string `json:"email"`    // 邮箱地址，必填
	Password string `json:"password"` // 明文密码，仅在创建边界内出现
}

// UpdateUserRequest 用户信息更新请求结构
type UpdateUserRequest struct {
	Name     string `json:"name"`     // 用户名称
	Email    string `json:"email"`    // 邮箱地址
	Password string `json:"password"` // 新密码，为空则不修改
}

// SignInRequest 登录请求结构
type SignInRequest struct {
	Email    string `json:"email"`    // 邮箱地址
	Password string `json:"password"` // 明文密码
}
