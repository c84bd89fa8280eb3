/**
 * 模型:主机模型
 * @author: sun977
 * @date: 2025.11.20
 * @description: 被监控主机数据模型，包含主机基本信息和标签关联关系
 * @func: Host/Tag/HostTag 结构体及相关方法
 */
package model

import (
	"time"
)

// Host 被监控主机模型
type Host struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`                                       // 主机唯一标识ID，主键自增
	Name      string    `json:"name" gorm:"not null;size:100" validate:"required,max=100"`                // 主机名称，必填
	Address   string    `json:"address" gorm:"not null;size:255" validate:"required,max=255"`             // 主机地址，域名或IP，必填
	CreatedAt time.Time `json:"created_at"`                                                               // 创建时间，自动管理
	UpdatedAt time.Time `json:"updated_at"`                                                               // 更新时间，自动管理

	// 关联关系
	Tags []*Tag `json:"-" gorm:"many2many:host_tags;"` // 主机标签，多对多关系(对外序列化走TagNames)
}

// TableName 指定主机表名
func (Host) TableName() string {
	return "hosts"
}

// TagNames 返回主机的标签名列表
// 关联行在仓库层统一归一化为纯标签名数组后返回给客户端
func (h *Host) TagNames() []string {
	names := make([]string, 0, len(h.Tags))
	for _, tag := range h.Tags {
		names = append(names, tag.Name)
	}
	return names
}

// HasTag 检查主机是否携带指定标签
func (h *Host) HasTag(name string) bool {
	for _, tag := range h.Tags {
		if tag.Name == name {
			return true
		}
	}
	return false
}

// Tag 标签模型
// 标签按名称全局唯一(大小写敏感)，首次使用时隐式创建。
// MySQL上名称列需二进制排序规则保证大小写敏感，由迁移工具设置
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`           // 标签唯一标识ID，主键自增
	Name      string    `json:"name" gorm:"uniqueIndex;not null;size:100"`    // 标签名称，唯一索引
	CreatedAt time.Time `json:"created_at"`                                   // 创建时间，自动管理

	// 关联关系
	Hosts []*Host `json:"-" gorm:"many2many:host_tags;"` // 携带该标签的主机
}

// TableName 指定标签表名
func (Tag) TableName() string {
	return "tags"
}

// HostTag 主机标签关联表
type HostTag struct {
	HostID    uint      `json:"host_id" gorm:"primaryKey"` // 主机ID，联合主键
	TagID     uint      `json:"tag_id" gorm:"primaryKey"`  // 标签ID，联合主键
	CreatedAt time.Time `json:"created_at"`                // 关联创建时间
}

// TableName 指定主机标签关联表名
func (HostTag) TableName() string {
	return "host_tags"
}
