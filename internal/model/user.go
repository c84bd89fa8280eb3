/**
 * 模型:用户模型
 * @author: sun977
 * @date: 2025.11.20
 * @description: 用户数据模型，密码仅以加盐哈希形式存储，永不出现在对客户端的序列化结果中
 * @func: User 结构体及相关方法
 */
package model

import (
	"time"
)

// User 用户模型
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`                                   // 用户唯一标识ID，主键自增
	Name      string    `json:"name" gorm:"not null;size:100" validate:"required,max=100"`            // 用户名称
	Email     string    `json:"email" gorm:"uniqueIndex;not null;size:100" validate:"required,email"` // 邮箱地址，唯一索引
	Password  string    `json:"-" gorm:"not null;size:255"`                                           // 密码哈希，不在JSON中返回
	CreatedAt time.Time `json:"created_at"`                                                           // 创建时间，自动管理
	UpdatedAt time.Time `json:"updated_at"`                                                           // 更新时间，自动管理
}

// TableName 指定用户表名
func (User) TableName() string {
	return "users"
}
