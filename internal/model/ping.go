/**
 * 模型:探测记录模型
 * @author: sun977
 * @date: 2025.11.20
 * @description: 一次完整探测(Ping)的持久化记录，包含逐包明细和统计汇总
 * @func: Ping/Icmp/Stats 结构体及相关方法
 */
package model

import (
	"time"
)

// Ping 探测记录模型
// 记录一次完成的主机探测，创建后不可变(无更新/删除操作)
type Ping struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"` // 探测记录唯一标识ID，主键自增
	IP        string    `json:"ip" gorm:"size:45"`                  // 解析出的目标数值地址，支持IPv6长度
	HostID    uint      `json:"host_id" gorm:"index;not null"`      // 被探测主机ID
	UserID    *uint     `json:"user_id,omitempty" gorm:"index"`     // 触发探测的用户ID，可为空
	CreatedAt time.Time `json:"created_at"`                         // 创建时间，自动管理

	// 关联关系
	Host  *Host  `json:"host,omitempty" gorm:"foreignKey:HostID"` // 被探测主机
	Icmps []Icmp `json:"icmps" gorm:"foreignKey:PingID"`          // 逐包明细，归属于且仅归属于本条记录
	Stats *Stats `json:"stats" gorm:"foreignKey:PingID"`          // 统计汇总，一对一
}

// TableName 指定探测记录表名
func (Ping) TableName() string {
	return "pings"
}

// Icmp 单个ICMP回显包记录
type Icmp struct {
	ID     uint    `json:"-" gorm:"primaryKey;autoIncrement"` // 主键自增，不对外暴露
	PingID uint    `json:"-" gorm:"index;not null"`           // 所属探测记录ID
	Seq    int     `json:"seq"`                               // 序列号
	TTL    int     `json:"ttl"`                               // 存活跳数
	Time   float64 `json:"time"`                              // 往返时延(毫秒)
}

// TableName 指定ICMP包明细表名
func (Icmp) TableName() string {
	return "icmps"
}

// Stats 探测统计汇总
// lost 恒等于 transmitted - received，由系统重新计算而非解析工具输出
type Stats struct {
	ID          uint    `json:"-" gorm:"primaryKey;autoIncrement"` // 主键自增，不对外暴露
	PingID      uint    `json:"-" gorm:"uniqueIndex;not null"`     // 所属探测记录ID，一对一
	Transmitted int     `json:"transmitted"`                       // 发送包数
	Received    int     `json:"received"`                          // 接收包数
	Lost        int     `json:"lost"`                              // 丢失包数
	Min         float64 `json:"min"`                               // 最小往返时延(毫秒)
	Avg         float64 `json:"avg"`                               // 平均往返时延(毫秒)
	Max         float64 `json:"max"`                               // 最大往返时延(毫秒)
	Stddev      float64 `json:"stddev"`                            // 往返时延标准差(毫秒)
}

// TableName 指定统计汇总表名
func (Stats) TableName() string {
	return "ping_stats"
}
