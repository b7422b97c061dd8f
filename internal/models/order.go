package models

import (
	"time"
)

// Order 活跃订单表
type Order struct {
	ID        int64       `gorm:"primarykey" json:"id"`                  // 主键
	Name      string      `gorm:"not null" json:"name"`                  // 客户姓名
	Email     string      `gorm:"index;not null" json:"email"`           // 客户邮箱
	Items     StringArray `gorm:"type:text;not null" json:"items"`       // 订单项（自由文本）
	Status    string      `gorm:"index;not null" json:"status"`          // 订单状态
	Time      time.Time   `gorm:"index;not null" json:"time"`            // 创建时间
	// 最近状态变更时间。由状态变更显式写入，创建时必须保持为空，
	// 关闭 GORM 的自动时间戳以免插入时被填充。
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt,omitempty"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// DeliveredOrder 已交付订单表
// 与活跃订单共用主键取值：迁移时携带原始 ID。
type DeliveredOrder struct {
	ID          int64       `gorm:"primarykey" json:"id"`
	Name        string      `gorm:"not null" json:"name"`
	Email       string      `gorm:"index;not null" json:"email"`
	Items       StringArray `gorm:"type:text;not null" json:"items"`
	Status      string      `gorm:"not null" json:"status"`
	Time        time.Time   `gorm:"index;not null" json:"time"`
	UpdatedAt   *time.Time  `gorm:"autoUpdateTime:false" json:"updatedAt,omitempty"`
	DeliveredAt time.Time   `gorm:"index;not null" json:"deliveredAt"` // 交付时间
}

// TableName 指定表名
func (DeliveredOrder) TableName() string {
	return "delivered_orders"
}
