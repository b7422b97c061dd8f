package models

import "time"

// EmailLog 邮件发送日志表
// 只追加的审计记录，不参与任何业务判断。
type EmailLog struct {
	ID           int64     `gorm:"primarykey" json:"id"`
	OrderID      int64     `gorm:"index" json:"order_id"`            // 关联订单 ID（加盟咨询为 0）
	EmailType    string    `gorm:"index;not null" json:"email_type"` // confirmation / staff_notification / status_update / ...
	Recipient    string    `gorm:"not null" json:"recipient"`
	Status       string    `gorm:"not null" json:"status"` // sent / failed
	ErrorMessage string    `json:"error_message,omitempty"`
	SentAt       time.Time `gorm:"index;not null" json:"sent_at"`
}

// TableName 指定表名
func (EmailLog) TableName() string {
	return "email_logs"
}
