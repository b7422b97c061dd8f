package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FranchiseInquiry 加盟咨询表
type FranchiseInquiry struct {
	ID         int64            `gorm:"primarykey" json:"id"`
	Name       string           `gorm:"not null" json:"name"`
	Email      string           `gorm:"index;not null" json:"email"`
	Phone      string           `json:"phone,omitempty"`
	Location   string           `json:"location,omitempty"`
	Experience string           `json:"experience,omitempty"`
	Investment *decimal.Decimal `gorm:"type:decimal(20,2)" json:"investment,omitempty"` // 意向投资额
	Details    string           `gorm:"type:text" json:"details,omitempty"`
	CreatedAt  time.Time        `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (FranchiseInquiry) TableName() string {
	return "franchise_inquiries"
}
