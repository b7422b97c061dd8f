package repository

import (
	"github.com/petes-coffee/api/internal/models"

	"gorm.io/gorm"
)

// FranchiseInquiryRepository 加盟咨询数据访问接口
type FranchiseInquiryRepository interface {
	Create(inquiry *models.FranchiseInquiry) error
	List(limit int) ([]models.FranchiseInquiry, error)
}

// GormFranchiseInquiryRepository GORM 实现
type GormFranchiseInquiryRepository struct {
	db *gorm.DB
}

// NewFranchiseInquiryRepository 创建加盟咨询仓库
func NewFranchiseInquiryRepository(db *gorm.DB) *GormFranchiseInquiryRepository {
	return &GormFranchiseInquiryRepository{db: db}
}

// Create 写入一条加盟咨询
func (r *GormFranchiseInquiryRepository) Create(inquiry *models.FranchiseInquiry) error {
	if inquiry == nil {
		return nil
	}
	return r.db.Create(inquiry).Error
}

// List 按提交时间倒序返回咨询记录
func (r *GormFranchiseInquiryRepository) List(limit int) ([]models.FranchiseInquiry, error) {
	if limit <= 0 {
		limit = 100
	}
	var inquiries []models.FranchiseInquiry
	if err := r.db.Order("created_at desc").Limit(limit).Find(&inquiries).Error; err != nil {
		return nil, err
	}
	return inquiries, nil
}
