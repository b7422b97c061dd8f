package repository

import (
	"github.com/petes-coffee/api/internal/models"

	"gorm.io/gorm"
)

// EmailLogRepository 邮件发送记录数据访问接口
type EmailLogRepository interface {
	Create(log *models.EmailLog) error
	ListRecent(limit int) ([]models.EmailLog, error)
	ListPage(page, pageSize int) ([]models.EmailLog, error)
	ListByOrder(orderID int64) ([]models.EmailLog, error)
}

// GormEmailLogRepository GORM 实现
type GormEmailLogRepository struct {
	db *gorm.DB
}

// NewEmailLogRepository 创建邮件记录仓库
func NewEmailLogRepository(db *gorm.DB) *GormEmailLogRepository {
	return &GormEmailLogRepository{db: db}
}

// Create 追加一条发送记录
func (r *GormEmailLogRepository) Create(log *models.EmailLog) error {
	if log == nil {
		return nil
	}
	return r.db.Create(log).Error
}

// ListRecent 按时间倒序返回最近的发送记录
func (r *GormEmailLogRepository) ListRecent(limit int) ([]models.EmailLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var logs []models.EmailLog
	if err := r.db.Order("sent_at desc").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListPage 分页查询发送记录，时间倒序
func (r *GormEmailLogRepository) ListPage(page, pageSize int) ([]models.EmailLog, error) {
	var logs []models.EmailLog
	query := applyPagination(r.db.Order("sent_at desc"), page, pageSize)
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListByOrder 查询某个订单的发送记录
func (r *GormEmailLogRepository) ListByOrder(orderID int64) ([]models.EmailLog, error) {
	var logs []models.EmailLog
	if err := r.db.Where("order_id = ?", orderID).Order("sent_at desc").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
