package store

import (
	"context"
	"errors"
	"time"

	"github.com/petes-coffee/api/internal/lifecycle"
	"github.com/petes-coffee/api/internal/models"

	"gorm.io/gorm"
)

// GormStore 基于 gorm 的订单存储（sqlite / postgres）。
// delivered 迁移与 restore 在事务内完成，单条记录的集合切换是原子的。
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建 gorm 订单存储
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// ListActive 按创建时间倒序返回活跃订单
func (s *GormStore) ListActive(ctx context.Context) ([]lifecycle.Order, error) {
	var rows []models.Order
	if err := s.db.WithContext(ctx).Order("time DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]lifecycle.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, activeRowToOrder(row))
	}
	return orders, nil
}

// ListDelivered 按创建时间倒序返回已交付订单
func (s *GormStore) ListDelivered(ctx context.Context) ([]lifecycle.Order, error) {
	var rows []models.DeliveredOrder
	if err := s.db.WithContext(ctx).Order("time DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]lifecycle.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, deliveredRowToOrder(row))
	}
	return orders, nil
}

// Create 校验并写入新订单
func (s *GormStore) Create(ctx context.Context, name, email string, items []string) (lifecycle.Order, error) {
	order, err := lifecycle.New(0, name, email, items, time.Now())
	if err != nil {
		return lifecycle.Order{}, err
	}
	row := models.Order{
		Name:   order.Name,
		Email:  order.Email,
		Items:  models.StringArray(order.Items),
		Status: order.Status,
		Time:   order.Time,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return lifecycle.Order{}, err
	}
	order.ID = row.ID
	return order, nil
}

// GetByID 先查活跃集合再查已交付集合
func (s *GormStore) GetByID(ctx context.Context, id int64) (lifecycle.Order, error) {
	var row models.Order
	err := s.db.WithContext(ctx).First(&row, id).Error
	if err == nil {
		return activeRowToOrder(row), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return lifecycle.Order{}, err
	}

	var delivered models.DeliveredOrder
	err = s.db.WithContext(ctx).First(&delivered, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return lifecycle.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return lifecycle.Order{}, err
	}
	return deliveredRowToOrder(delivered), nil
}

// UpdateStatus 变更状态；delivered 走集合迁移
func (s *GormStore) UpdateStatus(ctx context.Context, id int64, status string) (lifecycle.Order, error) {
	if !lifecycle.ValidStatus(status) {
		return lifecycle.Order{}, lifecycle.ErrInvalidStatus
	}

	now := time.Now()
	var result lifecycle.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Order
		if err := tx.First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		order := activeRowToOrder(row)

		if lifecycle.Normalize(status) == lifecycle.StatusDelivered {
			delivered, err := lifecycle.Deliver(order, now)
			if err != nil {
				return err
			}
			if err := tx.Delete(&models.Order{}, id).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.DeliveredOrder{
				ID:          delivered.ID,
				Name:        delivered.Name,
				Email:       delivered.Email,
				Items:       models.StringArray(delivered.Items),
				Status:      delivered.Status,
				Time:        delivered.Time,
				UpdatedAt:   delivered.UpdatedAt,
				DeliveredAt: *delivered.DeliveredAt,
			}).Error; err != nil {
				return err
			}
			result = delivered
			return nil
		}

		updated, err := lifecycle.Advance(order, status, now)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
			"status":     updated.Status,
			"updated_at": updated.UpdatedAt,
		}).Error; err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return lifecycle.Order{}, err
	}
	return result, nil
}

// Restore 已交付订单迁回活跃集合
func (s *GormStore) Restore(ctx context.Context, id int64) (lifecycle.Order, error) {
	now := time.Now()
	var result lifecycle.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.DeliveredOrder
		if err := tx.First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		restored, err := lifecycle.Restore(deliveredRowToOrder(row), now)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.DeliveredOrder{}, id).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.Order{
			ID:        restored.ID,
			Name:      restored.Name,
			Email:     restored.Email,
			Items:     models.StringArray(restored.Items),
			Status:    restored.Status,
			Time:      restored.Time,
			UpdatedAt: restored.UpdatedAt,
		}).Error; err != nil {
			return err
		}
		result = restored
		return nil
	})
	if err != nil {
		return lifecycle.Order{}, err
	}
	return result, nil
}

// Export 只读快照
func (s *GormStore) Export(ctx context.Context) (Snapshot, error) {
	active, err := s.ListActive(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	delivered, err := s.ListDelivered(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Orders:          active,
		DeliveredOrders: delivered,
		ExportedAt:      time.Now(),
	}, nil
}

// Ping 健康检查
func (s *GormStore) Ping(ctx context.Context) error {
	var count int64
	return s.db.WithContext(ctx).Model(&models.Order{}).Limit(1).Count(&count).Error
}

func activeRowToOrder(row models.Order) lifecycle.Order {
	return lifecycle.Order{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Items:     []string(row.Items),
		Status:    row.Status,
		Time:      row.Time,
		UpdatedAt: row.UpdatedAt,
	}
}

func deliveredRowToOrder(row models.DeliveredOrder) lifecycle.Order {
	deliveredAt := row.DeliveredAt
	return lifecycle.Order{
		ID:          row.ID,
		Name:        row.Name,
		Email:       row.Email,
		Items:       []string(row.Items),
		Status:      row.Status,
		Time:        row.Time,
		UpdatedAt:   row.UpdatedAt,
		DeliveredAt: &deliveredAt,
	}
}
