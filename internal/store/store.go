package store

import (
	"context"
	"errors"
	"time"

	"github.com/petes-coffee/api/internal/lifecycle"
)

var (
	// ErrOrderNotFound 目标集合中不存在该订单
	ErrOrderNotFound = errors.New("order not found")
)

// Snapshot 全量导出结果
type Snapshot struct {
	Orders          []lifecycle.Order `json:"orders"`
	DeliveredOrders []lifecycle.Order `json:"deliveredOrders"`
	ExportedAt      time.Time         `json:"exportedAt"`
}

// Store 订单持久化接口。
// 两个实现（gorm / JSON 文件对）共用 lifecycle 包的状态机语义，
// 活跃集合与已交付集合互斥，订单 ID 在迁移中保持不变。
type Store interface {
	// ListActive 按创建时间倒序返回活跃订单
	ListActive(ctx context.Context) ([]lifecycle.Order, error)
	// ListDelivered 按创建时间倒序返回已交付订单
	ListDelivered(ctx context.Context) ([]lifecycle.Order, error)
	// Create 校验并写入新订单，状态固定为 pending
	Create(ctx context.Context, name, email string, items []string) (lifecycle.Order, error)
	// GetByID 先查活跃集合再查已交付集合
	GetByID(ctx context.Context, id int64) (lifecycle.Order, error)
	// UpdateStatus 变更状态；status 为 delivered 时迁入已交付集合
	UpdateStatus(ctx context.Context, id int64, status string) (lifecycle.Order, error)
	// Restore 已交付订单迁回活跃集合并重置为 pending
	Restore(ctx context.Context, id int64) (lifecycle.Order, error)
	// Export 只读快照
	Export(ctx context.Context) (Snapshot, error)
	// Ping 健康检查用的最小读操作
	Ping(ctx context.Context) error
}
