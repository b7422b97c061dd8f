package service

import (
	"context"
	"time"

	"github.com/petes-coffee/api/internal/cache"
	"github.com/petes-coffee/api/internal/lifecycle"
	"github.com/petes-coffee/api/internal/logger"
	"github.com/petes-coffee/api/internal/models"
	"github.com/petes-coffee/api/internal/queue"
	"github.com/petes-coffee/api/internal/repository"
	"github.com/petes-coffee/api/internal/store"
)

// CreateOrderResult 下单结果，含各通知通道的发送结果
type CreateOrderResult struct {
	Order         lifecycle.Order    `json:"order"`
	Notifications OrderNotifications `json:"notifications"`
}

// ExportPayload 订单导出载荷
type ExportPayload struct {
	Orders          []lifecycle.Order `json:"orders"`
	DeliveredOrders []lifecycle.Order `json:"deliveredOrders"`
	EmailLogs       []models.EmailLog `json:"emailLogs,omitempty"`
	ExportedAt      time.Time         `json:"exportedAt"`
}

// OrderService 订单业务服务。
// 存储操作同步完成，通知分发尽力而为；队列启用时通知转入 worker。
type OrderService struct {
	store    store.Store
	notifier *NotificationService
	queue    *queue.Client
	emailLog repository.EmailLogRepository
}

// NewOrderService 创建订单服务
func NewOrderService(st store.Store, notifier *NotificationService, qc *queue.Client, emailLog repository.EmailLogRepository) *OrderService {
	return &OrderService{store: st, notifier: notifier, queue: qc, emailLog: emailLog}
}

// 订单列表缓存，写操作后主动失效。前台页面轮询列表，短 TTL 即可。
const (
	cacheKeyActiveOrders    = "orders:active"
	cacheKeyDeliveredOrders = "orders:delivered"
	orderListCacheTTL       = 10 * time.Second
)

// ListActive 活跃订单列表
func (s *OrderService) ListActive(ctx context.Context) ([]lifecycle.Order, error) {
	var cached []lifecycle.Order
	if ok, err := cache.GetJSON(ctx, cacheKeyActiveOrders, &cached); err == nil && ok {
		return cached, nil
	}
	orders, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, cacheKeyActiveOrders, orders, orderListCacheTTL); err != nil {
		logger.Warnw("order_list_cache_write_failed", "key", cacheKeyActiveOrders, "error", err)
	}
	return orders, nil
}

// ListDelivered 已交付订单列表
func (s *OrderService) ListDelivered(ctx context.Context) ([]lifecycle.Order, error) {
	var cached []lifecycle.Order
	if ok, err := cache.GetJSON(ctx, cacheKeyDeliveredOrders, &cached); err == nil && ok {
		return cached, nil
	}
	orders, err := s.store.ListDelivered(ctx)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, cacheKeyDeliveredOrders, orders, orderListCacheTTL); err != nil {
		logger.Warnw("order_list_cache_write_failed", "key", cacheKeyDeliveredOrders, "error", err)
	}
	return orders, nil
}

func (s *OrderService) invalidateListCache(ctx context.Context) {
	if err := cache.Del(ctx, cacheKeyActiveOrders); err != nil {
		logger.Warnw("order_list_cache_invalidate_failed", "key", cacheKeyActiveOrders, "error", err)
	}
	if err := cache.Del(ctx, cacheKeyDeliveredOrders); err != nil {
		logger.Warnw("order_list_cache_invalidate_failed", "key", cacheKeyDeliveredOrders, "error", err)
	}
}

// Get 查询单个订单
func (s *OrderService) Get(ctx context.Context, id int64) (lifecycle.Order, error) {
	return s.store.GetByID(ctx, id)
}

// Create 创建订单并分发通知。
// 通知失败不会影响订单创建结果。
func (s *OrderService) Create(ctx context.Context, name, email string, items []string) (CreateOrderResult, error) {
	order, err := s.store.Create(ctx, name, email, items)
	if err != nil {
		return CreateOrderResult{}, err
	}
	logger.Infow("order_created", "order_id", order.ID, "items", len(order.Items))
	s.invalidateListCache(ctx)

	if s.queue.Enabled() {
		if err := s.queue.EnqueueOrderCreatedNotice(queue.OrderNoticePayload{Order: order}); err != nil {
			logger.Warnw("order_notice_enqueue_failed", "order_id", order.ID, "error", err)
			return CreateOrderResult{Order: order, Notifications: s.notifier.NotifyOrderCreated(ctx, order)}, nil
		}
		queued := Result{Success: true, Message: "Notification queued"}
		return CreateOrderResult{Order: order, Notifications: OrderNotifications{Email: queued, WhatsApp: queued}}, nil
	}

	return CreateOrderResult{Order: order, Notifications: s.notifier.NotifyOrderCreated(ctx, order)}, nil
}

// UpdateStatus 更新订单状态。
// 目标为 delivered 时订单迁入已交付集合；非 delivered 的变更给顾客发送状态邮件。
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status string) (lifecycle.Order, error) {
	order, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return lifecycle.Order{}, err
	}
	logger.Infow("order_status_updated", "order_id", order.ID, "status", order.Status)
	s.invalidateListCache(ctx)

	if order.Status != lifecycle.StatusDelivered {
		s.dispatchStatusEmail(order)
	}
	return order, nil
}

// Restore 已交付订单恢复为 pending
func (s *OrderService) Restore(ctx context.Context, id int64) (lifecycle.Order, error) {
	order, err := s.store.Restore(ctx, id)
	if err != nil {
		return lifecycle.Order{}, err
	}
	logger.Infow("order_restored", "order_id", order.ID)
	s.invalidateListCache(ctx)
	return order, nil
}

// Export 导出两个集合的完整快照，库驱动下附带邮件审计
func (s *OrderService) Export(ctx context.Context) (ExportPayload, error) {
	snap, err := s.store.Export(ctx)
	if err != nil {
		return ExportPayload{}, err
	}
	payload := ExportPayload{
		Orders:          snap.Orders,
		DeliveredOrders: snap.DeliveredOrders,
		ExportedAt:      snap.ExportedAt,
	}
	if s.emailLog != nil {
		logs, err := s.emailLog.ListRecent(1000)
		if err != nil {
			logger.Warnw("export_email_logs_failed", "error", err)
		} else {
			payload.EmailLogs = logs
		}
	}
	return payload, nil
}

// Ping 存储健康检查
func (s *OrderService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *OrderService) dispatchStatusEmail(order lifecycle.Order) {
	if s.queue.Enabled() {
		if err := s.queue.EnqueueOrderStatusEmail(queue.OrderNoticePayload{Order: order}); err != nil {
			logger.Warnw("status_email_enqueue_failed", "order_id", order.ID, "error", err)
			s.notifier.NotifyStatusChanged(order)
		}
		return
	}
	s.notifier.NotifyStatusChanged(order)
}
