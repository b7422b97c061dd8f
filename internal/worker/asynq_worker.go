package worker

import (
	"context"
	"encoding/json"

	"github.com/petes-coffee/api/internal/logger"
	"github.com/petes-coffee/api/internal/provider"
	"github.com/petes-coffee/api/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderCreatedNotice, c.handleOrderCreatedNotice)
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskFranchiseInquiryMail, c.handleFranchiseInquiry)
}

func (c *Consumer) handleOrderCreatedNotice(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_notice_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderNoticePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_notice_unmarshal_failed", "error", err)
		return err
	}
	if payload.Order.ID == 0 {
		logger.Debugw("worker_order_notice_skip_invalid_payload", "order_id", payload.Order.ID)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_order_notice_skip_notifier_nil", "order_id", payload.Order.ID)
		return nil
	}
	// 通知是尽力而为的，通道失败不重试任务
	c.NotificationService.NotifyOrderCreated(ctx, payload.Order)
	return nil
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderNoticePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.Order.ID == 0 {
		logger.Debugw("worker_status_email_skip_invalid_payload", "order_id", payload.Order.ID)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_status_email_skip_notifier_nil", "order_id", payload.Order.ID)
		return nil
	}
	c.NotificationService.NotifyStatusChanged(payload.Order)
	return nil
}

func (c *Consumer) handleFranchiseInquiry(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_franchise_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.FranchiseInquiryPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_franchise_unmarshal_failed", "error", err)
		return err
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_franchise_skip_notifier_nil")
		return nil
	}
	c.NotificationService.NotifyFranchiseInquiry(
		payload.Name,
		payload.Email,
		payload.Phone,
		payload.Location,
		payload.Experience,
		payload.Investment,
		payload.Details,
	)
	return nil
}
