package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/petes-coffee/api/internal/lifecycle"
	"github.com/petes-coffee/api/internal/provider"
	"github.com/petes-coffee/api/internal/queue"
	"github.com/petes-coffee/api/internal/service"

	"github.com/hibiken/asynq"
)

type captureEmailSender struct {
	kinds []string
}

func (c *captureEmailSender) Configured() bool { return true }
func (c *captureEmailSender) SendOrderConfirmation(lifecycle.Order) error {
	c.kinds = append(c.kinds, "confirm")
	return nil
}
func (c *captureEmailSender) SendStaffNotification(lifecycle.Order) error {
	c.kinds = append(c.kinds, "staff")
	return nil
}
func (c *captureEmailSender) SendStatusUpdate(lifecycle.Order) error {
	c.kinds = append(c.kinds, "status")
	return nil
}
func (c *captureEmailSender) SendFranchiseInquiryNotice(name, email, phone, location, experience, investment, details string) error {
	c.kinds = append(c.kinds, "franchise")
	return nil
}
func (c *captureEmailSender) SendTestEmail(string) error {
	c.kinds = append(c.kinds, "test")
	return nil
}

type captureWhatsAppSender struct {
	notices int
}

func (c *captureWhatsAppSender) Configured() bool { return true }
func (c *captureWhatsAppSender) SendOrderNotice(context.Context, lifecycle.Order) error {
	c.notices++
	return nil
}
func (c *captureWhatsAppSender) SendTestMessage(context.Context) error { return nil }

func newTestConsumer(email *captureEmailSender, wa *captureWhatsAppSender) *Consumer {
	return NewConsumer(&provider.Container{
		NotificationService: service.NewNotificationService(email, wa, nil),
	})
}

func mustTask(t *testing.T, taskType string, payload interface{}) *asynq.Task {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return asynq.NewTask(taskType, body)
}

func workerOrder() lifecycle.Order {
	created := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	order, _ := lifecycle.New(7, "Pat", "pat@example.com", []string{"Latte"}, created)
	return order
}

func TestHandleOrderCreatedNotice(t *testing.T) {
	email := &captureEmailSender{}
	wa := &captureWhatsAppSender{}
	consumer := newTestConsumer(email, wa)

	task := mustTask(t, queue.TaskOrderCreatedNotice, queue.OrderNoticePayload{Order: workerOrder()})
	if err := consumer.handleOrderCreatedNotice(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(email.kinds) != 2 {
		t.Fatalf("email kinds = %v, want [confirm staff]", email.kinds)
	}
	if wa.notices != 1 {
		t.Fatalf("whatsapp notices = %d, want 1", wa.notices)
	}
}

func TestHandleOrderStatusEmail(t *testing.T) {
	email := &captureEmailSender{}
	consumer := newTestConsumer(email, &captureWhatsAppSender{})

	task := mustTask(t, queue.TaskOrderStatusEmail, queue.OrderNoticePayload{Order: workerOrder()})
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(email.kinds) != 1 || email.kinds[0] != "status" {
		t.Fatalf("email kinds = %v, want [status]", email.kinds)
	}
}

func TestHandleFranchiseInquiry(t *testing.T) {
	email := &captureEmailSender{}
	consumer := newTestConsumer(email, &captureWhatsAppSender{})

	task := mustTask(t, queue.TaskFranchiseInquiryMail, queue.FranchiseInquiryPayload{
		Name:     "Nora",
		Email:    "nora@example.com",
		Location: "Austin, TX",
	})
	if err := consumer.handleFranchiseInquiry(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(email.kinds) != 1 || email.kinds[0] != "franchise" {
		t.Fatalf("email kinds = %v, want [franchise]", email.kinds)
	}
}

func TestHandleOrderNoticeBadPayload(t *testing.T) {
	consumer := newTestConsumer(&captureEmailSender{}, &captureWhatsAppSender{})
	task := asynq.NewTask(queue.TaskOrderCreatedNotice, []byte("not json"))
	if err := consumer.handleOrderCreatedNotice(context.Background(), task); err == nil {
		t.Fatal("expected unmarshal error")
	}
}

func TestHandleOrderNoticeZeroID(t *testing.T) {
	email := &captureEmailSender{}
	consumer := newTestConsumer(email, &captureWhatsAppSender{})
	task := mustTask(t, queue.TaskOrderCreatedNotice, queue.OrderNoticePayload{})
	if err := consumer.handleOrderCreatedNotice(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(email.kinds) != 0 {
		t.Fatalf("expected no sends for zero id, got %v", email.kinds)
	}
}
