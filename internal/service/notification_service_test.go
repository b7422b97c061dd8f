package service

import (
	"context"
	"errors"
	"testing"

	"github.com/petes-coffee/api/internal/constants"
	"github.com/petes-coffee/api/internal/lifecycle"
	"github.com/petes-coffee/api/internal/models"
)

type fakeEmailSender struct {
	configured bool
	fail       error
	sent       []string
}

func (f *fakeEmailSender) Configured() bool { return f.configured }

func (f *fakeEmailSender) record(kind string) error {
	if !f.configured {
		return ErrEmailServiceNotConfigured
	}
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, kind)
	return nil
}

func (f *fakeEmailSender) SendOrderConfirmation(lifecycle.Order) error { return f.record("confirm") }
func (f *fakeEmailSender) SendStaffNotification(lifecycle.Order) error { return f.record("staff") }
func (f *fakeEmailSender) SendStatusUpdate(lifecycle.Order) error      { return f.record("status") }
func (f *fakeEmailSender) SendFranchiseInquiryNotice(name, email, phone, location, experience, investment, details string) error {
	return f.record("franchise")
}
func (f *fakeEmailSender) SendTestEmail(string) error { return f.record("test") }

type fakeWhatsAppSender struct {
	configured bool
	fail       error
	sent       int
}

func (f *fakeWhatsAppSender) Configured() bool { return f.configured }

func (f *fakeWhatsAppSender) SendOrderNotice(context.Context, lifecycle.Order) error {
	if !f.configured {
		return ErrWhatsAppNotConfigured
	}
	if f.fail != nil {
		return f.fail
	}
	f.sent++
	return nil
}

func (f *fakeWhatsAppSender) SendTestMessage(context.Context) error {
	if !f.configured {
		return ErrWhatsAppNotConfigured
	}
	if f.fail != nil {
		return f.fail
	}
	f.sent++
	return nil
}

type fakeEmailLogRepo struct {
	entries []models.EmailLog
}

func (f *fakeEmailLogRepo) Create(log *models.EmailLog) error {
	f.entries = append(f.entries, *log)
	return nil
}

func (f *fakeEmailLogRepo) ListRecent(int) ([]models.EmailLog, error) {
	return f.entries, nil
}

func (f *fakeEmailLogRepo) ListPage(int, int) ([]models.EmailLog, error) {
	return f.entries, nil
}

func (f *fakeEmailLogRepo) ListByOrder(int64) ([]models.EmailLog, error) {
	return f.entries, nil
}

func testOrder() lifecycle.Order {
	order, _ := lifecycle.New(1, "Pat", "pat@example.com", []string{"Latte"}, orderTime())
	return order
}

func TestNotifyOrderCreatedAllChannels(t *testing.T) {
	email := &fakeEmailSender{configured: true}
	wa := &fakeWhatsAppSender{configured: true}
	logs := &fakeEmailLogRepo{}
	svc := NewNotificationService(email, wa, logs)

	result := svc.NotifyOrderCreated(context.Background(), testOrder())
	if !result.Email.Success {
		t.Fatalf("email result = %+v, want success", result.Email)
	}
	if !result.WhatsApp.Success {
		t.Fatalf("whatsapp result = %+v, want success", result.WhatsApp)
	}
	if wa.sent != 1 {
		t.Fatalf("whatsapp sent = %d, want 1", wa.sent)
	}
	// 顾客确认 + 店员提醒各记录一条
	if len(logs.entries) != 2 {
		t.Fatalf("log entries = %d, want 2", len(logs.entries))
	}
	if logs.entries[0].Status != constants.EmailStatusSent {
		t.Fatalf("first log status = %q, want sent", logs.entries[0].Status)
	}
}

func TestNotifyOrderCreatedUnconfiguredChannels(t *testing.T) {
	email := &fakeEmailSender{configured: false}
	wa := &fakeWhatsAppSender{configured: false}
	svc := NewNotificationService(email, wa, nil)

	result := svc.NotifyOrderCreated(context.Background(), testOrder())
	if result.Email.Success {
		t.Fatal("expected email failure when unconfigured")
	}
	if result.Email.Message != ErrEmailServiceNotConfigured.Error() {
		t.Fatalf("email message = %q, want %q", result.Email.Message, ErrEmailServiceNotConfigured.Error())
	}
	if result.WhatsApp.Success {
		t.Fatal("expected whatsapp failure when unconfigured")
	}
}

func TestNotifyOrderCreatedEmailFailureRecorded(t *testing.T) {
	email := &fakeEmailSender{configured: true, fail: errors.New("dial timeout")}
	wa := &fakeWhatsAppSender{configured: true}
	logs := &fakeEmailLogRepo{}
	svc := NewNotificationService(email, wa, logs)

	result := svc.NotifyOrderCreated(context.Background(), testOrder())
	if result.Email.Success {
		t.Fatal("expected email failure")
	}
	if len(logs.entries) != 2 {
		t.Fatalf("log entries = %d, want 2", len(logs.entries))
	}
	if logs.entries[0].Status != constants.EmailStatusFailed {
		t.Fatalf("log status = %q, want failed", logs.entries[0].Status)
	}
	if logs.entries[0].ErrorMessage != "dial timeout" {
		t.Fatalf("log error = %q", logs.entries[0].ErrorMessage)
	}
}

func TestNotifyStatusChanged(t *testing.T) {
	email := &fakeEmailSender{configured: true}
	svc := NewNotificationService(email, &fakeWhatsAppSender{}, nil)

	result := svc.NotifyStatusChanged(testOrder())
	if !result.Success {
		t.Fatalf("result = %+v, want success", result)
	}
	if len(email.sent) != 1 || email.sent[0] != "status" {
		t.Fatalf("sent = %v, want [status]", email.sent)
	}
}

func TestSendTestEmailRecordsLog(t *testing.T) {
	email := &fakeEmailSender{configured: true}
	logs := &fakeEmailLogRepo{}
	svc := NewNotificationService(email, &fakeWhatsAppSender{}, logs)

	result := svc.SendTestEmail("staff@example.com")
	if !result.Success {
		t.Fatalf("result = %+v, want success", result)
	}
	if len(logs.entries) != 1 || logs.entries[0].EmailType != constants.EmailTypeTest {
		t.Fatalf("log entries mismatch: %+v", logs.entries)
	}
	if logs.entries[0].Recipient != "staff@example.com" {
		t.Fatalf("recipient = %q", logs.entries[0].Recipient)
	}
}

func TestSendTestWhatsApp(t *testing.T) {
	wa := &fakeWhatsAppSender{configured: true}
	svc := NewNotificationService(&fakeEmailSender{}, wa, nil)

	result := svc.SendTestWhatsApp(context.Background())
	if !result.Success {
		t.Fatalf("result = %+v, want success", result)
	}

	svc = NewNotificationService(&fakeEmailSender{}, &fakeWhatsAppSender{configured: false}, nil)
	result = svc.SendTestWhatsApp(context.Background())
	if result.Success {
		t.Fatal("expected failure when whatsapp unconfigured")
	}
}
