package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/petes-coffee/api/internal/config"
	"github.com/petes-coffee/api/internal/lifecycle"
)

func orderTime() time.Time {
	return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
}

func TestEmailServiceNotConfigured(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{})
	if svc.Configured() {
		t.Fatal("expected unconfigured")
	}

	order := testOrder()
	if err := svc.SendOrderConfirmation(order); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("err = %v, want ErrEmailServiceNotConfigured", err)
	}
	if err := svc.SendTestEmail("a@b.c"); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("err = %v, want ErrEmailServiceNotConfigured", err)
	}
}

func TestEmailServiceRejectsInvalidRecipient(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{
		Host: "smtp.example.com",
		Port: 587,
		User: "noreply@example.com",
		Pass: "secret",
	})
	if err := svc.SendTestEmail("not-an-address"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("err = %v, want ErrInvalidEmail", err)
	}
}

func TestStaffNotificationRequiresRecipient(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{
		Host: "smtp.example.com",
		Port: 587,
		User: "noreply@example.com",
		Pass: "secret",
		To:   "",
	})
	if err := svc.SendStaffNotification(testOrder()); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("err = %v, want ErrEmailServiceNotConfigured", err)
	}
}

func TestStatusMessage(t *testing.T) {
	cases := []struct {
		status string
		want   string
	}{
		{lifecycle.StatusLeftKitchen, "Your order has left the kitchen and is being prepared for delivery!"},
		{lifecycle.StatusOnDelivery, "Your order is on its way to you!"},
		{lifecycle.StatusDelivered, "Your order has been delivered. Enjoy!"},
		{"pending", "Your order status has been updated to: pending"},
	}
	for _, tc := range cases {
		if got := statusMessage(tc.status); got != tc.want {
			t.Fatalf("statusMessage(%q) = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestBuildEmailMessage(t *testing.T) {
	msg := buildEmailMessage("noreply@example.com", "pat@example.com", "Order Update", "body text")
	for _, want := range []string{
		"From: noreply@example.com\r\n",
		"To: pat@example.com\r\n",
		"Subject: Order Update\r\n",
		"Content-Type: text/plain; charset=UTF-8\r\n",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
	if !strings.HasSuffix(msg, "\r\n\r\nbody text") {
		t.Fatalf("body not separated by blank line:\n%s", msg)
	}
}

func TestFormatItems(t *testing.T) {
	got := formatItems([]string{"Latte", "Croissant"})
	want := "  - Latte\n  - Croissant"
	if got != want {
		t.Fatalf("formatItems = %q, want %q", got, want)
	}
}

func TestBuildFromAddress(t *testing.T) {
	if got := buildFromAddress("noreply@example.com", ""); got != "noreply@example.com" {
		t.Fatalf("plain from = %q", got)
	}
	got := buildFromAddress("noreply@example.com", "Pete's Coffee")
	if !strings.Contains(got, "noreply@example.com") {
		t.Fatalf("named from missing address: %q", got)
	}
}
