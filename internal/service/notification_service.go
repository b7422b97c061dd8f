package service

import (
	"context"
	"errors"
	"time"

	"github.com/petes-coffee/api/internal/constants"
	"github.com/petes-coffee/api/internal/lifecycle"
	"github.com/petes-coffee/api/internal/logger"
	"github.com/petes-coffee/api/internal/models"
	"github.com/petes-coffee/api/internal/repository"
)

// EmailSender 邮件通道抽象
type EmailSender interface {
	Configured() bool
	SendOrderConfirmation(order lifecycle.Order) error
	SendStaffNotification(order lifecycle.Order) error
	SendStatusUpdate(order lifecycle.Order) error
	SendFranchiseInquiryNotice(name, email, phone, location, experience, investment, details string) error
	SendTestEmail(toEmail string) error
}

// WhatsAppSender WhatsApp 通道抽象
type WhatsAppSender interface {
	Configured() bool
	SendOrderNotice(ctx context.Context, order lifecycle.Order) error
	SendTestMessage(ctx context.Context) error
}

// Result 单个通道的发送结果
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OrderNotifications 下单通知的双通道结果
type OrderNotifications struct {
	Email    Result `json:"email"`
	WhatsApp Result `json:"whatsapp"`
}

// NotificationService 通知调度服务。
// 所有发送都是尽力而为：通道失败只记录，从不向调用方报错。
type NotificationService struct {
	email    EmailSender
	whatsapp WhatsAppSender
	emailLog repository.EmailLogRepository
}

// NewNotificationService 创建通知服务，emailLog 可为 nil（file 驱动下无审计表）
func NewNotificationService(email EmailSender, whatsapp WhatsAppSender, emailLog repository.EmailLogRepository) *NotificationService {
	return &NotificationService{email: email, whatsapp: whatsapp, emailLog: emailLog}
}

// NotifyOrderCreated 下单后分发顾客确认邮件、店员提醒邮件与 WhatsApp 提醒
func (s *NotificationService) NotifyOrderCreated(ctx context.Context, order lifecycle.Order) OrderNotifications {
	result := OrderNotifications{
		Email:    s.sendOrderEmails(order),
		WhatsApp: s.sendWhatsApp(ctx, order),
	}
	logger.Infow("order_notifications_dispatched",
		"order_id", order.ID,
		"email_ok", result.Email.Success,
		"whatsapp_ok", result.WhatsApp.Success,
	)
	return result
}

// NotifyStatusChanged 状态变更后给顾客发送更新邮件
func (s *NotificationService) NotifyStatusChanged(order lifecycle.Order) Result {
	err := s.email.SendStatusUpdate(order)
	s.recordEmail(order.ID, constants.EmailTypeStatusUpdate, order.Email, err)
	if err != nil {
		if !errors.Is(err, ErrEmailServiceNotConfigured) {
			logger.Warnw("status_email_failed", "order_id", order.ID, "error", err)
		}
		return Result{Success: false, Message: channelMessage(err)}
	}
	return Result{Success: true, Message: "Status update email sent"}
}

// NotifyFranchiseInquiry 转发加盟咨询到店员邮箱
func (s *NotificationService) NotifyFranchiseInquiry(name, email, phone, location, experience, investment, details string) Result {
	err := s.email.SendFranchiseInquiryNotice(name, email, phone, location, experience, investment, details)
	s.recordEmail(0, constants.EmailTypeFranchiseInquiry, email, err)
	if err != nil {
		if !errors.Is(err, ErrEmailServiceNotConfigured) {
			logger.Warnw("franchise_email_failed", "error", err)
		}
		return Result{Success: false, Message: channelMessage(err)}
	}
	return Result{Success: true, Message: "Inquiry forwarded"}
}

// SendTestEmail 发送测试邮件并记录结果
func (s *NotificationService) SendTestEmail(toEmail string) Result {
	err := s.email.SendTestEmail(toEmail)
	s.recordEmail(0, constants.EmailTypeTest, toEmail, err)
	if err != nil {
		return Result{Success: false, Message: channelMessage(err)}
	}
	return Result{Success: true, Message: "Test email sent"}
}

// SendTestWhatsApp 发送 WhatsApp 测试消息
func (s *NotificationService) SendTestWhatsApp(ctx context.Context) Result {
	if err := s.whatsapp.SendTestMessage(ctx); err != nil {
		return Result{Success: false, Message: channelMessage(err)}
	}
	return Result{Success: true, Message: "Test WhatsApp message sent"}
}

func (s *NotificationService) sendOrderEmails(order lifecycle.Order) Result {
	confirmErr := s.email.SendOrderConfirmation(order)
	s.recordEmail(order.ID, constants.EmailTypeConfirmation, order.Email, confirmErr)

	staffErr := s.email.SendStaffNotification(order)
	s.recordEmail(order.ID, constants.EmailTypeStaffNotification, "", staffErr)

	if confirmErr != nil {
		if !errors.Is(confirmErr, ErrEmailServiceNotConfigured) {
			logger.Warnw("confirmation_email_failed", "order_id", order.ID, "error", confirmErr)
		}
		return Result{Success: false, Message: channelMessage(confirmErr)}
	}
	if staffErr != nil && !errors.Is(staffErr, ErrEmailServiceNotConfigured) {
		logger.Warnw("staff_email_failed", "order_id", order.ID, "error", staffErr)
	}
	return Result{Success: true, Message: "Confirmation email sent"}
}

func (s *NotificationService) sendWhatsApp(ctx context.Context, order lifecycle.Order) Result {
	err := s.whatsapp.SendOrderNotice(ctx, order)
	if err != nil {
		if !errors.Is(err, ErrWhatsAppNotConfigured) {
			logger.Warnw("whatsapp_notice_failed", "order_id", order.ID, "error", err)
		}
		return Result{Success: false, Message: channelMessage(err)}
	}
	return Result{Success: true, Message: "WhatsApp notification sent"}
}

// recordEmail 写入发送审计，失败只记录日志
func (s *NotificationService) recordEmail(orderID int64, emailType, recipient string, sendErr error) {
	if s.emailLog == nil {
		return
	}
	entry := &models.EmailLog{
		OrderID:   orderID,
		EmailType: emailType,
		Recipient: recipient,
		Status:    constants.EmailStatusSent,
		SentAt:    time.Now(),
	}
	if sendErr != nil {
		entry.Status = constants.EmailStatusFailed
		entry.ErrorMessage = sendErr.Error()
	}
	if err := s.emailLog.Create(entry); err != nil {
		logger.Warnw("email_log_write_failed", "order_id", orderID, "type", emailType, "error", err)
	}
}

func channelMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
