package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/petes-coffee/api/internal/config"
	"github.com/petes-coffee/api/internal/lifecycle"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Configured 判断邮件通道是否可用
func (s *EmailService) Configured() bool {
	return s.cfg != nil && s.cfg.Configured()
}

// SendOrderConfirmation 给顾客发送下单确认邮件
func (s *EmailService) SendOrderConfirmation(order lifecycle.Order) error {
	subject := fmt.Sprintf("Order Confirmation - Pete's Coffee #%d", order.ID)
	body := fmt.Sprintf(
		"Hi %s,\n\nThank you for your order at Pete's Coffee!\n\nOrder #%d\nItems:\n%s\n\nStatus: %s\nPlaced at: %s\n\nWe'll let you know as soon as your order is on its way.\n\nPete's Coffee",
		order.Name,
		order.ID,
		formatItems(order.Items),
		order.Status,
		order.Time.Format("Jan 2, 2006 3:04 PM"),
	)
	return s.sendTextEmail(order.Email, subject, body)
}

// SendStaffNotification 给店员邮箱发送新订单提醒
func (s *EmailService) SendStaffNotification(order lifecycle.Order) error {
	to := ""
	if s.cfg != nil {
		to = strings.TrimSpace(s.cfg.To)
	}
	if to == "" {
		return ErrEmailServiceNotConfigured
	}
	subject := fmt.Sprintf("New Order #%d - %s", order.ID, order.Name)
	body := fmt.Sprintf(
		"New order received!\n\nOrder #%d\nCustomer: %s (%s)\nItems:\n%s\nPlaced at: %s",
		order.ID,
		order.Name,
		order.Email,
		formatItems(order.Items),
		order.Time.Format("Jan 2, 2006 3:04 PM"),
	)
	return s.sendTextEmail(to, subject, body)
}

// SendStatusUpdate 给顾客发送订单状态变更邮件
func (s *EmailService) SendStatusUpdate(order lifecycle.Order) error {
	subject := fmt.Sprintf("Order Update - Pete's Coffee #%d", order.ID)
	body := fmt.Sprintf(
		"Hi %s,\n\n%s\n\nOrder #%d\nItems:\n%s\n\nPete's Coffee",
		order.Name,
		statusMessage(order.Status),
		order.ID,
		formatItems(order.Items),
	)
	return s.sendTextEmail(order.Email, subject, body)
}

// SendFranchiseInquiryNotice 给店员邮箱转发加盟咨询
func (s *EmailService) SendFranchiseInquiryNotice(name, email, phone, location, experience, investment, details string) error {
	to := ""
	if s.cfg != nil {
		to = strings.TrimSpace(s.cfg.To)
	}
	if to == "" {
		return ErrEmailServiceNotConfigured
	}
	subject := fmt.Sprintf("Franchise Inquiry - %s (%s)", name, location)
	body := fmt.Sprintf(
		"New franchise inquiry received.\n\nName: %s\nEmail: %s\nPhone: %s\nLocation: %s\nExperience: %s\nInvestment: %s\n\nDetails:\n%s",
		name, email, phone, location, experience, investment, details,
	)
	return s.sendTextEmail(to, subject, body)
}

// SendTestEmail 发送配置测试邮件
func (s *EmailService) SendTestEmail(toEmail string) error {
	subject := "Pete's Coffee - Email Test"
	body := "This is a test email from the Pete's Coffee ordering system. If you received this, email notifications are working."
	return s.sendTextEmail(toEmail, subject, body)
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if !s.Configured() {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	fromAddr := s.cfg.User
	if strings.TrimSpace(s.cfg.From) != "" {
		if parsed, err := mail.ParseAddress(s.cfg.From); err == nil {
			fromAddr = parsed.Address
		}
	}
	from := buildFromAddress(fromAddr, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)

	if s.cfg.UseSSL {
		return sendMailWithSSL(addr, auth, s.cfg.Host, fromAddr, []string{toEmail}, []byte(msg))
	}
	if s.cfg.UseTLS {
		return sendMailWithStartTLS(addr, auth, s.cfg.Host, fromAddr, []string{toEmail}, []byte(msg))
	}
	return sendMailPlain(addr, auth, s.cfg.Host, fromAddr, []string{toEmail}, []byte(msg))
}

// statusMessage 状态到顾客提示语的映射
func statusMessage(status string) string {
	switch lifecycle.Normalize(status) {
	case lifecycle.StatusLeftKitchen:
		return "Your order has left the kitchen and is being prepared for delivery!"
	case lifecycle.StatusOnDelivery:
		return "Your order is on its way to you!"
	case lifecycle.StatusDelivered:
		return "Your order has been delivered. Enjoy!"
	default:
		return fmt.Sprintf("Your order status has been updated to: %s", status)
	}
}

func formatItems(items []string) string {
	var buf bytes.Buffer
	for _, item := range items {
		buf.WriteString("  - ")
		buf.WriteString(item)
		buf.WriteString("\n")
	}
	return strings.TrimRight(buf.String(), "\n")
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
