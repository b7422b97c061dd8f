package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/petes-coffee/api/internal/config"
	"github.com/petes-coffee/api/internal/lifecycle"
)

// WhatsAppService 通过 Twilio Messages API 发送 WhatsApp 通知
type WhatsAppService struct {
	cfg    *config.TwilioConfig
	to     string
	client *http.Client
}

// NewWhatsAppService 创建 WhatsApp 服务
func NewWhatsAppService(cfg *config.TwilioConfig, to string) *WhatsAppService {
	timeout := 10 * time.Second
	if cfg != nil && cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	return &WhatsAppService{
		cfg:    cfg,
		to:     strings.TrimSpace(to),
		client: &http.Client{Timeout: timeout},
	}
}

// Configured 判断 WhatsApp 通道是否可用
func (s *WhatsAppService) Configured() bool {
	return s.cfg != nil && s.cfg.Configured() && s.to != ""
}

// SendOrderNotice 给店员号码发送新订单提醒
func (s *WhatsAppService) SendOrderNotice(ctx context.Context, order lifecycle.Order) error {
	body := fmt.Sprintf(
		"New order at Pete's Coffee!\nOrder #%d\nCustomer: %s\nItems: %s",
		order.ID,
		order.Name,
		strings.Join(order.Items, ", "),
	)
	return s.sendMessage(ctx, body)
}

// SendTestMessage 发送配置测试消息
func (s *WhatsAppService) SendTestMessage(ctx context.Context) error {
	return s.sendMessage(ctx, "This is a test message from the Pete's Coffee ordering system.")
}

func (s *WhatsAppService) sendMessage(ctx context.Context, body string) error {
	if !s.Configured() {
		return ErrWhatsAppNotConfigured
	}

	endpoint := fmt.Sprintf(
		"%s/2010-04-01/Accounts/%s/Messages.json",
		strings.TrimRight(s.cfg.APIBaseURL, "/"),
		s.cfg.AccountSID,
	)
	form := url.Values{}
	form.Set("From", whatsAppAddress(s.cfg.PhoneNumber))
	form.Set("To", whatsAppAddress(s.to))
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("twilio status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	return nil
}

// whatsAppAddress 补齐 Twilio 要求的 whatsapp: 前缀
func whatsAppAddress(number string) string {
	number = strings.TrimSpace(number)
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}
