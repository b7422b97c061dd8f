package service

import "errors"

// 服务层公共错误定义，handler 按 errors.Is 映射为 HTTP 状态码。
var (
	ErrEmailServiceNotConfigured = errors.New("Email service not configured")
	ErrWhatsAppNotConfigured     = errors.New("WhatsApp service not configured")
	ErrInvalidEmail              = errors.New("invalid email address")
	ErrInvalidCredentials        = errors.New("invalid password")
	ErrInvalidToken              = errors.New("invalid or expired token")
	ErrInquiryNameRequired       = errors.New("name is required")
	ErrInquiryEmailRequired      = errors.New("email is required")
	ErrInquiryLocationRequired   = errors.New("location is required")
	ErrInvalidInvestment         = errors.New("investment must be a number")
)
