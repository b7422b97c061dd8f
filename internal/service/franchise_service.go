package service

import (
	"strings"

	"github.com/petes-coffee/api/internal/logger"
	"github.com/petes-coffee/api/internal/models"
	"github.com/petes-coffee/api/internal/queue"
	"github.com/petes-coffee/api/internal/repository"

	"github.com/shopspring/decimal"
)

// FranchiseInquiryInput 加盟咨询提交输入
type FranchiseInquiryInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Location   string `json:"location"`
	Experience string `json:"experience"`
	Investment string `json:"investment"`
	Details    string `json:"details"`
}

// FranchiseSubmitResult 受理结果：保存的咨询与通知转发结果
type FranchiseSubmitResult struct {
	Inquiry      *models.FranchiseInquiry `json:"inquiry"`
	Notification Result                   `json:"notification"`
}

// FranchiseService 加盟咨询服务
type FranchiseService struct {
	repo     repository.FranchiseInquiryRepository
	notifier *NotificationService
	queue    *queue.Client
}

// NewFranchiseService 创建加盟咨询服务，repo 可为 nil（file 驱动下不落库）
func NewFranchiseService(repo repository.FranchiseInquiryRepository, notifier *NotificationService, qc *queue.Client) *FranchiseService {
	return &FranchiseService{repo: repo, notifier: notifier, queue: qc}
}

// Submit 校验并受理加盟咨询，转发给店员邮箱
func (s *FranchiseService) Submit(input FranchiseInquiryInput) (FranchiseSubmitResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Location = strings.TrimSpace(input.Location)
	if input.Name == "" {
		return FranchiseSubmitResult{}, ErrInquiryNameRequired
	}
	if input.Email == "" {
		return FranchiseSubmitResult{}, ErrInquiryEmailRequired
	}
	if input.Location == "" {
		return FranchiseSubmitResult{}, ErrInquiryLocationRequired
	}

	var investment *decimal.Decimal
	if raw := strings.TrimSpace(input.Investment); raw != "" {
		parsed, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
		if err != nil || parsed.IsNegative() {
			return FranchiseSubmitResult{}, ErrInvalidInvestment
		}
		investment = &parsed
	}

	inquiry := &models.FranchiseInquiry{
		Name:       input.Name,
		Email:      input.Email,
		Phone:      strings.TrimSpace(input.Phone),
		Location:   input.Location,
		Experience: strings.TrimSpace(input.Experience),
		Investment: investment,
		Details:    strings.TrimSpace(input.Details),
	}
	if s.repo != nil {
		if err := s.repo.Create(inquiry); err != nil {
			return FranchiseSubmitResult{}, err
		}
	}
	logger.Infow("franchise_inquiry_received", "location", input.Location)

	// 转发尽力而为，落库成功即视为受理
	if s.queue.Enabled() {
		err := s.queue.EnqueueFranchiseInquiry(queue.FranchiseInquiryPayload{
			Name:       input.Name,
			Email:      input.Email,
			Phone:      input.Phone,
			Location:   input.Location,
			Experience: input.Experience,
			Investment: input.Investment,
			Details:    input.Details,
		})
		if err == nil {
			return FranchiseSubmitResult{
				Inquiry:      inquiry,
				Notification: Result{Success: true, Message: "Notification queued"},
			}, nil
		}
		logger.Warnw("franchise_enqueue_failed", "error", err)
	}
	notification := s.notifier.NotifyFranchiseInquiry(input.Name, input.Email, input.Phone, input.Location, input.Experience, input.Investment, input.Details)
	return FranchiseSubmitResult{Inquiry: inquiry, Notification: notification}, nil
}
