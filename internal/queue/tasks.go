package queue

import (
	"encoding/json"

	"github.com/petes-coffee/api/internal/constants"
	"github.com/petes-coffee/api/internal/lifecycle"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderCreatedNotice 新订单通知任务
	TaskOrderCreatedNotice = constants.TaskOrderCreatedNotice
	// TaskOrderStatusEmail 状态变更邮件任务
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskFranchiseInquiryMail 加盟咨询转发任务
	TaskFranchiseInquiryMail = constants.TaskFranchiseInquiryMail
)

// OrderNoticePayload 订单通知任务载荷。
// 带完整订单快照，file 驱动下 worker 无需回查存储。
type OrderNoticePayload struct {
	Order lifecycle.Order `json:"order"`
}

// FranchiseInquiryPayload 加盟咨询任务载荷
type FranchiseInquiryPayload struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Location   string `json:"location"`
	Experience string `json:"experience"`
	Investment string `json:"investment"`
	Details    string `json:"details"`
}

// NewOrderCreatedNoticeTask 创建新订单通知任务
func NewOrderCreatedNoticeTask(payload OrderNoticePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderCreatedNotice, body), nil
}

// NewOrderStatusEmailTask 创建状态变更邮件任务
func NewOrderStatusEmailTask(payload OrderNoticePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}

// NewFranchiseInquiryTask 创建加盟咨询转发任务
func NewFranchiseInquiryTask(payload FranchiseInquiryPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskFranchiseInquiryMail, body), nil
}
