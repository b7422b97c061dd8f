package constants

// 队列名称
const (
	QueueDefault = "default"
)

// 异步任务类型
const (
	TaskOrderCreatedNotice   = "order:created_notice"
	TaskOrderStatusEmail     = "order:status_email"
	TaskFranchiseInquiryMail = "franchise:inquiry_notice"
)

// 邮件类型（email_logs.email_type）
const (
	EmailTypeConfirmation      = "confirmation"
	EmailTypeStaffNotification = "staff_notification"
	EmailTypeStatusUpdate      = "status_update"
	EmailTypeFranchiseInquiry  = "franchise_inquiry"
	EmailTypeTest              = "test"
)

// 邮件发送结果（email_logs.status）
const (
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)

// 导出文件名
const (
	ExportFilename = "orders_backup.json"
)
