package admin

import (
	"strconv"
	"strings"

	"github.com/petes-coffee/api/internal/http/response"
	"github.com/petes-coffee/api/internal/logger"
	"github.com/petes-coffee/api/internal/models"

	"github.com/gin-gonic/gin"
)

const emailLogListLimit = 200

// ListEmailLogs 查询最近的邮件发送记录，支持 page / page_size 分页
// 与 order_id 过滤。文件存储模式下没有邮件日志表，返回空列表。
func (h *Handler) ListEmailLogs(c *gin.Context) {
	if h.EmailLogRepo == nil {
		response.JSON(c, []models.EmailLog{})
		return
	}

	var (
		logs []models.EmailLog
		err  error
	)
	if rawOrderID := c.Query("order_id"); rawOrderID != "" {
		orderID, parseErr := strconv.ParseInt(rawOrderID, 10, 64)
		if parseErr != nil || orderID <= 0 {
			response.BadRequest(c, "invalid order id")
			return
		}
		logs, err = h.EmailLogRepo.ListByOrder(orderID)
	} else if pageSize, parseErr := strconv.Atoi(c.Query("page_size")); parseErr == nil && pageSize > 0 {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		logs, err = h.EmailLogRepo.ListPage(page, pageSize)
	} else {
		logs, err = h.EmailLogRepo.ListRecent(emailLogListLimit)
	}
	if err != nil {
		logger.Errorw("email_log_list_failed", "error", err)
		response.Internal(c, "failed to list email logs")
		return
	}
	if logs == nil {
		logs = []models.EmailLog{}
	}
	response.JSON(c, logs)
}

// TestEmailRequest 测试邮件请求
type TestEmailRequest struct {
	To string `json:"to"`
}

// SendTestEmail 发送一封测试邮件，验证 SMTP 配置
func (h *Handler) SendTestEmail(c *gin.Context) {
	var req TestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.To) == "" {
		response.BadRequest(c, "to is required")
		return
	}

	result := h.NotificationService.SendTestEmail(req.To)
	response.JSON(c, result)
}

// SendTestWhatsApp 发送一条测试 WhatsApp 消息，验证 Twilio 配置
func (h *Handler) SendTestWhatsApp(c *gin.Context) {
	result := h.NotificationService.SendTestWhatsApp(c.Request.Context())
	response.JSON(c, result)
}
