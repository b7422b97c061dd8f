package admin

import (
	"strconv"

	"github.com/petes-coffee/api/internal/http/response"
	"github.com/petes-coffee/api/internal/logger"
	"github.com/petes-coffee/api/internal/models"

	"github.com/gin-gonic/gin"
)

const franchiseInquiryListLimit = 100

// ListFranchiseInquiries 按提交时间倒序返回加盟咨询，limit 可调。
// 文件存储模式下不落库，返回空列表。
func (h *Handler) ListFranchiseInquiries(c *gin.Context) {
	if h.FranchiseInquiryRepo == nil {
		response.JSON(c, []models.FranchiseInquiry{})
		return
	}

	limit := franchiseInquiryListLimit
	if parsed, err := strconv.Atoi(c.Query("limit")); err == nil && parsed > 0 {
		limit = parsed
	}
	inquiries, err := h.FranchiseInquiryRepo.List(limit)
	if err != nil {
		logger.Errorw("franchise_inquiry_list_failed", "error", err)
		response.Internal(c, "failed to list franchise inquiries")
		return
	}
	if inquiries == nil {
		inquiries = []models.FranchiseInquiry{}
	}
	response.JSON(c, inquiries)
}
