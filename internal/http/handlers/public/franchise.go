package public

import (
	"net/http"

	"github.com/petes-coffee/api/internal/http/response"
	"github.com/petes-coffee/api/internal/logger"
	"github.com/petes-coffee/api/internal/service"

	"github.com/gin-gonic/gin"
)

var franchiseErrorRules = []mappedHandlerError{
	{target: service.ErrInquiryNameRequired, status: http.StatusBadRequest, msg: "name is required"},
	{target: service.ErrInquiryEmailRequired, status: http.StatusBadRequest, msg: "email is required"},
	{target: service.ErrInquiryLocationRequired, status: http.StatusBadRequest, msg: "location is required"},
	{target: service.ErrInvalidInvestment, status: http.StatusBadRequest, msg: "investment must be a number"},
}

// SubmitFranchiseInquiry 提交加盟咨询
func (h *Handler) SubmitFranchiseInquiry(c *gin.Context) {
	var input service.FranchiseInquiryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.FranchiseService.Submit(input)
	if err != nil {
		logger.Warnw("franchise_submit_rejected", "error", err)
		respondWithMappedError(c, err, franchiseErrorRules, http.StatusInternalServerError, "failed to submit inquiry")
		return
	}
	response.JSON(c, gin.H{
		"message":      "Inquiry received",
		"inquiry":      result.Inquiry,
		"notification": result.Notification,
	})
}
