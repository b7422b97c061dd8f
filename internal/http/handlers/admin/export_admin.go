package admin

import (
	"fmt"
	"net/http"

	"github.com/petes-coffee/api/internal/constants"
	"github.com/petes-coffee/api/internal/http/response"
	"github.com/petes-coffee/api/internal/logger"

	"github.com/gin-gonic/gin"
)

// ExportOrders 导出全部订单与邮件日志，作为附件下载
func (h *Handler) ExportOrders(c *gin.Context) {
	payload, err := h.OrderService.Export(c.Request.Context())
	if err != nil {
		logger.Errorw("order_export_failed", "error", err)
		response.Internal(c, "failed to export orders")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", constants.ExportFilename))
	c.JSON(http.StatusOK, payload)
}
