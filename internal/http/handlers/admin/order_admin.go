package admin

import (
	"net/http"
	"strconv"

	"github.com/petes-coffee/api/internal/http/response"
	"github.com/petes-coffee/api/internal/lifecycle"
	"github.com/petes-coffee/api/internal/logger"
	"github.com/petes-coffee/api/internal/store"

	"github.com/gin-gonic/gin"
)

// UpdateStatusRequest 订单状态更新请求
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

var orderUpdateErrorRules = []mappedHandlerError{
	{target: lifecycle.ErrInvalidStatus, status: http.StatusBadRequest, msg: "invalid status"},
	{target: store.ErrOrderNotFound, status: http.StatusNotFound, msg: "Order not found"},
}

var orderRestoreErrorRules = []mappedHandlerError{
	{target: lifecycle.ErrNotDelivered, status: http.StatusBadRequest, msg: "order is not delivered"},
	{target: store.ErrOrderNotFound, status: http.StatusNotFound, msg: "Order not found"},
}

// UpdateOrderStatus 更新订单状态；变更为 delivered 时订单会移入历史集合
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	order, err := h.OrderService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		logger.Warnw("order_status_update_failed", "order_id", id, "status", req.Status, "error", err)
		respondWithMappedError(c, err, orderUpdateErrorRules, http.StatusInternalServerError, "failed to update order")
		return
	}
	response.JSON(c, gin.H{
		"message": "Order status updated",
		"order":   order,
	})
}

// RestoreOrder 将已送达订单恢复为待处理
func (h *Handler) RestoreOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	order, err := h.OrderService.Restore(c.Request.Context(), id)
	if err != nil {
		logger.Warnw("order_restore_failed", "order_id", id, "error", err)
		respondWithMappedError(c, err, orderRestoreErrorRules, http.StatusInternalServerError, "failed to restore order")
		return
	}
	response.JSON(c, gin.H{
		"message": "Order restored",
		"order":   order,
	})
}
