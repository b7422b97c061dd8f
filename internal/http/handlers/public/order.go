package public

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/petes-coffee/api/internal/http/response"
	"github.com/petes-coffee/api/internal/lifecycle"
	"github.com/petes-coffee/api/internal/logger"
	"github.com/petes-coffee/api/internal/store"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Items []string `json:"items"`
}

var orderCreateErrorRules = []mappedHandlerError{
	{target: lifecycle.ErrNameRequired, status: http.StatusBadRequest, msg: "name is required"},
	{target: lifecycle.ErrEmailRequired, status: http.StatusBadRequest, msg: "email is required"},
	{target: lifecycle.ErrItemsRequired, status: http.StatusBadRequest, msg: "items must be a non-empty array"},
}

// ListOrders 活跃订单列表，按创建时间倒序
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.OrderService.ListActive(c.Request.Context())
	if err != nil {
		logger.Errorw("list_orders_failed", "error", err)
		response.Internal(c, "failed to fetch orders")
		return
	}
	response.JSON(c, orders)
}

// ListDeliveredOrders 已交付订单列表，按创建时间倒序
func (h *Handler) ListDeliveredOrders(c *gin.Context) {
	orders, err := h.OrderService.ListDelivered(c.Request.Context())
	if err != nil {
		logger.Errorw("list_delivered_orders_failed", "error", err)
		response.Internal(c, "failed to fetch delivered orders")
		return
	}
	response.JSON(c, orders)
}

// CreateOrder 创建订单并分发通知
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.OrderService.Create(c.Request.Context(), req.Name, req.Email, req.Items)
	if err != nil {
		respondWithMappedError(c, err, orderCreateErrorRules, http.StatusInternalServerError, "failed to create order")
		return
	}
	response.Created(c, result)
}

// GetOrder 查询单个订单，活跃与已交付集合都会检索
func (h *Handler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid order id")
		return
	}

	order, err := h.OrderService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			response.NotFound(c, "Order not found")
			return
		}
		logger.Errorw("get_order_failed", "order_id", id, "error", err)
		response.Internal(c, "failed to fetch order")
		return
	}
	response.JSON(c, order)
}
