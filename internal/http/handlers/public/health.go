package public

import (
	"net/http"
	"time"

	"github.com/petes-coffee/api/internal/logger"

	"github.com/gin-gonic/gin"
)

// Health 健康检查：探测存储连通性并汇报通知通道状态。
// 存储不可达时返回 503，客户端据状态码判断是否切换降级存储。
func (h *Handler) Health(c *gin.Context) {
	status := "ok"
	httpStatus := http.StatusOK
	if err := h.OrderService.Ping(c.Request.Context()); err != nil {
		logger.Warnw("health_store_unreachable", "error", err)
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"driver":    h.Config.Database.Driver,
		"channels": gin.H{
			"email":    h.EmailService.Configured(),
			"whatsapp": h.WhatsAppService.Configured(),
		},
	})
}
