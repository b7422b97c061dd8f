package public

import (
	"errors"

	"github.com/petes-coffee/api/internal/http/response"
	"github.com/petes-coffee/api/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler 前台接口处理器
type Handler struct {
	*provider.Container
}

// New 创建前台 Handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	status int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackStatus int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			response.Error(c, rule.status, rule.msg)
			return
		}
	}
	response.Error(c, fallbackStatus, fallbackMsg)
}
