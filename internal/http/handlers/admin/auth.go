package admin

import (
	"errors"

	"github.com/petes-coffee/api/internal/http/response"
	"github.com/petes-coffee/api/internal/logger"
	"github.com/petes-coffee/api/internal/service"

	"github.com/gin-gonic/gin"
)

// StaffLoginRequest 店员登录请求
type StaffLoginRequest struct {
	Password string `json:"password"`
}

// StaffLogin 店员登录，校验共享口令并签发 JWT
func (h *Handler) StaffLogin(c *gin.Context) {
	var req StaffLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	token, expiresAt, err := h.StaffAuthService.Login(req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logger.Warnw("staff_login_rejected", "ip", c.ClientIP())
			response.Unauthorized(c, "invalid credentials")
			return
		}
		logger.Errorw("staff_login_failed", "error", err)
		response.Internal(c, "login failed")
		return
	}

	response.JSON(c, gin.H{
		"token":     token,
		"expiresAt": expiresAt,
	})
}
