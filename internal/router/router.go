package router

import (
	"fmt"
	"strings"

	"github.com/petes-coffee/api/internal/cache"
	"github.com/petes-coffee/api/internal/config"
	adminhandlers "github.com/petes-coffee/api/internal/http/handlers/admin"
	publichandlers "github.com/petes-coffee/api/internal/http/handlers/public"
	"github.com/petes-coffee/api/internal/logger"
	"github.com/petes-coffee/api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "petes"
	}
	redisClient := cache.Client()
	submitRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:submit", redisPrefix),
		WindowSeconds: cfg.Security.SubmitRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.SubmitRateLimit.MaxRequests,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	api := r.Group("/api")
	{
		api.GET("/health", publicHandler.Health)

		// 订单接口
		api.GET("/orders", publicHandler.ListOrders)
		api.POST("/orders", RateLimitMiddleware(redisClient, submitRule, KeyByIP), publicHandler.CreateOrder)
		api.GET("/orders/delivered", publicHandler.ListDeliveredOrders)
		api.GET("/orders/:id", publicHandler.GetOrder)

		// 加盟咨询
		api.POST("/franchise-inquiry", RateLimitMiddleware(redisClient, submitRule, KeyByIP), publicHandler.SubmitFranchiseInquiry)

		// 店员登录
		api.POST("/staff/login", adminHandler.StaffLogin)

		// 店员接口（需鉴权）
		staff := api.Group("")
		staff.Use(StaffAuthMiddleware(c.StaffAuthService))
		{
			staff.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
			staff.POST("/orders/:id/restore", adminHandler.RestoreOrder)
			staff.GET("/export", adminHandler.ExportOrders)
			staff.GET("/emails", adminHandler.ListEmailLogs)
			staff.GET("/franchise-inquiries", adminHandler.ListFranchiseInquiries)
			staff.POST("/test/email", adminHandler.SendTestEmail)
			staff.POST("/test/whatsapp", adminHandler.SendTestWhatsApp)
		}
	}

	// 兼容旧部署的裸健康检查
	r.GET("/health", publicHandler.Health)

	return r
}
