package provider

import (
	"github.com/petes-coffee/api/internal/cache"
	"github.com/petes-coffee/api/internal/config"
	"github.com/petes-coffee/api/internal/logger"
	"github.com/petes-coffee/api/internal/models"
	"github.com/petes-coffee/api/internal/queue"
	"github.com/petes-coffee/api/internal/repository"
	"github.com/petes-coffee/api/internal/service"
	"github.com/petes-coffee/api/internal/store"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	Store store.Store

	// Repositories（file 驱动下为 nil）
	EmailLogRepo         repository.EmailLogRepository
	FranchiseInquiryRepo repository.FranchiseInquiryRepository

	// Services
	EmailService        *service.EmailService
	WhatsAppService     *service.WhatsAppService
	NotificationService *service.NotificationService
	OrderService        *service.OrderService
	FranchiseService    *service.FranchiseService
	StaffAuthService    *service.StaffAuthService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initStore()
	c.initRepositories()
	c.initServices()

	return c
}

// initStore 按驱动选择订单存储
func (c *Container) initStore() {
	if c.Config.Database.Driver == "file" {
		fileStore, err := store.NewFileStore(c.Config.Database.DataDir)
		if err != nil {
			logger.Errorw("provider_init_file_store_failed", "dir", c.Config.Database.DataDir, "error", err)
			panic(err)
		}
		c.Store = fileStore
		logger.Infow("order_store_ready", "driver", "file", "dir", c.Config.Database.DataDir)
		return
	}
	c.Store = store.NewGormStore(models.DB)
	logger.Infow("order_store_ready", "driver", c.Config.Database.Driver)
}

func (c *Container) initRepositories() {
	if c.Config.Database.Driver == "file" {
		return
	}
	db := models.DB
	c.EmailLogRepo = repository.NewEmailLogRepository(db)
	c.FranchiseInquiryRepo = repository.NewFranchiseInquiryRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.WhatsAppService = service.NewWhatsAppService(&c.Config.Twilio, c.Config.WhatsApp.To)
	c.NotificationService = service.NewNotificationService(c.EmailService, c.WhatsAppService, c.EmailLogRepo)
	c.OrderService = service.NewOrderService(c.Store, c.NotificationService, c.QueueClient, c.EmailLogRepo)
	c.FranchiseService = service.NewFranchiseService(c.FranchiseInquiryRepo, c.NotificationService, c.QueueClient)
	c.StaffAuthService = service.NewStaffAuthService(&c.Config.Staff)

	if !c.EmailService.Configured() {
		logger.Warnw("email_channel_disabled", "reason", "missing smtp credentials")
	}
	if !c.WhatsAppService.Configured() {
		logger.Warnw("whatsapp_channel_disabled", "reason", "missing twilio credentials or recipient")
	}
}
