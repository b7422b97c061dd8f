package main

import (
	"context"

	"github.com/petes-coffee/api/internal/config"
	"github.com/petes-coffee/api/internal/lifecycle"
	"github.com/petes-coffee/api/internal/logger"
	"github.com/petes-coffee/api/internal/models"
	"github.com/petes-coffee/api/internal/store"
)

type sampleOrder struct {
	name   string
	email  string
	items  []string
	status string
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	var orderStore store.Store
	if cfg.Database.Driver == "file" {
		fileStore, err := store.NewFileStore(cfg.Database.DataDir)
		if err != nil {
			stdLog.Fatalf("Failed to open data dir: %v", err)
		}
		orderStore = fileStore
	} else {
		if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
			MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
			MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
			ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
			ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
		}); err != nil {
			stdLog.Fatalf("Failed to connect database: %v", err)
		}
		if err := models.AutoMigrate(); err != nil {
			stdLog.Fatalf("Failed to migrate database: %v", err)
		}
		orderStore = store.NewGormStore(models.DB)
	}

	ctx := context.Background()
	samples := []sampleOrder{
		{"Maria Santos", "maria@example.com", []string{"Flat White", "Pastel de Nata"}, lifecycle.StatusPending},
		{"James Chen", "james@example.com", []string{"Cold Brew", "Avocado Toast"}, lifecycle.StatusLeftKitchen},
		{"Sofia Almeida", "sofia@example.com", []string{"Cappuccino", "Banana Bread", "Orange Juice"}, lifecycle.StatusOnDelivery},
		{"Liam Walsh", "liam@example.com", []string{"Espresso"}, lifecycle.StatusDelivered},
	}

	for _, sample := range samples {
		order, err := orderStore.Create(ctx, sample.name, sample.email, sample.items)
		if err != nil {
			stdLog.Printf("Failed to create order for %s: %v", sample.name, err)
			continue
		}
		if sample.status != lifecycle.StatusPending {
			if _, err := orderStore.UpdateStatus(ctx, order.ID, sample.status); err != nil {
				stdLog.Printf("Failed to set status for order %d: %v", order.ID, err)
				continue
			}
		}
		stdLog.Printf("Seeded order %d for %s (%s)", order.ID, sample.name, sample.status)
	}

	active, err := orderStore.ListActive(ctx)
	if err != nil {
		stdLog.Fatalf("Failed to list orders: %v", err)
	}
	delivered, err := orderStore.ListDelivered(ctx)
	if err != nil {
		stdLog.Fatalf("Failed to list delivered orders: %v", err)
	}
	stdLog.Printf("Done: %d active, %d delivered", len(active), len(delivered))
}
