package config

import (
	"time"

	"github.com/Skotchmaster/marketplace/pkg/config"
	pkgdb "github.com/Skotchmaster/marketplace/pkg/db"
)

type ServiceConfig struct {
	config.Config

	OrderEventsTopic   string
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	AutoMigrate        bool
}

func Load() ServiceConfig {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "order"
	}

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	config.MustOneOf(cfg.DBDriver, "DB_DRIVER", pkgdb.DriverPostgres, pkgdb.DriverSQLite)

	return ServiceConfig{
		Config:             cfg,
		OrderEventsTopic:   config.EnvDefault("ORDER_EVENTS_TOPIC", "order_events"),
		OutboxPollInterval: config.EnvDurationDefault("OUTBOX_POLL_INTERVAL", time.Second),
		OutboxBatchSize:    config.EnvIntDefault("OUTBOX_BATCH_SIZE", 100),
		AutoMigrate:        config.EnvBoolDefault("DB_AUTO_MIGRATE", false),
	}
}
