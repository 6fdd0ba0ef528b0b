package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("SERVICE_NAME", "")

	cfg := Load()
	assert.Equal(t, "order", cfg.ServiceName)
	assert.Equal(t, "order_events", cfg.OrderEventsTopic)
	assert.Equal(t, time.Second, cfg.OutboxPollInterval)
	assert.Equal(t, 100, cfg.OutboxBatchSize)
	assert.False(t, cfg.AutoMigrate)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/orders")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("ORDER_EVENTS_TOPIC", "orders.v2")
	t.Setenv("OUTBOX_POLL_INTERVAL", "250ms")
	t.Setenv("OUTBOX_BATCH_SIZE", "10")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg := Load()
	assert.Equal(t, "orders.v2", cfg.OrderEventsTopic)
	assert.Equal(t, 250*time.Millisecond, cfg.OutboxPollInterval)
	assert.Equal(t, 10, cfg.OutboxBatchSize)
	assert.True(t, cfg.AutoMigrate)
}
