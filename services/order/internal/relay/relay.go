package relay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Skotchmaster/marketplace/pkg/metrics"
	"github.com/Skotchmaster/marketplace/services/order/internal/repo"
)

type Publisher interface {
	Publish(ctx context.Context, topic, key string, value []byte) error
}

// Relay moves committed outbox rows to the broker in id order. Delivery is
// at least once: a crash between publish and MarkSent resends the event.
type Relay struct {
	Repo      *repo.GormRepo
	Publisher Publisher
	Metrics   *metrics.OrderMetrics
	Logger    *slog.Logger

	BatchSize int
	Interval  time.Duration
}

// Flush publishes one batch and stops at the first failure so ordering holds.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	batch := r.BatchSize
	if batch <= 0 {
		batch = 100
	}

	events, err := r.Repo.FetchPending(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("fetch pending: %w", err)
	}

	sent := 0
	defer func() { r.Metrics.ObserveOutbox("sent", sent) }()

	for _, ev := range events {
		if err := r.Publisher.Publish(ctx, ev.Topic, ev.Key, []byte(ev.Payload)); err != nil {
			r.Metrics.ObserveOutbox("failed", 1)
			return sent, fmt.Errorf("publish event %s: %w", ev.EventID, err)
		}
		if err := r.Repo.MarkSent(ctx, ev.ID); err != nil {
			return sent, fmt.Errorf("mark event %s sent: %w", ev.EventID, err)
		}
		sent++
	}
	return sent, nil
}

func (r *Relay) Run(ctx context.Context) {
	interval := r.Interval
	if interval <= 0 {
		interval = time.Second
	}
	l := r.Logger
	if l == nil {
		l = slog.Default()
	}
	l = l.With("component", "outbox_relay")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.Info("outbox_relay_started", "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			l.Info("outbox_relay_stopped")
			return
		case <-ticker.C:
			n, err := r.Flush(ctx)
			if err != nil && ctx.Err() == nil {
				l.Warn("outbox_relay_error", "sent", n, "error", err)
				continue
			}
			if n > 0 {
				l.Debug("outbox_relay_flushed", "sent", n)
			}
		}
	}
}
