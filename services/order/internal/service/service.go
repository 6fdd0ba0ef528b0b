package service

import (
	"github.com/Skotchmaster/marketplace/pkg/metrics"
	"github.com/Skotchmaster/marketplace/services/order/internal/repo"
)

const DefaultEventsTopic = "order_events"

type OrderService struct {
	Repo      *repo.GormRepo
	Ledger    repo.StockLedger
	Addresses repo.AddressResolver
	Assembler OrderAssembler
	Metrics   *metrics.OrderMetrics

	EventsTopic string
}

func New(r *repo.GormRepo, m *metrics.OrderMetrics, eventsTopic string) *OrderService {
	if eventsTopic == "" {
		eventsTopic = DefaultEventsTopic
	}
	return &OrderService{Repo: r, Metrics: m, EventsTopic: eventsTopic}
}
