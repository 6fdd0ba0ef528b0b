package service

import (
	"strconv"
	"time"

	"github.com/Skotchmaster/marketplace/services/order/internal/models"
)

const (
	EventOrderCreated       = "order_created"
	EventOrderCanceled      = "order_canceled"
	EventOrderStatusChanged = "order_status_changed"
)

type EventItem struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

type OrderEvent struct {
	Type       string      `json:"type"`
	OrderID    uint        `json:"order_id"`
	BuyerID    uint        `json:"buyer_id"`
	Status     string      `json:"status"`
	Total      string      `json:"total"`
	Items      []EventItem `json:"items,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func newOrderEvent(typ string, o *models.Order) OrderEvent {
	items := make([]EventItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, EventItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.StringFixed(2),
		})
	}
	return OrderEvent{
		Type:       typ,
		OrderID:    o.ID,
		BuyerID:    o.BuyerID,
		Status:     o.Status,
		Total:      o.Total.StringFixed(2),
		Items:      items,
		OccurredAt: time.Now().UTC(),
	}
}

func orderKey(o *models.Order) string {
	return strconv.FormatUint(uint64(o.ID), 10)
}
