package domain

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/marketplace/services/order/internal/models"
)

// Line is one requested (product, quantity) pair.
type Line struct {
	ProductID uint
	Quantity  int
}

func Cancelable(status string) bool {
	return status == models.OrderPending || status == models.OrderPaid
}

var nextStatus = map[string]string{
	models.OrderPending: models.OrderPaid,
	models.OrderPaid:    models.OrderShipped,
	models.OrderShipped: models.OrderDelivered,
}

// CanAdvance reports whether fulfillment may move an order from one status to another.
// Cancellation is not a fulfillment step.
func CanAdvance(from, to string) bool {
	next, ok := nextStatus[from]
	return ok && next == to
}

func IsOrderStatus(s string) bool {
	switch s {
	case models.OrderPending, models.OrderPaid, models.OrderShipped, models.OrderDelivered, models.OrderCanceled:
		return true
	}
	return false
}

// ProductPatch is the complete set of seller-editable product fields.
type ProductPatch struct {
	Title  *string
	Price  *decimal.Decimal
	Status *string
}

func (p ProductPatch) Empty() bool {
	return p.Title == nil && p.Price == nil && p.Status == nil
}

// ValidMoney accepts non-negative amounts with at most two decimal places.
func ValidMoney(d decimal.Decimal) bool {
	return !d.IsNegative() && d.Equal(d.Round(2))
}
