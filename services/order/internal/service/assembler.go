package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/marketplace/services/order/internal/domain"
	"github.com/Skotchmaster/marketplace/services/order/internal/models"
)

// MaxLineQuantity bounds a single merged line.
const MaxLineQuantity = 10000

// MaxAmount is the largest value a numeric(12,2) money column holds.
var MaxAmount = decimal.RequireFromString("9999999999.99")

type OrderAssembler struct{}

// Merge sums quantities of repeated product ids, keeping first-seen order.
func (OrderAssembler) Merge(lines []domain.Line) ([]domain.Line, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrValidation)
	}

	idx := make(map[uint]int, len(lines))
	merged := make([]domain.Line, 0, len(lines))
	for _, ln := range lines {
		if ln.ProductID == 0 {
			return nil, fmt.Errorf("%w: product_id required", domain.ErrValidation)
		}
		if ln.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity for product %d must be >= 1", domain.ErrValidation, ln.ProductID)
		}
		i, ok := idx[ln.ProductID]
		if !ok {
			i = len(merged)
			idx[ln.ProductID] = i
			merged = append(merged, domain.Line{ProductID: ln.ProductID})
		}
		// compared before adding so the sum cannot wrap
		if ln.Quantity > MaxLineQuantity-merged[i].Quantity {
			return nil, fmt.Errorf("%w: quantity for product %d exceeds %d", domain.ErrValidation, ln.ProductID, MaxLineQuantity)
		}
		merged[i].Quantity += ln.Quantity
	}
	return merged, nil
}

// Build prices merged lines with the locked unit prices.
func (OrderAssembler) Build(buyerID uint, lines []domain.Line, product func(uint) (models.Product, bool), shipping decimal.Decimal) (*models.Order, error) {
	subtotal := decimal.Zero
	items := make([]models.OrderItem, 0, len(lines))
	for _, ln := range lines {
		p, ok := product(ln.ProductID)
		if !ok {
			return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, ln.ProductID)
		}
		unit := p.Price.Round(2)
		subtotal = subtotal.Add(unit.Mul(decimal.NewFromInt(int64(ln.Quantity))))
		items = append(items, models.OrderItem{
			ProductID: ln.ProductID,
			Quantity:  ln.Quantity,
			UnitPrice: unit,
		})
	}

	shipping = shipping.Round(2)
	total := subtotal.Add(shipping)
	if total.GreaterThan(MaxAmount) {
		return nil, fmt.Errorf("%w: order total %s exceeds %s", domain.ErrValidation, total.StringFixed(2), MaxAmount.StringFixed(2))
	}
	return &models.Order{
		BuyerID:  buyerID,
		Status:   models.OrderPending,
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    total,
		Items:    items,
	}, nil
}

func productIDs(lines []domain.Line) []uint {
	ids := make([]uint, 0, len(lines))
	for _, ln := range lines {
		ids = append(ids, ln.ProductID)
	}
	return ids
}

func itemLines(items []models.OrderItem) []domain.Line {
	lines := make([]domain.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, domain.Line{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return lines
}
