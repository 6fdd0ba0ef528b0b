package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Skotchmaster/marketplace/services/order/internal/models"
)

func TestStockErrorUnwrap(t *testing.T) {
	t.Parallel()

	short := &StockError{Shortfalls: []Shortfall{
		{ProductID: 1, Requested: 3, Available: 2, Reason: ReasonInsufficient},
	}}
	assert.ErrorIs(t, short, ErrInsufficientStock)
	assert.Equal(t, KindInsufficientStock, KindOf(short))

	mixed := &StockError{Shortfalls: []Shortfall{
		{ProductID: 1, Requested: 3, Available: 2, Reason: ReasonInsufficient},
		{ProductID: 9, Requested: 1, Reason: ReasonMissing},
	}}
	assert.ErrorIs(t, mixed, ErrNotFound)
	assert.Contains(t, mixed.Error(), "product 9: missing")

	var se *StockError
	assert.True(t, errors.As(fmt.Errorf("checkout: %w", mixed), &se))
	assert.Len(t, se.Shortfalls, 2)
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		kind string
	}{
		{nil, KindOK},
		{fmt.Errorf("%w: empty cart", ErrValidation), KindInvalidInput},
		{fmt.Errorf("%w: order 3", ErrNotFound), KindNotFound},
		{ErrInvalidAddress, KindInvalidAddress},
		{ErrInvalidState, KindInvalidState},
		{ErrConflict, KindConflict},
		{errors.New("disk on fire"), KindInternal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, KindOf(tt.err))
	}
}

func TestStatusRules(t *testing.T) {
	t.Parallel()

	assert.True(t, Cancelable(models.OrderPending))
	assert.True(t, Cancelable(models.OrderPaid))
	assert.False(t, Cancelable(models.OrderShipped))
	assert.False(t, Cancelable(models.OrderCanceled))

	assert.True(t, CanAdvance(models.OrderPending, models.OrderPaid))
	assert.True(t, CanAdvance(models.OrderShipped, models.OrderDelivered))
	assert.False(t, CanAdvance(models.OrderPending, models.OrderShipped))
	assert.False(t, CanAdvance(models.OrderPaid, models.OrderCanceled))
	assert.False(t, CanAdvance(models.OrderDelivered, models.OrderPending))
}

func TestValidMoney(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidMoney(decimal.RequireFromString("0")))
	assert.True(t, ValidMoney(decimal.RequireFromString("4.50")))
	assert.True(t, ValidMoney(decimal.RequireFromString("4.500")))
	assert.False(t, ValidMoney(decimal.RequireFromString("4.505")))
	assert.False(t, ValidMoney(decimal.RequireFromString("-1")))
}
