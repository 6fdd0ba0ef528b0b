package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/marketplace/services/order/internal/domain"
	"github.com/Skotchmaster/marketplace/services/order/internal/models"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      []domain.Line
		want    []domain.Line
		wantErr error
	}{
		{
			name: "duplicates summed in first-seen order",
			in:   []domain.Line{{ProductID: 2, Quantity: 2}, {ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 3}},
			want: []domain.Line{{ProductID: 2, Quantity: 5}, {ProductID: 1, Quantity: 1}},
		},
		{name: "empty cart", in: nil, wantErr: domain.ErrValidation},
		{name: "zero quantity", in: []domain.Line{{ProductID: 1, Quantity: 0}}, wantErr: domain.ErrValidation},
		{name: "negative quantity", in: []domain.Line{{ProductID: 1, Quantity: -2}}, wantErr: domain.ErrValidation},
		{name: "missing product id", in: []domain.Line{{Quantity: 1}}, wantErr: domain.ErrValidation},
		{name: "merged line too large", in: []domain.Line{{ProductID: 1, Quantity: MaxLineQuantity}, {ProductID: 1, Quantity: 1}}, wantErr: domain.ErrValidation},
		{name: "single line too large", in: []domain.Line{{ProductID: 1, Quantity: MaxLineQuantity + 1}}, wantErr: domain.ErrValidation},
		{
			name:    "huge quantities do not wrap",
			in:      []domain.Line{{ProductID: 1, Quantity: math.MaxInt}, {ProductID: 1, Quantity: math.MaxInt}, {ProductID: 1, Quantity: 5}},
			wantErr: domain.ErrValidation,
		},
		{name: "line at the bound", in: []domain.Line{{ProductID: 3, Quantity: MaxLineQuantity}}, want: []domain.Line{{ProductID: 3, Quantity: MaxLineQuantity}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := OrderAssembler{}.Merge(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildTotalsAreExact(t *testing.T) {
	t.Parallel()

	prices := map[uint]models.Product{
		1: {ID: 1, Price: money("19.99")},
		2: {ID: 2, Price: money("0.10")},
	}
	lookup := func(id uint) (models.Product, bool) {
		p, ok := prices[id]
		return p, ok
	}

	o, err := OrderAssembler{}.Build(7, []domain.Line{{ProductID: 1, Quantity: 3}, {ProductID: 2, Quantity: 3}}, lookup, money("4.50"))
	require.NoError(t, err)

	assert.Equal(t, "60.27", o.Subtotal.StringFixed(2))
	assert.Equal(t, "4.50", o.Shipping.StringFixed(2))
	assert.Equal(t, "64.77", o.Total.StringFixed(2))
	assert.True(t, o.Total.Equal(o.Subtotal.Add(o.Shipping)))
	assert.Equal(t, models.OrderPending, o.Status)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "19.99", o.Items[0].UnitPrice.StringFixed(2))

	_, err = OrderAssembler{}.Build(7, []domain.Line{{ProductID: 9, Quantity: 1}}, lookup, money("0"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuildRejectsTotalAboveColumnRange(t *testing.T) {
	t.Parallel()

	lookup := func(id uint) (models.Product, bool) {
		return models.Product{ID: id, Price: money("9999999.99")}, true
	}

	_, err := OrderAssembler{}.Build(7, []domain.Line{{ProductID: 1, Quantity: MaxLineQuantity}}, lookup, money("0"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	o, err := OrderAssembler{}.Build(7, []domain.Line{{ProductID: 1, Quantity: 1000}}, lookup, money("9.99"))
	require.NoError(t, err)
	assert.Equal(t, MaxAmount.StringFixed(2), o.Total.StringFixed(2))
}
