package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/marketplace/services/order/internal/domain"
	"github.com/Skotchmaster/marketplace/services/order/internal/models"
	"github.com/Skotchmaster/marketplace/services/order/internal/repo"
)

func TestUpdateProductOwnership(t *testing.T) {
	env := newTestEnv(t)
	p := env.product(t, 3, "1.00", 0)
	title := "Renamed"

	_, err := env.Svc.UpdateProduct(context.Background(), 4, p.ID, domain.ProductPatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.Svc.UpdateProduct(context.Background(), 3, 777, domain.ProductPatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := env.Svc.UpdateProduct(context.Background(), 3, p.ID, domain.ProductPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
}

func TestRestockRelistsPausedProduct(t *testing.T) {
	env := newTestEnv(t)
	p := env.product(t, 3, "1.00", 1)
	checkout(t, env, 7, domain.Line{ProductID: p.ID, Quantity: 1})

	_, status := env.stock(t, p.ID)
	require.Equal(t, models.ProductPaused, status)

	got, err := env.Svc.Restock(context.Background(), 3, p.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, got.StockQuantity)
	assert.Equal(t, models.ProductActive, got.Status)

	_, err = env.Svc.Restock(context.Background(), 4, p.ID, 4)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSellerSeesOnlyOwnItems(t *testing.T) {
	env := newTestEnv(t)
	mine := env.product(t, 3, "1.00", 10)
	theirs := env.product(t, 4, "2.00", 10)

	o := checkout(t, env, 7, domain.Line{ProductID: mine.ID, Quantity: 1}, domain.Line{ProductID: theirs.ID, Quantity: 2})
	checkout(t, env, 8, domain.Line{ProductID: theirs.ID, Quantity: 1})

	orders, err := env.Svc.ListSellerOrders(context.Background(), 3, repo.OrderFilter{Limit: 20})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, o.ID, orders[0].ID)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, mine.ID, orders[0].Items[0].ProductID)

	orders, err = env.Svc.ListSellerOrders(context.Background(), 4, repo.OrderFilter{Limit: 20})
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	_, err = env.Svc.ListSellerOrders(context.Background(), 4, repo.OrderFilter{Status: "lost", Limit: 20})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAdvanceStatus(t *testing.T) {
	env := newTestEnv(t)
	p := env.product(t, 3, "1.00", 10)
	o := checkout(t, env, 7, domain.Line{ProductID: p.ID, Quantity: 1})

	_, err := env.Svc.AdvanceStatus(context.Background(), o.ID, models.OrderShipped)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "cannot skip paid")

	_, err = env.Svc.AdvanceStatus(context.Background(), o.ID, models.OrderCanceled)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = env.Svc.AdvanceStatus(context.Background(), o.ID, "teleported")
	assert.ErrorIs(t, err, domain.ErrValidation)

	for _, s := range []string{models.OrderPaid, models.OrderShipped, models.OrderDelivered} {
		got, err := env.Svc.AdvanceStatus(context.Background(), o.ID, s)
		require.NoError(t, err)
		assert.Equal(t, s, got.Status)
	}

	_, err = env.Svc.AdvanceStatus(context.Background(), 4242, models.OrderPaid)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListOrdersNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	p := env.product(t, 3, "1.00", 10)
	first := checkout(t, env, 7, domain.Line{ProductID: p.ID, Quantity: 1})
	second := checkout(t, env, 7, domain.Line{ProductID: p.ID, Quantity: 1})
	checkout(t, env, 8, domain.Line{ProductID: p.ID, Quantity: 1})

	orders, err := env.Svc.ListOrders(context.Background(), 7, repo.OrderFilter{Limit: 20})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
	assert.Len(t, orders[0].Items, 1)

	page, err := env.Svc.ListOrders(context.Background(), 7, repo.OrderFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, first.ID, page[0].ID)
}
