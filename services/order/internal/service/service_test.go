package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/pkg/metrics"
	"github.com/Skotchmaster/marketplace/services/order/internal/models"
	"github.com/Skotchmaster/marketplace/services/order/internal/repo"
)

type testEnv struct {
	DB  *gorm.DB
	Svc *OrderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection: concurrent transactions queue like rows behind FOR UPDATE
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	r := &repo.GormRepo{DB: db}
	require.NoError(t, r.Migrate(context.Background()))

	return &testEnv{DB: db, Svc: New(r, metrics.NewOrderMetrics("order"), "")}
}

func (env *testEnv) product(t *testing.T, sellerID uint, price string, stock int) models.Product {
	t.Helper()
	p := models.Product{
		SellerID:      sellerID,
		Title:         "widget",
		Price:         decimal.RequireFromString(price),
		Currency:      "EUR",
		StockQuantity: stock,
		Status:        models.ProductActive,
	}
	require.NoError(t, env.DB.Create(&p).Error)
	return p
}

func (env *testEnv) address(t *testing.T, userID uint) models.Address {
	t.Helper()
	a := models.Address{
		UserID:     userID,
		Label:      "home",
		FullName:   "Ann Lee",
		Phone:      "+371 2000000",
		Line1:      "1 Main St",
		City:       "Riga",
		PostalCode: "LV-1010",
		Country:    "LV",
		IsDefault:  true,
	}
	require.NoError(t, env.DB.Create(&a).Error)
	return a
}

func (env *testEnv) stock(t *testing.T, id uint) (int, string) {
	t.Helper()
	var p models.Product
	require.NoError(t, env.DB.First(&p, id).Error)
	return p.StockQuantity, p.Status
}

func (env *testEnv) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, env.DB.Model(model).Count(&n).Error)
	return n
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
