package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/services/order/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

// UnitOfWork is one database transaction. Every stock guard taken inside it is
// released when Do returns, whichever way it returns.
type UnitOfWork struct {
	tx     *gorm.DB
	guards []*StockGuard
}

func (u *UnitOfWork) track(g *StockGuard) {
	u.guards = append(u.guards, g)
}

func (u *UnitOfWork) release() {
	for _, g := range u.guards {
		g.Release()
	}
	u.guards = nil
}

// Do runs fn in a transaction. A nil return commits; an error or panic rolls back.
func (r *GormRepo) Do(ctx context.Context, fn func(uow *UnitOfWork) error) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		uow := &UnitOfWork{tx: tx}
		defer uow.release()
		return fn(uow)
	})
	return translate(err)
}

func (r *GormRepo) Migrate(ctx context.Context) error {
	return r.DB.WithContext(ctx).AutoMigrate(
		&models.Product{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
		&models.OutboxEvent{},
	)
}

func (r *GormRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
