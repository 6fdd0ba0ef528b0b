package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/marketplace/services/order/internal/domain"
	"github.com/Skotchmaster/marketplace/services/order/internal/models"
)

type OrderFilter struct {
	Status string
	Limit  int
	Offset int
}

func itemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.id")
}

// CreateOrder inserts the header, then its items.
func (u *UnitOfWork) CreateOrder(o *models.Order) error {
	items := o.Items
	if err := u.tx.Omit(clause.Associations).Create(o).Error; err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for i := range items {
		items[i].OrderID = o.ID
	}
	if len(items) > 0 {
		if err := u.tx.Create(&items).Error; err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}
	}
	o.Items = items
	return nil
}

// FindByIdempotencyKey returns nil when the buyer has not used key yet.
func (u *UnitOfWork) FindByIdempotencyKey(buyerID uint, key string) (*models.Order, error) {
	var o models.Order
	err := u.tx.Preload("Items", itemsByID).
		Where("buyer_id = ? AND idempotency_key = ?", buyerID, key).
		Take(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// LockOrder takes a row lock on the order. A non-nil buyerID restricts the
// lookup to that buyer's orders.
func (u *UnitOfWork) LockOrder(orderID uint, buyerID *uint) (*models.Order, error) {
	q := u.tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", orderID)
	if buyerID != nil {
		q = q.Where("buyer_id = ?", *buyerID)
	}

	var o models.Order
	err := q.Take(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %d", domain.ErrNotFound, orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("lock order %d: %w", orderID, err)
	}

	if err := u.tx.Where("order_id = ?", o.ID).Order("id").Find(&o.Items).Error; err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	return &o, nil
}

func (u *UnitOfWork) SetOrderStatus(o *models.Order, status string) error {
	res := u.tx.Model(&models.Order{}).Where("id = ?", o.ID).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update order %d status: %w", o.ID, res.Error)
	}
	o.Status = status
	return nil
}

func (r *GormRepo) GetOrder(ctx context.Context, buyerID, orderID uint) (*models.Order, error) {
	var o models.Order
	err := r.DB.WithContext(ctx).Preload("Items", itemsByID).
		Where("id = ? AND buyer_id = ?", orderID, buyerID).
		Take(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %d", domain.ErrNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, buyerID uint, f OrderFilter) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Where("buyer_id = ?", buyerID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var orders []models.Order
	err := q.Preload("Items", itemsByID).
		Order("created_at DESC").Order("id DESC").
		Limit(f.Limit).Offset(f.Offset).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) sellerProducts(sellerID uint) *gorm.DB {
	return r.DB.Model(&models.Product{}).Select("id").Where("seller_id = ?", sellerID)
}

func (r *GormRepo) sellerItems(sellerID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("product_id IN (?)", r.sellerProducts(sellerID)).Order("order_items.id")
	}
}

// ListSellerOrders returns orders holding at least one of the seller's
// products, each carrying only that seller's items.
func (r *GormRepo) ListSellerOrders(ctx context.Context, sellerID uint, f OrderFilter) ([]models.Order, error) {
	withItems := r.DB.Model(&models.OrderItem{}).Select("order_id").Where("product_id IN (?)", r.sellerProducts(sellerID))

	q := r.DB.WithContext(ctx).Model(&models.Order{}).Where("id IN (?)", withItems)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var orders []models.Order
	err := q.Preload("Items", r.sellerItems(sellerID)).
		Order("created_at DESC").Order("id DESC").
		Limit(f.Limit).Offset(f.Offset).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) GetSellerOrder(ctx context.Context, sellerID, orderID uint) (*models.Order, error) {
	var o models.Order
	err := r.DB.WithContext(ctx).Preload("Items", r.sellerItems(sellerID)).Where("id = ?", orderID).Take(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %d", domain.ErrNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}
	if len(o.Items) == 0 {
		return nil, fmt.Errorf("%w: order %d", domain.ErrNotFound, orderID)
	}
	return &o, nil
}
