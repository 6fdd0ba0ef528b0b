package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ProductDraft  = "draft"
	ProductActive = "active"
	ProductPaused = "paused"
)

const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCanceled  = "canceled"
)

// Product rows are owned by the catalog; this service only touches price, stock and status.
type Product struct {
	ID            uint            `gorm:"primaryKey"`
	SellerID      uint            `gorm:"not null;index"`
	Title         string          `gorm:"type:varchar(200);not null"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:EUR"`
	StockQuantity int             `gorm:"not null;default:0;check:chk_products_stock_non_negative,stock_quantity >= 0"`
	Status        string          `gorm:"type:varchar(10);not null;default:draft;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Address struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"not null;index"`
	Label      string `gorm:"type:varchar(50)"`
	FullName   string `gorm:"type:varchar(200);not null"`
	Phone      string `gorm:"type:varchar(50)"`
	Line1      string `gorm:"type:varchar(255);not null"`
	Line2      string `gorm:"type:varchar(255)"`
	City       string `gorm:"type:varchar(120);not null"`
	State      string `gorm:"type:varchar(120)"`
	PostalCode string `gorm:"type:varchar(20)"`
	Country    string `gorm:"type:varchar(2);not null"`
	IsDefault  bool   `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ShippingSnapshot is frozen at checkout and never refreshed from the address book.
type ShippingSnapshot struct {
	Label      string `json:"label,omitempty"`
	FullName   string `json:"full_name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

func (s ShippingSnapshot) IsEmpty() bool {
	return s == ShippingSnapshot{}
}

type Order struct {
	ID                uint             `gorm:"primaryKey"`
	BuyerID           uint             `gorm:"not null;index;uniqueIndex:idx_orders_buyer_idem,priority:1"`
	Status            string           `gorm:"type:varchar(16);not null;default:pending;index"`
	Subtotal          decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	Shipping          decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	Total             decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	ShippingAddressID *uint            `gorm:"index"`
	ShippingSnapshot  ShippingSnapshot `gorm:"serializer:json;type:text"`
	IdempotencyKey    *string          `gorm:"type:varchar(128);uniqueIndex:idx_orders_buyer_idem,priority:2"`
	Items             []OrderItem      `gorm:"foreignKey:OrderID"`
	CreatedAt         time.Time        `gorm:"index"`
	UpdatedAt         time.Time
}

// OrderItem is written once together with its order and never updated.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"not null;index"`
	ProductID uint            `gorm:"not null;index"`
	Quantity  int             `gorm:"not null;check:chk_order_items_quantity_positive,quantity > 0"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

type OutboxEvent struct {
	ID        uint   `gorm:"primaryKey"`
	EventID   string `gorm:"type:varchar(36);not null;uniqueIndex"`
	Topic     string `gorm:"type:varchar(120);not null"`
	Key       string `gorm:"type:varchar(120);not null"`
	Payload   string `gorm:"type:text;not null"`
	CreatedAt time.Time
	SentAt    *time.Time `gorm:"index"`
}

func (OutboxEvent) TableName() string { return "outbox" }
