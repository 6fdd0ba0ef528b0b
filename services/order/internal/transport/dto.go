package transport

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/marketplace/services/order/internal/models"
)

type LineRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CheckoutRequest struct {
	Items     []LineRequest    `json:"items"`
	AddressID *uint            `json:"address_id"`
	Shipping  *decimal.Decimal `json:"shipping"`
}

// QuickOrderRequest buys a single product; quantity defaults to 1.
type QuickOrderRequest struct {
	ProductID uint             `json:"product_id"`
	Quantity  *int             `json:"quantity"`
	AddressID *uint            `json:"address_id"`
	Shipping  *decimal.Decimal `json:"shipping"`
}

type ProductPatchRequest struct {
	Title  *string          `json:"title"`
	Price  *decimal.Decimal `json:"price"`
	Status *string          `json:"status"`
}

type RestockRequest struct {
	Quantity int `json:"quantity"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type OrderItemResponse struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

type OrderResponse struct {
	ID                uint                    `json:"id"`
	Status            string                  `json:"status"`
	Subtotal          string                  `json:"subtotal"`
	Shipping          string                  `json:"shipping"`
	Total             string                  `json:"total"`
	CreatedAt         time.Time               `json:"created_at"`
	ShippingAddressID *uint                   `json:"shipping_address_id"`
	ShippingSnapshot  models.ShippingSnapshot `json:"shipping_snapshot"`
	Items             []OrderItemResponse     `json:"items"`
}

type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
}

type CancelResponse struct {
	Status  string `json:"status"`
	OrderID uint   `json:"order_id"`
}

type ProductResponse struct {
	ID            uint   `json:"id"`
	SellerID      uint   `json:"seller_id"`
	Title         string `json:"title"`
	Price         string `json:"price"`
	Currency      string `json:"currency"`
	StockQuantity int    `json:"stock_quantity"`
	Status        string `json:"status"`
}

type ErrorBody struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
	Details   any    `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func NewOrderResponse(o *models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.StringFixed(2),
		})
	}
	return OrderResponse{
		ID:                o.ID,
		Status:            o.Status,
		Subtotal:          o.Subtotal.StringFixed(2),
		Shipping:          o.Shipping.StringFixed(2),
		Total:             o.Total.StringFixed(2),
		CreatedAt:         o.CreatedAt,
		ShippingAddressID: o.ShippingAddressID,
		ShippingSnapshot:  o.ShippingSnapshot,
		Items:             items,
	}
}

func NewOrderList(orders []models.Order, page, size int) OrderListResponse {
	out := OrderListResponse{Items: make([]OrderResponse, 0, len(orders)), Page: page, Size: size}
	for i := range orders {
		out.Items = append(out.Items, NewOrderResponse(&orders[i]))
	}
	return out
}

func NewProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		SellerID:      p.SellerID,
		Title:         p.Title,
		Price:         p.Price.StringFixed(2),
		Currency:      p.Currency,
		StockQuantity: p.StockQuantity,
		Status:        p.Status,
	}
}
