package httpserver

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/marketplace/pkg/logging"
	"github.com/Skotchmaster/marketplace/pkg/pagination"
	"github.com/Skotchmaster/marketplace/services/order/internal/domain"
	"github.com/Skotchmaster/marketplace/services/order/internal/models"
	"github.com/Skotchmaster/marketplace/services/order/internal/repo"
	"github.com/Skotchmaster/marketplace/services/order/internal/service"
	"github.com/Skotchmaster/marketplace/services/order/internal/transport"
)

const IdempotencyHeader = "Idempotency-Key"

type OrderHTTP struct {
	Svc *service.OrderService
}

func shippingOrZero(s *decimal.Decimal) decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	return *s
}

func (h *OrderHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout")

	buyerID, err := callerID(c)
	if err != nil {
		return err
	}

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "checkout_error", "invalid body", err)
	}

	lines := make([]domain.Line, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, domain.Line{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	return h.checkout(c, l, service.CheckoutInput{
		BuyerID:   buyerID,
		Lines:     lines,
		Shipping:  shippingOrZero(req.Shipping),
		AddressID: req.AddressID,
	})
}

func (h *OrderHTTP) QuickOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.quick_order")

	buyerID, err := callerID(c)
	if err != nil {
		return err
	}

	var req transport.QuickOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "quick_order_error", "invalid body", err)
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	return h.checkout(c, l, service.CheckoutInput{
		BuyerID:   buyerID,
		Lines:     []domain.Line{{ProductID: req.ProductID, Quantity: qty}},
		Shipping:  shippingOrZero(req.Shipping),
		AddressID: req.AddressID,
	})
}

func (h *OrderHTTP) checkout(c echo.Context, l *slog.Logger, in service.CheckoutInput) error {
	in.IdempotencyKey = strings.TrimSpace(c.Request().Header.Get(IdempotencyHeader))

	res, err := h.Svc.Checkout(c.Request().Context(), in)
	if err != nil {
		return fail(l, "checkout_error", err)
	}

	l.Info("checkout_success", "order_id", res.Order.ID, "total", res.Order.Total.StringFixed(2), "replayed", res.Replayed)
	if res.Replayed {
		return c.JSON(http.StatusOK, transport.NewOrderResponse(res.Order))
	}
	return c.JSON(http.StatusCreated, transport.NewOrderResponse(res.Order))
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	buyerID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "get_order_error", "invalid id", err)
	}

	o, err := h.Svc.GetOrder(ctx, buyerID, id)
	if err != nil {
		return fail(l, "get_order_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewOrderResponse(o))
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	buyerID, err := callerID(c)
	if err != nil {
		return err
	}

	page := pagination.ParseIntDefault(c.QueryParam("page"), 1)
	size := pagination.ParseIntDefault(c.QueryParam("size"), pagination.DefaultPageSize)
	offset, limit := pagination.Calculate(page, size)

	orders, err := h.Svc.ListOrders(ctx, buyerID, repo.OrderFilter{
		Status: c.QueryParam("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return fail(l, "list_orders_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewOrderList(orders, offset/limit+1, limit))
}

func (h *OrderHTTP) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel_order")

	buyerID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "cancel_order_error", "invalid id", err)
	}

	o, err := h.Svc.Cancel(ctx, buyerID, id)
	if err != nil {
		return fail(l, "cancel_order_error", err)
	}

	l.Info("cancel_order_success", "order_id", o.ID)
	return c.JSON(http.StatusOK, transport.CancelResponse{Status: models.OrderCanceled, OrderID: o.ID})
}
