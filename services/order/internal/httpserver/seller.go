package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/pkg/logging"
	"github.com/Skotchmaster/marketplace/pkg/pagination"
	"github.com/Skotchmaster/marketplace/services/order/internal/domain"
	"github.com/Skotchmaster/marketplace/services/order/internal/repo"
	"github.com/Skotchmaster/marketplace/services/order/internal/service"
	"github.com/Skotchmaster/marketplace/services/order/internal/transport"
)

type SellerHTTP struct {
	Svc *service.OrderService
}

func (h *SellerHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "seller.list_orders")

	sellerID, err := callerID(c)
	if err != nil {
		return err
	}

	page := pagination.ParseIntDefault(c.QueryParam("page"), 1)
	size := pagination.ParseIntDefault(c.QueryParam("size"), pagination.DefaultPageSize)
	offset, limit := pagination.Calculate(page, size)

	orders, err := h.Svc.ListSellerOrders(ctx, sellerID, repo.OrderFilter{
		Status: c.QueryParam("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return fail(l, "seller_list_orders_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewOrderList(orders, offset/limit+1, limit))
}

func (h *SellerHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "seller.get_order")

	sellerID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "seller_get_order_error", "invalid id", err)
	}

	o, err := h.Svc.GetSellerOrder(ctx, sellerID, id)
	if err != nil {
		return fail(l, "seller_get_order_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewOrderResponse(o))
}

// PatchProduct accepts only title, price and status; any other field is rejected.
func (h *SellerHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "seller.patch_product")

	sellerID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "patch_product_error", "invalid id", err)
	}

	var req transport.ProductPatchRequest
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return badRequest(l, "patch_product_error", "invalid body: only title, price and status can be changed", err)
	}

	p, err := h.Svc.UpdateProduct(ctx, sellerID, id, domain.ProductPatch{
		Title:  req.Title,
		Price:  req.Price,
		Status: req.Status,
	})
	if err != nil {
		return fail(l, "patch_product_error", err)
	}

	l.Info("patch_product_success", "product_id", p.ID, "status", p.Status)
	return c.JSON(http.StatusOK, transport.NewProductResponse(p))
}

func (h *SellerHTTP) Restock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "seller.restock")

	sellerID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "restock_error", "invalid id", err)
	}

	var req transport.RestockRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "restock_error", "invalid body", err)
	}

	p, err := h.Svc.Restock(ctx, sellerID, id, req.Quantity)
	if err != nil {
		return fail(l, "restock_error", err)
	}

	l.Info("restock_success", "product_id", p.ID, "stock_quantity", p.StockQuantity)
	return c.JSON(http.StatusOK, transport.NewProductResponse(p))
}
