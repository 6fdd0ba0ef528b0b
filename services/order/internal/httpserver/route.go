package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/marketplace/pkg/middleware/auth"
)

type Deps struct {
	OrderHandler  *OrderHTTP
	SellerHandler *SellerHTTP
	AdminHandler  *AdminHTTP
	JWTSecret     []byte

	Ready   func(ctx context.Context) error
	Metrics http.Handler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready == nil {
			return c.NoContent(http.StatusOK)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := d.Ready(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "db_error"})
		}
		return c.NoContent(http.StatusOK)
	})
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics))
	}

	auth := authmw.RequireAuth(d.JWTSecret)

	orders := e.Group("/orders", auth)
	orders.GET("", d.OrderHandler.ListOrders)
	orders.POST("", d.OrderHandler.Checkout)
	orders.POST("/quick", d.OrderHandler.QuickOrder)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.POST("/:id/cancel", d.OrderHandler.CancelOrder)

	seller := e.Group("/seller", auth, authmw.RequireRole("seller", "admin"))
	seller.GET("/orders", d.SellerHandler.ListOrders)
	seller.GET("/orders/:id", d.SellerHandler.GetOrder)
	seller.PATCH("/products/:id", d.SellerHandler.PatchProduct)
	seller.POST("/products/:id/restock", d.SellerHandler.Restock)

	admin := e.Group("/admin", auth, authmw.RequireRole("admin"))
	admin.PATCH("/orders/:id/status", d.AdminHandler.UpdateStatus)
}
