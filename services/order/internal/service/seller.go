package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/marketplace/services/order/internal/domain"
	"github.com/Skotchmaster/marketplace/services/order/internal/models"
	"github.com/Skotchmaster/marketplace/services/order/internal/repo"
)

func (s *OrderService) ListSellerOrders(ctx context.Context, sellerID uint, f repo.OrderFilter) ([]models.Order, error) {
	if f.Status != "" && !domain.IsOrderStatus(f.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, f.Status)
	}
	return s.Repo.ListSellerOrders(ctx, sellerID, f)
}

func (s *OrderService) GetSellerOrder(ctx context.Context, sellerID, orderID uint) (*models.Order, error) {
	return s.Repo.GetSellerOrder(ctx, sellerID, orderID)
}

// UpdateProduct applies a seller edit under the product lock. Products of
// other sellers look missing.
func (s *OrderService) UpdateProduct(ctx context.Context, sellerID, productID uint, patch domain.ProductPatch) (models.Product, error) {
	return s.withOwnProduct(ctx, sellerID, productID, func(g *repo.StockGuard) error {
		return g.Apply(productID, patch)
	})
}

func (s *OrderService) Restock(ctx context.Context, sellerID, productID uint, qty int) (models.Product, error) {
	return s.withOwnProduct(ctx, sellerID, productID, func(g *repo.StockGuard) error {
		return g.Restock(productID, qty)
	})
}

func (s *OrderService) withOwnProduct(ctx context.Context, sellerID, productID uint, fn func(g *repo.StockGuard) error) (models.Product, error) {
	var out models.Product
	err := s.Repo.Do(ctx, func(uow *repo.UnitOfWork) error {
		g, err := s.Ledger.Lock(uow, []uint{productID})
		if err != nil {
			return err
		}
		p, ok := g.Product(productID)
		if !ok || p.SellerID != sellerID {
			return fmt.Errorf("%w: product %d", domain.ErrNotFound, productID)
		}
		if err := fn(g); err != nil {
			return err
		}
		out, _ = g.Product(productID)
		return nil
	})
	return out, err
}
