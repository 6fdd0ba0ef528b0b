package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/marketplace/services/order/internal/domain"
	"github.com/Skotchmaster/marketplace/services/order/internal/models"
	"github.com/Skotchmaster/marketplace/services/order/internal/repo"
)

func (s *OrderService) GetOrder(ctx context.Context, buyerID, orderID uint) (*models.Order, error) {
	return s.Repo.GetOrder(ctx, buyerID, orderID)
}

// ListOrders is newest first and takes no locks.
func (s *OrderService) ListOrders(ctx context.Context, buyerID uint, f repo.OrderFilter) ([]models.Order, error) {
	if f.Status != "" && !domain.IsOrderStatus(f.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, f.Status)
	}
	return s.Repo.ListOrders(ctx, buyerID, f)
}

// AdvanceStatus moves an order one fulfillment step forward.
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID uint, to string) (*models.Order, error) {
	if !domain.IsOrderStatus(to) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, to)
	}

	var order *models.Order
	err := s.Repo.Do(ctx, func(uow *repo.UnitOfWork) error {
		o, err := uow.LockOrder(orderID, nil)
		if err != nil {
			return err
		}
		if !domain.CanAdvance(o.Status, to) {
			return fmt.Errorf("%w: order %d cannot go from %s to %s", domain.ErrInvalidState, o.ID, o.Status, to)
		}
		if err := uow.SetOrderStatus(o, to); err != nil {
			return err
		}
		if _, err := uow.Enqueue(s.EventsTopic, orderKey(o), newOrderEvent(EventOrderStatusChanged, o)); err != nil {
			return fmt.Errorf("enqueue %s: %w", EventOrderStatusChanged, err)
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Metrics.ObserveStatusChange(to)
	return order, nil
}
