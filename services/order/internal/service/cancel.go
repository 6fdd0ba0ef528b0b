package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/marketplace/services/order/internal/domain"
	"github.com/Skotchmaster/marketplace/services/order/internal/models"
	"github.com/Skotchmaster/marketplace/services/order/internal/repo"
)

// Cancel reverses a checkout. The status is re-checked under the order lock,
// so of two concurrent cancels only one restores stock.
func (s *OrderService) Cancel(ctx context.Context, buyerID, orderID uint) (order *models.Order, err error) {
	defer func() { s.Metrics.ObserveCancel(domain.KindOf(err)) }()

	err = s.Repo.Do(ctx, func(uow *repo.UnitOfWork) error {
		o, err := uow.LockOrder(orderID, &buyerID)
		if err != nil {
			return err
		}
		if !domain.Cancelable(o.Status) {
			return fmt.Errorf("%w: order %d is %s", domain.ErrInvalidState, o.ID, o.Status)
		}

		lines := itemLines(o.Items)
		guard, err := s.Ledger.Lock(uow, productIDs(lines))
		if err != nil {
			return err
		}
		if err := guard.Restore(lines); err != nil {
			return err
		}

		if err := uow.SetOrderStatus(o, models.OrderCanceled); err != nil {
			return err
		}
		if _, err := uow.Enqueue(s.EventsTopic, orderKey(o), newOrderEvent(EventOrderCanceled, o)); err != nil {
			return fmt.Errorf("enqueue %s: %w", EventOrderCanceled, err)
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
