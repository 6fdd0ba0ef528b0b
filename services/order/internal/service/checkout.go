package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/marketplace/services/order/internal/domain"
	"github.com/Skotchmaster/marketplace/services/order/internal/models"
	"github.com/Skotchmaster/marketplace/services/order/internal/repo"
)

const maxIdempotencyKeyLen = 128

type CheckoutInput struct {
	BuyerID        uint
	Lines          []domain.Line
	Shipping       decimal.Decimal
	AddressID      *uint
	IdempotencyKey string
}

type CheckoutResult struct {
	Order *models.Order
	// Replayed is set when the idempotency key matched an earlier order.
	Replayed bool
}

// Checkout turns a cart into a pending order in one transaction: address
// snapshot, product locks in id order, stock check and decrement, order rows
// and the order_created event commit together or not at all.
func (s *OrderService) Checkout(ctx context.Context, in CheckoutInput) (res *CheckoutResult, err error) {
	started := time.Now()
	defer func() { s.Metrics.ObserveCheckout(domain.KindOf(err), started) }()

	if in.BuyerID == 0 {
		return nil, fmt.Errorf("%w: buyer required", domain.ErrValidation)
	}
	lines, err := s.Assembler.Merge(in.Lines)
	if err != nil {
		return nil, err
	}
	if !domain.ValidMoney(in.Shipping) {
		return nil, fmt.Errorf("%w: shipping must be >= 0 with at most 2 decimals", domain.ErrValidation)
	}
	if len(in.IdempotencyKey) > maxIdempotencyKeyLen {
		return nil, fmt.Errorf("%w: idempotency key longer than %d", domain.ErrValidation, maxIdempotencyKeyLen)
	}

	res = &CheckoutResult{}
	err = s.Repo.Do(ctx, func(uow *repo.UnitOfWork) error {
		if in.IdempotencyKey != "" {
			prev, err := uow.FindByIdempotencyKey(in.BuyerID, in.IdempotencyKey)
			if err != nil {
				return err
			}
			if prev != nil {
				res.Order, res.Replayed = prev, true
				return nil
			}
		}

		addressID, snapshot, err := s.Addresses.Resolve(uow, in.BuyerID, in.AddressID)
		if err != nil {
			return err
		}

		guard, err := s.Ledger.Lock(uow, productIDs(lines))
		if err != nil {
			return err
		}
		if err := guard.Reserve(lines); err != nil {
			return err
		}

		order, err := s.Assembler.Build(in.BuyerID, lines, guard.Product, in.Shipping)
		if err != nil {
			return err
		}
		order.ShippingAddressID = addressID
		order.ShippingSnapshot = snapshot
		if in.IdempotencyKey != "" {
			key := in.IdempotencyKey
			order.IdempotencyKey = &key
		}

		if err := uow.CreateOrder(order); err != nil {
			return err
		}
		if _, err := uow.Enqueue(s.EventsTopic, orderKey(order), newOrderEvent(EventOrderCreated, order)); err != nil {
			return fmt.Errorf("enqueue %s: %w", EventOrderCreated, err)
		}

		res.Order = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
