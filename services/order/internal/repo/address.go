package repo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/services/order/internal/domain"
	"github.com/Skotchmaster/marketplace/services/order/internal/models"
)

type AddressResolver struct{}

// Resolve checks that addressID belongs to buyerID and copies its fields.
// A nil addressID means "no address" and yields an empty snapshot.
func (AddressResolver) Resolve(uow *UnitOfWork, buyerID uint, addressID *uint) (*uint, models.ShippingSnapshot, error) {
	if addressID == nil {
		return nil, models.ShippingSnapshot{}, nil
	}

	var a models.Address
	err := uow.tx.Where("id = ? AND user_id = ?", *addressID, buyerID).Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ShippingSnapshot{}, fmt.Errorf("%w: address %d is not one of the buyer's addresses", domain.ErrInvalidAddress, *addressID)
	}
	if err != nil {
		return nil, models.ShippingSnapshot{}, fmt.Errorf("load address: %w", err)
	}

	id := a.ID
	return &id, Snapshot(a), nil
}

func Snapshot(a models.Address) models.ShippingSnapshot {
	return models.ShippingSnapshot{
		Label:      a.Label,
		FullName:   a.FullName,
		Phone:      a.Phone,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}
