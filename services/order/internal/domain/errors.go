package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation        = errors.New("validation")         // 400
	ErrNotFound          = errors.New("not found")          // 404
	ErrInsufficientStock = errors.New("insufficient stock") // 409
	ErrInvalidAddress    = errors.New("invalid address")    // 422
	ErrInvalidState      = errors.New("invalid state")      // 409
	ErrConflict          = errors.New("conflict")           // 409, retryable
)

const (
	KindOK                = "ok"
	KindNotFound          = "not_found"
	KindInvalidInput      = "invalid_input"
	KindInsufficientStock = "insufficient_stock"
	KindInvalidAddress    = "invalid_address"
	KindInvalidState      = "invalid_state"
	KindConflict          = "conflict"
	KindInternal          = "internal"
)

const (
	ReasonMissing      = "missing"
	ReasonInactive     = "inactive"
	ReasonInsufficient = "insufficient"
)

type Shortfall struct {
	ProductID uint   `json:"product_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
	Reason    string `json:"reason"`
}

// StockError lists every line that failed validation under the product locks.
type StockError struct {
	Shortfalls []Shortfall
}

func (e *StockError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, fmt.Sprintf("product %d: %s (requested %d, available %d)", s.ProductID, s.Reason, s.Requested, s.Available))
	}
	return e.Unwrap().Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap reports not found when any line is missing or not purchasable.
func (e *StockError) Unwrap() error {
	for _, s := range e.Shortfalls {
		if s.Reason != ReasonInsufficient {
			return ErrNotFound
		}
	}
	return ErrInsufficientStock
}

func KindOf(err error) string {
	switch {
	case err == nil:
		return KindOK
	case errors.Is(err, ErrValidation):
		return KindInvalidInput
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInsufficientStock):
		return KindInsufficientStock
	case errors.Is(err, ErrInvalidAddress):
		return KindInvalidAddress
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindInternal
	}
}
