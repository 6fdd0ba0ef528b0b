package repo

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/marketplace/services/order/internal/domain"
	"github.com/Skotchmaster/marketplace/services/order/internal/models"
)

var ErrGuardReleased = errors.New("stock guard already released")

// StockLedger is the only writer of product price, stock_quantity and status.
type StockLedger struct{}

// StockGuard holds row locks on a set of products for the life of its unit of work.
type StockGuard struct {
	uow      *UnitOfWork
	rows     map[uint]*models.Product
	locked   []uint
	missing  []uint
	released bool
}

// Lock takes FOR UPDATE locks one product at a time in ascending id order, so
// two transactions over overlapping sets always queue instead of deadlocking.
// Unknown ids are remembered, not reported; callers decide what missing means.
func (StockLedger) Lock(uow *UnitOfWork, ids []uint) (*StockGuard, error) {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	g := &StockGuard{uow: uow, rows: make(map[uint]*models.Product, len(sorted))}
	uow.track(g)

	for _, id := range sorted {
		var p models.Product
		err := uow.tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).Take(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			g.missing = append(g.missing, id)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("lock product %d: %w", id, err)
		}
		g.rows[id] = &p
		g.locked = append(g.locked, id)
	}
	return g, nil
}

// Product returns a copy of the locked row.
func (g *StockGuard) Product(id uint) (models.Product, bool) {
	p, ok := g.rows[id]
	if !ok {
		return models.Product{}, false
	}
	return *p, true
}

func (g *StockGuard) Release() { g.released = true }

// Reserve checks every line before touching any row, then decrements stock.
// Products that reach zero are paused.
func (g *StockGuard) Reserve(lines []domain.Line) error {
	if g.released {
		return ErrGuardReleased
	}
	wanted, order := sumLines(lines)

	var short []domain.Shortfall
	for _, id := range order {
		qty := wanted[id]
		p, ok := g.rows[id]
		switch {
		case slices.Contains(g.missing, id):
			short = append(short, domain.Shortfall{ProductID: id, Requested: qty, Reason: domain.ReasonMissing})
		case !ok:
			return fmt.Errorf("reserve stock: product %d is not locked", id)
		case p.Status != models.ProductActive:
			short = append(short, domain.Shortfall{ProductID: id, Requested: qty, Available: p.StockQuantity, Reason: domain.ReasonInactive})
		case p.StockQuantity < qty:
			short = append(short, domain.Shortfall{ProductID: id, Requested: qty, Available: p.StockQuantity, Reason: domain.ReasonInsufficient})
		}
	}
	if len(short) > 0 {
		slices.SortFunc(short, func(a, b domain.Shortfall) int { return cmp.Compare(a.ProductID, b.ProductID) })
		return &domain.StockError{Shortfalls: short}
	}

	for _, id := range order {
		p := g.rows[id]
		p.StockQuantity -= wanted[id]
		if p.StockQuantity == 0 {
			p.Status = models.ProductPaused
		}
		if err := g.save(p); err != nil {
			return err
		}
	}
	return nil
}

// Restore gives back quantities taken by Reserve and re-lists paused products.
func (g *StockGuard) Restore(lines []domain.Line) error {
	if g.released {
		return ErrGuardReleased
	}
	wanted, order := sumLines(lines)
	for _, id := range order {
		if _, ok := g.rows[id]; !ok {
			return fmt.Errorf("restore stock: product %d is not locked", id)
		}
	}
	for _, id := range order {
		if err := g.add(g.rows[id], wanted[id]); err != nil {
			return err
		}
	}
	return nil
}

func (g *StockGuard) Restock(id uint, qty int) error {
	if g.released {
		return ErrGuardReleased
	}
	if qty < 1 {
		return fmt.Errorf("%w: restock quantity must be >= 1", domain.ErrValidation)
	}
	p, ok := g.rows[id]
	if !ok {
		return fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
	}
	return g.add(p, qty)
}

// Apply writes a seller edit. Activating an empty product is refused.
func (g *StockGuard) Apply(id uint, patch domain.ProductPatch) error {
	if g.released {
		return ErrGuardReleased
	}
	p, ok := g.rows[id]
	if !ok {
		return fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
	}
	if patch.Empty() {
		return fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}

	next := *p
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" || len(title) > 200 {
			return fmt.Errorf("%w: title must be 1..200 characters", domain.ErrValidation)
		}
		next.Title = title
	}
	if patch.Price != nil {
		if !domain.ValidMoney(*patch.Price) {
			return fmt.Errorf("%w: price must be >= 0 with at most 2 decimals", domain.ErrValidation)
		}
		next.Price = patch.Price.Round(2)
	}
	if patch.Status != nil {
		switch *patch.Status {
		case models.ProductDraft, models.ProductPaused:
		case models.ProductActive:
			if next.StockQuantity == 0 {
				return fmt.Errorf("%w: cannot activate product %d with no stock", domain.ErrInvalidState, id)
			}
		default:
			return fmt.Errorf("%w: unknown product status %q", domain.ErrValidation, *patch.Status)
		}
		next.Status = *patch.Status
	}

	*p = next
	return g.save(p)
}

func (g *StockGuard) add(p *models.Product, qty int) error {
	p.StockQuantity += qty
	if p.Status == models.ProductPaused && p.StockQuantity > 0 {
		p.Status = models.ProductActive
	}
	return g.save(p)
}

func (g *StockGuard) save(p *models.Product) error {
	err := g.uow.tx.Model(&models.Product{}).Where("id = ?", p.ID).Updates(map[string]any{
		"title":          p.Title,
		"price":          p.Price,
		"stock_quantity": p.StockQuantity,
		"status":         p.Status,
	}).Error
	if err != nil {
		return fmt.Errorf("save product %d: %w", p.ID, err)
	}
	return nil
}

// sumLines folds repeated product ids, keeping first-seen order.
func sumLines(lines []domain.Line) (map[uint]int, []uint) {
	sum := make(map[uint]int, len(lines))
	order := make([]uint, 0, len(lines))
	for _, ln := range lines {
		if _, seen := sum[ln.ProductID]; !seen {
			order = append(order, ln.ProductID)
		}
		sum[ln.ProductID] += ln.Quantity
	}
	return sum, order
}
