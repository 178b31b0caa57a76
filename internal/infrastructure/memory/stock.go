package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
)

var (
	_ repository.StockProductRepository  = (*StockProductRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
)

// StockProductRepo productos de estoque en memoria.
type StockProductRepo struct{ s *Store }

func (r *StockProductRepo) Create(_ context.Context, p *entity.StockProduct) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, other := range r.s.products {
		if p.ReferenceCode != "" && other.ReferenceCode == p.ReferenceCode {
			return domain.ErrDuplicate
		}
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *StockProductRepo) Update(_ context.Context, p *entity.StockProduct) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Type = p.Type
	cur.Category = p.Category
	cur.Name = p.Name
	cur.Variation = p.Variation
	cur.UpdatedAt = p.UpdatedAt
	r.s.products[p.ID] = cur
	return nil
}

func (r *StockProductRepo) UpdateCounters(_ context.Context, id string, base, inUse int, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.BaseStock = base
	p.InUseStock = inUse
	p.UpdatedAt = at
	r.s.products[id] = p
	return nil
}

func (r *StockProductRepo) GetByID(_ context.Context, id string) (*entity.StockProduct, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *StockProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockProduct, error) {
	return r.GetByID(ctx, id)
}

func (r *StockProductRepo) List(_ context.Context) ([]*entity.StockProduct, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.StockProduct, 0, len(r.s.products))
	for _, p := range r.s.products {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		if out[i].Variation != out[j].Variation {
			return out[i].Variation < out[j].Variation
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// StockMovementRepo ledger de estoque en memoria (append-only), en orden de inserción.
type StockMovementRepo struct{ s *Store }

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stockMovements = append(r.s.stockMovements, *m)
	return nil
}

func (r *StockMovementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockMovement, error) {
	return r.filter(func(m *entity.StockMovement) bool { return m.ProductID == productID }), nil
}

func (r *StockMovementRepo) ListByHolder(_ context.Context, holderID string, isEmployee bool) ([]*entity.StockMovement, error) {
	return r.filter(func(m *entity.StockMovement) bool {
		if isEmployee {
			return m.EmployeeID != nil && *m.EmployeeID == holderID
		}
		return m.WorkSiteID != nil && *m.WorkSiteID == holderID
	}), nil
}

func (r *StockMovementRepo) filter(keep func(*entity.StockMovement) bool) []*entity.StockMovement {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.StockMovement, 0)
	for i := range r.s.stockMovements {
		m := r.s.stockMovements[i]
		if keep(&m) {
			out = append(out, &m)
		}
	}
	return out
}
