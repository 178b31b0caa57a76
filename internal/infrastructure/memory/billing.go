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
	_ repository.ContractRepository   = (*ContractRepo)(nil)
	_ repository.BillingRepository    = (*BillingRepo)(nil)
	_ repository.ReceivableRepository = (*ReceivableRepo)(nil)
)

// ContractRepo contratos en memoria.
type ContractRepo struct{ s *Store }

func (r *ContractRepo) Create(_ context.Context, c *entity.Contract) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.contracts[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.contracts[c.ID] = *c
	return nil
}

func (r *ContractRepo) Update(_ context.Context, c *entity.Contract) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.contracts[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.contracts[c.ID] = *c
	return nil
}

func (r *ContractRepo) GetByID(_ context.Context, id string) (*entity.Contract, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.contracts[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ContractRepo) List(_ context.Context, f repository.ContractFilter) ([]*entity.Contract, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Contract, 0, len(r.s.contracts))
	for _, c := range r.s.contracts {
		if f.ActiveOnly && !c.Active {
			continue
		}
		if f.CompanyID != "" && c.CompanyID != f.CompanyID {
			continue
		}
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// BillingRepo faturamentos en memoria. Mantiene la unicidad (contrato, competencia).
type BillingRepo struct{ s *Store }

func (r *BillingRepo) Create(_ context.Context, b *entity.Billing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.insertLocked(b)
}

func (r *BillingRepo) CreateBatch(_ context.Context, list []*entity.Billing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inserted := make([]string, 0, len(list))
	for _, b := range list {
		if err := r.insertLocked(b); err != nil {
			for _, id := range inserted {
				delete(r.s.billings, id)
			}
			return err
		}
		inserted = append(inserted, b.ID)
	}
	return nil
}

func (r *BillingRepo) insertLocked(b *entity.Billing) error {
	if _, ok := r.s.billings[b.ID]; ok {
		return domain.ErrDuplicate
	}
	if r.competencyTakenLocked(b.ContractID, b.CompetencyMonth, b.ID) {
		return domain.ErrDuplicate
	}
	r.s.billings[b.ID] = *b
	return nil
}

func (r *BillingRepo) competencyTakenLocked(contractID string, month time.Time, exceptID string) bool {
	for id, other := range r.s.billings {
		if id != exceptID && other.ContractID == contractID && other.CompetencyMonth.Equal(month) {
			return true
		}
	}
	return false
}

func (r *BillingRepo) Update(_ context.Context, b *entity.Billing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.billings[b.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.competencyTakenLocked(b.ContractID, b.CompetencyMonth, b.ID) {
		return domain.ErrDuplicate
	}
	r.s.billings[b.ID] = *b
	return nil
}

func (r *BillingRepo) UpdateStatus(_ context.Context, id, status string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.billings[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = at
	r.s.billings[id] = b
	return nil
}

func (r *BillingRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.billings[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.billings, id)
	return nil
}

func (r *BillingRepo) GetByID(_ context.Context, id string) (*entity.Billing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.billings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

// GetForUpdate equivale a GetByID: las transacciones ya están serializadas.
func (r *BillingRepo) GetForUpdate(ctx context.Context, id string) (*entity.Billing, error) {
	return r.GetByID(ctx, id)
}

func (r *BillingRepo) List(_ context.Context, f repository.BillingFilter) ([]*entity.Billing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Billing, 0)
	for _, b := range r.s.billings {
		if f.CompetencyMonth != nil && !b.CompetencyMonth.Equal(*f.CompetencyMonth) {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if f.ContractID != "" && b.ContractID != f.ContractID {
			continue
		}
		b := b
		out = append(out, &b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CompetencyMonth.Equal(out[j].CompetencyMonth) {
			return out[i].CompetencyMonth.After(out[j].CompetencyMonth)
		}
		if !out[i].IssueDate.Equal(out[j].IssueDate) {
			return out[i].IssueDate.Before(out[j].IssueDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *BillingRepo) ContractIDsWithBilling(_ context.Context, competency time.Time) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var ids []string
	for _, b := range r.s.billings {
		if b.CompetencyMonth.Equal(competency) {
			ids = append(ids, b.ContractID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// ReceivableRepo recebimentos en memoria. Un recebimento por faturamento.
type ReceivableRepo struct{ s *Store }

func (r *ReceivableRepo) Create(_ context.Context, rec *entity.Receivable) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.receivables[rec.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, other := range r.s.receivables {
		if other.BillingID == rec.BillingID {
			return domain.ErrDuplicate
		}
	}
	r.s.receivables[rec.ID] = *rec
	return nil
}

func (r *ReceivableRepo) Update(_ context.Context, rec *entity.Receivable) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.receivables[rec.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.receivables[rec.ID] = *rec
	return nil
}

func (r *ReceivableRepo) DeleteByBillingID(_ context.Context, billingID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, rec := range r.s.receivables {
		if rec.BillingID == billingID {
			delete(r.s.receivables, id)
			n++
		}
	}
	return n, nil
}

func (r *ReceivableRepo) GetByID(_ context.Context, id string) (*entity.Receivable, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.receivables[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *ReceivableRepo) GetByBillingID(_ context.Context, billingID string) (*entity.Receivable, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rec := range r.s.receivables {
		if rec.BillingID == billingID {
			rec := rec
			return &rec, nil
		}
	}
	return nil, nil
}

func (r *ReceivableRepo) List(_ context.Context, f repository.ReceivableFilter) ([]*entity.Receivable, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Receivable, 0)
	for _, rec := range r.s.receivables {
		if f.Status != "" && rec.Status != f.Status {
			continue
		}
		if f.CompanyID != "" && rec.CompanyID != f.CompanyID {
			continue
		}
		if f.DueFrom != nil && rec.DueDate.Before(*f.DueFrom) {
			continue
		}
		if f.DueTo != nil && rec.DueDate.After(*f.DueTo) {
			continue
		}
		rec := rec
		out = append(out, &rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
