package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
)

var (
	_ repository.EquipmentRepository         = (*EquipmentRepo)(nil)
	_ repository.EquipmentMovementRepository = (*EquipmentMovementRepo)(nil)
)

// EquipmentRepo armamento en memoria. Los números de serie son únicos.
type EquipmentRepo struct{ s *Store }

func (r *EquipmentRepo) Create(_ context.Context, item *entity.EquipmentItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.equipment[item.ID]; ok {
		return domain.ErrDuplicate
	}
	if r.serialTakenLocked(item.SerialNumber, item.ID) {
		return domain.ErrDuplicate
	}
	r.s.equipment[item.ID] = *item
	return nil
}

func (r *EquipmentRepo) serialTakenLocked(serial *string, exceptID string) bool {
	if serial == nil {
		return false
	}
	for id, other := range r.s.equipment {
		if id != exceptID && other.SerialNumber != nil && *other.SerialNumber == *serial {
			return true
		}
	}
	return false
}

func (r *EquipmentRepo) Update(_ context.Context, item *entity.EquipmentItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.equipment[item.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.serialTakenLocked(item.SerialNumber, item.ID) {
		return domain.ErrDuplicate
	}
	r.s.equipment[item.ID] = *item
	return nil
}

func (r *EquipmentRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.equipment[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.equipment, id)
	return nil
}

func (r *EquipmentRepo) GetByID(_ context.Context, id string) (*entity.EquipmentItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	item, ok := r.s.equipment[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *EquipmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.EquipmentItem, error) {
	return r.GetByID(ctx, id)
}

func (r *EquipmentRepo) GetBySerial(_ context.Context, serial string) (*entity.EquipmentItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, item := range r.s.equipment {
		if item.SerialNumber != nil && *item.SerialNumber == serial {
			item := item
			return &item, nil
		}
	}
	return nil, nil
}

func (r *EquipmentRepo) FindLotForUpdate(_ context.Context, description string, workSiteID *string) (*entity.EquipmentItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, item := range r.s.equipment {
		if item.Type == entity.EquipmentTypeAmmo && item.Description == description && sameLocation(item.WorkSiteID, workSiteID) {
			item := item
			return &item, nil
		}
	}
	return nil, nil
}

func (r *EquipmentRepo) List(_ context.Context, f repository.EquipmentFilter) ([]*entity.EquipmentItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.EquipmentItem, 0)
	for _, item := range r.s.equipment {
		if f.Type != "" && item.Type != f.Type {
			continue
		}
		if f.AtBase && item.WorkSiteID != nil {
			continue
		}
		if f.WorkSiteID != "" && (item.WorkSiteID == nil || *item.WorkSiteID != f.WorkSiteID) {
			continue
		}
		item := item
		out = append(out, &item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		if out[i].Description != out[j].Description {
			return out[i].Description < out[j].Description
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func sameLocation(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// EquipmentMovementRepo log de traslados en memoria.
type EquipmentMovementRepo struct{ s *Store }

func (r *EquipmentMovementRepo) Create(_ context.Context, m *entity.EquipmentMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.equipMovements = append(r.s.equipMovements, *m)
	return nil
}

func (r *EquipmentMovementRepo) List(_ context.Context, itemID string, limit int) ([]*entity.EquipmentMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.EquipmentMovement, 0)
	for i := len(r.s.equipMovements) - 1; i >= 0; i-- {
		m := r.s.equipMovements[i]
		if itemID != "" && (m.ItemID == nil || *m.ItemID != itemID) {
			continue
		}
		out = append(out, &m)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
