package repository

import (
	"context"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
)

// EquipmentFilter filtros de listado de armamento.
// AtBase=true lista solo lo que está en la base; WorkSiteID lista un puesto.
type EquipmentFilter struct {
	Type       string
	WorkSiteID string
	AtBase     bool
}

// EquipmentRepository define el puerto de persistencia para equipamiento controlado.
type EquipmentRepository interface {
	Create(ctx context.Context, item *entity.EquipmentItem) error
	// Update reescribe cantidad, ubicación y campos descriptivos.
	Update(ctx context.Context, item *entity.EquipmentItem) error
	Delete(ctx context.Context, id string) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.EquipmentItem, error)
	GetForUpdate(ctx context.Context, id string) (*entity.EquipmentItem, error)
	// GetBySerial devuelve (nil, nil) si no hay ítem con ese número de serie.
	GetBySerial(ctx context.Context, serial string) (*entity.EquipmentItem, error)
	// FindLotForUpdate localiza el lote de munición por (descripción, ubicación); nil si no existe.
	FindLotForUpdate(ctx context.Context, description string, workSiteID *string) (*entity.EquipmentItem, error)
	List(ctx context.Context, f EquipmentFilter) ([]*entity.EquipmentItem, error)
}

// EquipmentMovementRepository log de traslados (append-only).
type EquipmentMovementRepository interface {
	Create(ctx context.Context, m *entity.EquipmentMovement) error
	// List devuelve los movimientos más recientes primero; itemID vacío = todos.
	List(ctx context.Context, itemID string, limit int) ([]*entity.EquipmentMovement, error)
}
