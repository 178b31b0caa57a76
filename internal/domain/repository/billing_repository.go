package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
)

// BillingFilter filtros de listado de faturamentos (campos vacíos = sin filtro).
type BillingFilter struct {
	CompetencyMonth *time.Time
	Status          string
	ContractID      string
}

// BillingRepository define el puerto de persistencia para faturamentos.
type BillingRepository interface {
	Create(ctx context.Context, b *entity.Billing) error
	// CreateBatch inserta todos los faturamentos generados para una competencia.
	CreateBatch(ctx context.Context, list []*entity.Billing) error
	// Update reescribe valores, fechas, impuestos y estado.
	Update(ctx context.Context, b *entity.Billing) error
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
	Delete(ctx context.Context, id string) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Billing, error)
	// GetForUpdate como GetByID bloqueando la fila dentro de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Billing, error)
	List(ctx context.Context, f BillingFilter) ([]*entity.Billing, error)
	// ContractIDsWithBilling IDs de contratos que ya tienen faturamento en la competencia.
	ContractIDsWithBilling(ctx context.Context, competency time.Time) ([]string, error)
}
