package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
)

// ReceivableFilter filtros de listado de recebimentos.
type ReceivableFilter struct {
	Status    string
	CompanyID string
	DueFrom   *time.Time
	DueTo     *time.Time
}

// ReceivableRepository define el puerto de persistencia para recebimentos.
type ReceivableRepository interface {
	Create(ctx context.Context, r *entity.Receivable) error
	Update(ctx context.Context, r *entity.Receivable) error
	// DeleteByBillingID borra el recebimiento del faturamento; devuelve filas afectadas.
	DeleteByBillingID(ctx context.Context, billingID string) (int64, error)
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Receivable, error)
	// GetByBillingID devuelve (nil, nil) si el faturamento no tiene recebimento.
	GetByBillingID(ctx context.Context, billingID string) (*entity.Receivable, error)
	List(ctx context.Context, f ReceivableFilter) ([]*entity.Receivable, error)
}
