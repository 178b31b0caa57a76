package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
)

// StockProductRepository define el puerto de persistencia para productos de estoque.
type StockProductRepository interface {
	Create(ctx context.Context, p *entity.StockProduct) error
	// Update actualiza solo campos descriptivos (tipo, categoría, nombre, variación).
	Update(ctx context.Context, p *entity.StockProduct) error
	// UpdateCounters reescribe la vista materializada base/in-use derivada del ledger.
	UpdateCounters(ctx context.Context, id string, base, inUse int, at time.Time) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.StockProduct, error)
	// GetForUpdate bloquea el producto (SELECT FOR UPDATE) para serializar movimientos.
	GetForUpdate(ctx context.Context, id string) (*entity.StockProduct, error)
	List(ctx context.Context) ([]*entity.StockProduct, error)
}

// StockMovementRepository define el puerto del ledger de estoque (append-only: sin Update ni Delete).
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)
	// ListByHolder movimientos de un colaborador (isEmployee) o de un puesto.
	ListByHolder(ctx context.Context, holderID string, isEmployee bool) ([]*entity.StockMovement, error)
}
