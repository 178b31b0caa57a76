package repository

import (
	"context"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
)

// ContractFilter filtros de listado de contratos.
type ContractFilter struct {
	ActiveOnly bool
	CompanyID  string
}

// ContractRepository define el puerto de persistencia para contratos.
type ContractRepository interface {
	Create(ctx context.Context, c *entity.Contract) error
	Update(ctx context.Context, c *entity.Contract) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Contract, error)
	List(ctx context.Context, f ContractFilter) ([]*entity.Contract, error)
}
