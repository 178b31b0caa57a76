package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
)

// StockTxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que validar, anotar el movimiento y recalcular saldos sea atómico.
type StockTxRunner interface {
	RunStock(ctx context.Context, fn func(
		productRepo repository.StockProductRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

// EquipmentTxRunner igual que StockTxRunner para armamento (split/merge de lotes + auditoría).
type EquipmentTxRunner interface {
	RunEquipment(ctx context.Context, fn func(
		itemRepo repository.EquipmentRepository,
		movementRepo repository.EquipmentMovementRepository,
	) error) error
}

// Clock fuente de la fecha actual (inyectable en tests).
type Clock func() time.Time
