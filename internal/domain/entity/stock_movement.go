package entity

import "time"

// Tipos de movimiento de estoque.
const (
	StockMovementDeliver = "ENTREGAR"       // base -> colaborador/puesto
	StockMovementReturn  = "DEVOLVER"       // colaborador/puesto -> base
	StockMovementAddLot  = "ADICIONAR_LOTE" // entrada de lote en base
	StockMovementDiscard = "DESCARTAR_LOTE" // baja de lote en base
)

// StockMovement es un registro inmutable del ledger de estoque (append-only).
// EmployeeID y WorkSiteID son excluyentes; ambos nil en movimientos de lote.
type StockMovement struct {
	ID                 string
	ProductID          string
	Type               string
	Quantity           int // siempre positivo; el signo lo da Type
	Date               time.Time
	EmployeeID         *string
	WorkSiteID         *string
	DestinationCompany string
	Notes              string
	CreatedBy          string
	CreatedAt          time.Time
}
