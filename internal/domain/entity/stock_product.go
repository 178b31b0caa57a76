package entity

import "time"

// Tipos de producto de estoque.
const (
	StockProductIndividual = "INDIVIDUAL" // uniforme, EPI personal
	StockProductCollective = "COLLECTIVE" // material del puesto
)

// StockProduct representa un ítem de estoque general.
// BaseStock e InUseStock son una vista materializada del ledger de movimientos:
// se recalculan tras cada movimiento y nunca se editan a mano.
type StockProduct struct {
	ID            string
	Type          string
	Category      string
	Name          string
	Variation     string // talla, color, etc.
	ReferenceCode string
	BaseStock     int
	InUseStock    int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
