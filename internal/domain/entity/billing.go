package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del faturamento.
const (
	BillingStatusPending = "PENDING" // pendiente, editable
	BillingStatusBilled  = "BILLED"  // emitido, con recebimento generado
)

// Billing representa un faturamento mensual (competencia) de un contrato.
// Los campos de impuestos se derivan de GrossValue y de la configuración del contrato.
type Billing struct {
	ID              string
	ContractID      string
	CompanyID       string
	CompetencyMonth time.Time // primer día del mes
	GrossValue      decimal.Decimal
	IssueDate       time.Time
	DueDate         time.Time
	Status          string
	Notes           string

	ISSValue           decimal.Decimal
	PISValue           decimal.Decimal
	COFINSValue        decimal.Decimal
	CSLLValue          decimal.Decimal
	IRPJValue          decimal.Decimal
	INSSValue          decimal.Decimal
	EscrowValue        decimal.Decimal
	NetInvoiceValue    decimal.Decimal
	NetReceivableValue decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending indica si el faturamento admite edición, emisión o borrado.
func (b *Billing) IsPending() bool {
	return b.Status == BillingStatusPending
}
