package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del recebimento.
const (
	ReceivableStatusPending  = "PENDING"
	ReceivableStatusReceived = "RECEIVED"
)

// Receivable es la cuenta por cobrar generada al emitir un faturamento (1 por faturamento).
type Receivable struct {
	ID           string
	CompanyID    string
	BillingID    string
	Value        decimal.Decimal
	DueDate      time.Time
	Status       string
	ReceivedDate *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOverdue indica si sigue pendiente después de su vencimiento.
func (r *Receivable) IsOverdue(today time.Time) bool {
	if r.Status != ReceivableStatusPending {
		return false
	}
	y, m, d := today.Date()
	return r.DueDate.Before(time.Date(y, m, d, 0, 0, 0, 0, r.DueDate.Location()))
}
