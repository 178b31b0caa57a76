package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract representa un contrato de prestación de servicios de seguridad con una empresa cliente
// en un puesto (work site). Define el valor mensual, el calendario de facturación y las retenciones.
type Contract struct {
	ID               string
	CompanyID        string // empresa cliente
	WorkSiteID       string // puesto de servicio
	Description      string
	MonthlyBaseValue decimal.Decimal
	BillingDay       int // 0 = sin día fijo; 1..31
	DueDay           int // 0 = vence el mismo día de emisión; 1..31
	StartDate        *time.Time
	DurationMonths   int // 0 = sin vigencia definida
	Active           bool

	RetainISS    bool
	ISSRate      decimal.Decimal // porcentaje, ej. 5 = 5%
	RetainPIS    bool
	RetainCOFINS bool
	RetainCSLL   bool
	RetainIRPJ   bool
	RetainINSS   bool
	RetainEscrow bool
	EscrowRate   decimal.Decimal // porcentaje de caução

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndDate devuelve el último día de vigencia (start + meses - 1 día).
// ok=false si el contrato no tiene fecha de inicio o duración.
func (c *Contract) EndDate() (end time.Time, ok bool) {
	if c.StartDate == nil || c.DurationMonths <= 0 {
		return time.Time{}, false
	}
	return c.StartDate.AddDate(0, c.DurationMonths, -1), true
}
