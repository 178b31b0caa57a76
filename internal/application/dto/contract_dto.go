package dto

import "github.com/shopspring/decimal"

// ContractRequest body para POST/PUT /api/contracts.
type ContractRequest struct {
	CompanyID        string          `json:"company_id"`
	WorkSiteID       string          `json:"work_site_id"`
	Description      string          `json:"description"`
	MonthlyBaseValue decimal.Decimal `json:"monthly_base_value"`
	BillingDay       int             `json:"billing_day"`
	DueDay           int             `json:"due_day"`
	StartDate        string          `json:"start_date,omitempty"` // YYYY-MM-DD
	DurationMonths   int             `json:"duration_months"`
	Active           *bool           `json:"active,omitempty"` // por defecto true al crear

	RetainISS    bool            `json:"retain_iss"`
	ISSRate      decimal.Decimal `json:"iss_rate"`
	RetainPIS    bool            `json:"retain_pis"`
	RetainCOFINS bool            `json:"retain_cofins"`
	RetainCSLL   bool            `json:"retain_csll"`
	RetainIRPJ   bool            `json:"retain_irpj"`
	RetainINSS   bool            `json:"retain_inss"`
	RetainEscrow bool            `json:"retain_escrow"`
	EscrowRate   decimal.Decimal `json:"escrow_rate"`
}

// ContractResponse contrato en respuestas.
type ContractResponse struct {
	ID               string          `json:"id"`
	CompanyID        string          `json:"company_id"`
	WorkSiteID       string          `json:"work_site_id"`
	Description      string          `json:"description"`
	MonthlyBaseValue decimal.Decimal `json:"monthly_base_value"`
	BillingDay       int             `json:"billing_day"`
	DueDay           int             `json:"due_day"`
	StartDate        *string         `json:"start_date,omitempty"`
	EndDate          *string         `json:"end_date,omitempty"`
	DurationMonths   int             `json:"duration_months"`
	Active           bool            `json:"active"`

	RetainISS    bool            `json:"retain_iss"`
	ISSRate      decimal.Decimal `json:"iss_rate"`
	RetainPIS    bool            `json:"retain_pis"`
	RetainCOFINS bool            `json:"retain_cofins"`
	RetainCSLL   bool            `json:"retain_csll"`
	RetainIRPJ   bool            `json:"retain_irpj"`
	RetainINSS   bool            `json:"retain_inss"`
	RetainEscrow bool            `json:"retain_escrow"`
	EscrowRate   decimal.Decimal `json:"escrow_rate"`
}
