package dto

import "github.com/shopspring/decimal"

// GenerateBillingsRequest body para POST /api/billings/generate.
type GenerateBillingsRequest struct {
	Competency string `json:"competency"` // YYYY-MM
}

// GenerateBillingsResponse resultado de la generación mensual.
// NothingToDo distingue "todos los contratos ya estaban facturados" de un error.
type GenerateBillingsResponse struct {
	Competency         string            `json:"competency"`
	Generated          int               `json:"generated"`
	SkippedExisting    int               `json:"skipped_existing"`
	SkippedOutOfWindow int               `json:"skipped_out_of_window"`
	NothingToDo        bool              `json:"nothing_to_do"`
	Billings           []BillingResponse `json:"billings"`
}

// CreateBillingRequest body para POST /api/billings (faturamento manual).
type CreateBillingRequest struct {
	ContractID string          `json:"contract_id"`
	GrossValue decimal.Decimal `json:"gross_value"`
	IssueDate  string          `json:"issue_date"`         // YYYY-MM-DD
	DueDate    string          `json:"due_date,omitempty"` // vacío = regla del contrato
	Notes      string          `json:"notes,omitempty"`
}

// UpdateBillingRequest body para PUT /api/billings/:id (solo pendientes).
type UpdateBillingRequest struct {
	GrossValue *decimal.Decimal `json:"gross_value,omitempty"`
	IssueDate  *string          `json:"issue_date,omitempty"`
	DueDate    *string          `json:"due_date,omitempty"`
	Notes      *string          `json:"notes,omitempty"`
}

// BillingResponse faturamento con su desglose de retenciones.
type BillingResponse struct {
	ID                 string          `json:"id"`
	ContractID         string          `json:"contract_id"`
	CompanyID          string          `json:"company_id"`
	Competency         string          `json:"competency"`
	GrossValue         decimal.Decimal `json:"gross_value"`
	IssueDate          string          `json:"issue_date"`
	DueDate            string          `json:"due_date"`
	Status             string          `json:"status"`
	Notes              string          `json:"notes,omitempty"`
	ISSValue           decimal.Decimal `json:"iss_value"`
	PISValue           decimal.Decimal `json:"pis_value"`
	COFINSValue        decimal.Decimal `json:"cofins_value"`
	CSLLValue          decimal.Decimal `json:"csll_value"`
	IRPJValue          decimal.Decimal `json:"irpj_value"`
	INSSValue          decimal.Decimal `json:"inss_value"`
	EscrowValue        decimal.Decimal `json:"escrow_value"`
	NetInvoiceValue    decimal.Decimal `json:"net_invoice_value"`
	NetReceivableValue decimal.Decimal `json:"net_receivable_value"`
}

// IssueBillingResponse faturamento emitido y recebimento generado.
type IssueBillingResponse struct {
	Billing    BillingResponse    `json:"billing"`
	Receivable ReceivableResponse `json:"receivable"`
}
