package dto

import "github.com/shopspring/decimal"

// UpdateReceivableRequest body para PUT /api/receivables/:id (solo pendientes).
type UpdateReceivableRequest struct {
	Value   *decimal.Decimal `json:"value,omitempty"`
	DueDate *string          `json:"due_date,omitempty"`
	Status  *string          `json:"status,omitempty"`
}

// ReceiveRequest body opcional para POST /api/receivables/:id/receive.
type ReceiveRequest struct {
	ReceivedDate string `json:"received_date,omitempty"` // vacío = hoy
}

// ReceivableResponse recebimento en respuestas.
type ReceivableResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	BillingID    string          `json:"billing_id"`
	Value        decimal.Decimal `json:"value"`
	DueDate      string          `json:"due_date"`
	Status       string          `json:"status"`
	ReceivedDate *string         `json:"received_date"`
	Overdue      bool            `json:"overdue"`
}
