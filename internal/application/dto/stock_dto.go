package dto

// CreateStockProductRequest body para POST /api/stock/products.
// InitialQuantity > 0 registra un ADICIONAR_LOTE inicial.
type CreateStockProductRequest struct {
	Type            string `json:"type"`
	Category        string `json:"category"`
	Name            string `json:"name"`
	Variation       string `json:"variation,omitempty"`
	InitialQuantity int    `json:"initial_quantity,omitempty"`
}

// UpdateStockProductRequest body para PUT /api/stock/products/:id (los saldos no se editan).
type UpdateStockProductRequest struct {
	Type      *string `json:"type,omitempty"`
	Category  *string `json:"category,omitempty"`
	Name      *string `json:"name,omitempty"`
	Variation *string `json:"variation,omitempty"`
}

// StockProductResponse producto con saldos derivados del ledger.
type StockProductResponse struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	Category      string `json:"category"`
	Name          string `json:"name"`
	Variation     string `json:"variation,omitempty"`
	ReferenceCode string `json:"reference_code"`
	BaseStock     int    `json:"base_stock"`
	InUseStock    int    `json:"in_use_stock"`
}

// RegisterStockMovementRequest body para POST /api/stock/movements.
type RegisterStockMovementRequest struct {
	ProductID          string  `json:"product_id"`
	Type               string  `json:"type"`
	Quantity           int     `json:"quantity"`
	Date               string  `json:"date,omitempty"` // vacío = hoy
	EmployeeID         *string `json:"employee_id,omitempty"`
	WorkSiteID         *string `json:"work_site_id,omitempty"`
	DestinationCompany string  `json:"destination_company,omitempty"`
	Notes              string  `json:"notes,omitempty"`
}

// StockMovementResponse movimiento del ledger.
type StockMovementResponse struct {
	ID                 string  `json:"id"`
	ProductID          string  `json:"product_id"`
	Type               string  `json:"type"`
	Quantity           int     `json:"quantity"`
	Date               string  `json:"date"`
	EmployeeID         *string `json:"employee_id,omitempty"`
	WorkSiteID         *string `json:"work_site_id,omitempty"`
	DestinationCompany string  `json:"destination_company,omitempty"`
	Notes              string  `json:"notes,omitempty"`
	CreatedBy          string  `json:"created_by,omitempty"`
}

// PossessionItem cantidad de un producto en manos del poseedor.
type PossessionItem struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	Variation     string `json:"variation,omitempty"`
	ReferenceCode string `json:"reference_code"`
	Quantity      int    `json:"quantity"`
}

// PossessionResponse material en posesión de un colaborador o puesto.
type PossessionResponse struct {
	HolderID   string           `json:"holder_id"`
	HolderType string           `json:"holder_type"` // employee | work_site
	Items      []PossessionItem `json:"items"`
}
