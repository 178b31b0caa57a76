package dto

// CreateEquipmentRequest body para POST /api/equipment (arma o colete, con número de serie).
type CreateEquipmentRequest struct {
	Type         string  `json:"type"`
	Description  string  `json:"description"`
	Brand        string  `json:"brand,omitempty"`
	Caliber      string  `json:"caliber,omitempty"`
	SerialNumber string  `json:"serial_number"`
	WorkSiteID   *string `json:"work_site_id,omitempty"`
}

// AddAmmoLotRequest body para POST /api/equipment/lots (entrada de munición).
type AddAmmoLotRequest struct {
	Description string  `json:"description"`
	Brand       string  `json:"brand,omitempty"`
	Caliber     string  `json:"caliber,omitempty"`
	Quantity    int     `json:"quantity"`
	WorkSiteID  *string `json:"work_site_id,omitempty"`
}

// TransferEquipmentRequest body para POST /api/equipment/:id/transfer. Destino nil = base.
type TransferEquipmentRequest struct {
	ToWorkSiteID *string `json:"to_work_site_id"`
}

// TransferLotRequest body para POST /api/equipment/lots/transfer.
type TransferLotRequest struct {
	Description    string  `json:"description"`
	FromWorkSiteID *string `json:"from_work_site_id"`
	ToWorkSiteID   *string `json:"to_work_site_id"`
	Quantity       int     `json:"quantity"`
}

// EquipmentResponse ítem de armamento.
type EquipmentResponse struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Description  string  `json:"description"`
	Brand        string  `json:"brand,omitempty"`
	Caliber      string  `json:"caliber,omitempty"`
	SerialNumber *string `json:"serial_number,omitempty"`
	Quantity     int     `json:"quantity"`
	WorkSiteID   *string `json:"work_site_id"`
}

// EquipmentMovementResponse registro de traslado.
type EquipmentMovementResponse struct {
	ID             string  `json:"id"`
	ItemID         *string `json:"item_id,omitempty"`
	ItemType       string  `json:"item_type"`
	Description    string  `json:"description"`
	FromWorkSiteID *string `json:"from_work_site_id"`
	ToWorkSiteID   *string `json:"to_work_site_id"`
	Quantity       int     `json:"quantity"`
	CreatedBy      string  `json:"created_by,omitempty"`
	CreatedAt      string  `json:"created_at"`
}
