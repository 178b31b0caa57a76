package entity

import "time"

// Tipos de equipamiento controlado.
const (
	EquipmentTypeGun  = "ARMA"
	EquipmentTypeVest = "COLETE_BALISTICO"
	EquipmentTypeAmmo = "MUNICAO"
)

// EquipmentItem es un arma/colete (serializado, Quantity=1) o un lote de munición
// (fungible, SerialNumber nil). WorkSiteID nil significa que está en la base.
type EquipmentItem struct {
	ID           string
	Type         string
	Description  string
	Brand        string
	Caliber      string
	SerialNumber *string
	Quantity     int
	WorkSiteID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsSerialized indica si el ítem se controla por número de serie.
func (e *EquipmentItem) IsSerialized() bool {
	return IsSerializedEquipmentType(e.Type)
}

// IsSerializedEquipmentType indica si el tipo se controla por unidad.
func IsSerializedEquipmentType(t string) bool {
	return t == EquipmentTypeGun || t == EquipmentTypeVest
}

// EquipmentMovement registra un traslado de equipamiento (auditoría).
// ItemID es nil en traslados de lote, que pueden partir o fusionar filas.
type EquipmentMovement struct {
	ID             string
	ItemID         *string
	ItemType       string
	Description    string
	FromWorkSiteID *string
	ToWorkSiteID   *string
	Quantity       int
	CreatedBy      string
	CreatedAt      time.Time
}
