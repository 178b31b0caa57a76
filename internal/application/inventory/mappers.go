package inventory

import (
	"sort"
	"time"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/dto"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
)

func toStockProductResponse(p *entity.StockProduct) *dto.StockProductResponse {
	return &dto.StockProductResponse{
		ID:            p.ID,
		Type:          p.Type,
		Category:      p.Category,
		Name:          p.Name,
		Variation:     p.Variation,
		ReferenceCode: p.ReferenceCode,
		BaseStock:     p.BaseStock,
		InUseStock:    p.InUseStock,
	}
}

func toStockMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	return &dto.StockMovementResponse{
		ID:                 m.ID,
		ProductID:          m.ProductID,
		Type:               m.Type,
		Quantity:           m.Quantity,
		Date:               dto.FormatDate(m.Date),
		EmployeeID:         m.EmployeeID,
		WorkSiteID:         m.WorkSiteID,
		DestinationCompany: m.DestinationCompany,
		Notes:              m.Notes,
		CreatedBy:          m.CreatedBy,
	}
}

func sortPossession(items []dto.PossessionItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ProductID < items[j].ProductID
	})
}

func toEquipmentResponse(e *entity.EquipmentItem) *dto.EquipmentResponse {
	return &dto.EquipmentResponse{
		ID:           e.ID,
		Type:         e.Type,
		Description:  e.Description,
		Brand:        e.Brand,
		Caliber:      e.Caliber,
		SerialNumber: e.SerialNumber,
		Quantity:     e.Quantity,
		WorkSiteID:   e.WorkSiteID,
	}
}

func toEquipmentMovementResponse(m *entity.EquipmentMovement) *dto.EquipmentMovementResponse {
	return &dto.EquipmentMovementResponse{
		ID:             m.ID,
		ItemID:         m.ItemID,
		ItemType:       m.ItemType,
		Description:    m.Description,
		FromWorkSiteID: m.FromWorkSiteID,
		ToWorkSiteID:   m.ToWorkSiteID,
		Quantity:       m.Quantity,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt.Format(time.RFC3339),
	}
}
