package inventory

import (
	"context"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/dto"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInput).
// userID es quien registra el movimiento (claim del JWT).
func (uc *StockLedgerUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterStockMovementRequest) (*dto.StockMovementResponse, error) {
	date, err := dto.ParseOptionalDate(in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	input := MovementInput{
		UserID:             userID,
		ProductID:          in.ProductID,
		Type:               in.Type,
		Quantity:           in.Quantity,
		Date:               date,
		EmployeeID:         in.EmployeeID,
		WorkSiteID:         in.WorkSiteID,
		DestinationCompany: in.DestinationCompany,
		Notes:              in.Notes,
	}
	return uc.RegisterMovement(ctx, input)
}
