package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/dto"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/stock"
	"github.com/jhoicas/Gestao-Seguranca-api/pkg/logger"
)

// StockLedgerUseCase registra movimientos del ledger de estoque de forma transaccional
// (ENTREGAR, DEVOLVER, ADICIONAR_LOTE, DESCARTAR_LOTE) con bloqueo del producto (SELECT FOR UPDATE).
// Los saldos del producto se recalculan desde el ledger tras cada movimiento.
type StockLedgerUseCase struct {
	txRunner     StockTxRunner
	productRepo  repository.StockProductRepository
	movementRepo repository.StockMovementRepository
	log          *logger.Logger
	now          Clock
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(
	txRunner StockTxRunner,
	productRepo repository.StockProductRepository,
	movementRepo repository.StockMovementRepository,
	log *logger.Logger,
) *StockLedgerUseCase {
	return &StockLedgerUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		log:          log.Component("inventory.stock"),
		now:          time.Now,
	}
}

// SetClock reemplaza la fuente de la fecha actual.
func (uc *StockLedgerUseCase) SetClock(c Clock) { uc.now = c }

// MovementInput entrada para registrar un movimiento.
// ENTREGAR/DEVOLVER: exactamente uno de EmployeeID o WorkSiteID.
// ADICIONAR_LOTE/DESCARTAR_LOTE: ninguno.
type MovementInput struct {
	UserID             string
	ProductID          string
	Type               string
	Quantity           int
	Date               *time.Time
	EmployeeID         *string
	WorkSiteID         *string
	DestinationCompany string
	Notes              string
}

// CreateProduct da de alta un producto. Con InitialQuantity > 0 anota un ADICIONAR_LOTE inicial.
func (uc *StockLedgerUseCase) CreateProduct(ctx context.Context, userID string, in dto.CreateStockProductRequest) (*dto.StockProductResponse, error) {
	if !validProductType(in.Type) || strings.TrimSpace(in.Name) == "" || in.InitialQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	p := &entity.StockProduct{
		ID:            uuid.New().String(),
		Type:          in.Type,
		Category:      strings.TrimSpace(in.Category),
		Name:          strings.TrimSpace(in.Name),
		Variation:     strings.TrimSpace(in.Variation),
		ReferenceCode: stock.ReferenceCode(in.Category, uuid.New().String()[:6]),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := uc.txRunner.RunStock(ctx, func(
		productRepo repository.StockProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		if err := productRepo.Create(ctx, p); err != nil {
			return err
		}
		if in.InitialQuantity == 0 {
			return nil
		}
		m := &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: p.ID,
			Type:      entity.StockMovementAddLot,
			Quantity:  in.InitialQuantity,
			Date:      dateOnly(now),
			Notes:     "estoque inicial",
			CreatedBy: userID,
			CreatedAt: now,
		}
		if err := movementRepo.Create(ctx, m); err != nil {
			return err
		}
		p.BaseStock = in.InitialQuantity
		return productRepo.UpdateCounters(ctx, p.ID, p.BaseStock, p.InUseStock, now)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", p.ID).Str("reference", p.ReferenceCode).Int("initial", in.InitialQuantity).Msg("producto creado")
	return toStockProductResponse(p), nil
}

// UpdateProduct edita los campos descriptivos; los saldos no se tocan.
func (uc *StockLedgerUseCase) UpdateProduct(ctx context.Context, id string, in dto.UpdateStockProductRequest) (*dto.StockProductResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Type != nil {
		if !validProductType(*in.Type) {
			return nil, domain.ErrInvalidInput
		}
		p.Type = *in.Type
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Variation != nil {
		p.Variation = strings.TrimSpace(*in.Variation)
	}
	p.UpdatedAt = uc.now()
	if err := uc.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toStockProductResponse(p), nil
}

// GetProduct obtiene un producto con sus saldos.
func (uc *StockLedgerUseCase) GetProduct(ctx context.Context, id string) (*dto.StockProductResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toStockProductResponse(p), nil
}

// ListProducts lista todos los productos.
func (uc *StockLedgerUseCase) ListProducts(ctx context.Context) ([]*dto.StockProductResponse, error) {
	list, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toStockProductResponse(p))
	}
	return out, nil
}

// RegisterMovement valida el movimiento contra el ledger, lo anota y recalcula los saldos del producto.
//
// Retorna:
//   - domain.ErrInvalidInput           tipo, cantidad o poseedor inválidos.
//   - domain.ErrNotFound               el producto no existe.
//   - domain.ErrInsufficientStock      ENTREGAR/DESCARTAR por encima del saldo en base.
//   - domain.ErrInsufficientPossession DEVOLVER por encima de lo que tiene el poseedor.
func (uc *StockLedgerUseCase) RegisterMovement(ctx context.Context, in MovementInput) (*dto.StockMovementResponse, error) {
	holder, err := validateMovement(in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	m := &entity.StockMovement{
		ID:                 uuid.New().String(),
		ProductID:          in.ProductID,
		Type:               in.Type,
		Quantity:           in.Quantity,
		Date:               dateOnly(now),
		EmployeeID:         in.EmployeeID,
		WorkSiteID:         in.WorkSiteID,
		DestinationCompany: strings.TrimSpace(in.DestinationCompany),
		Notes:              in.Notes,
		CreatedBy:          in.UserID,
		CreatedAt:          now,
	}
	if in.Date != nil {
		m.Date = dateOnly(*in.Date)
	}

	var balance stock.Balance
	err = uc.txRunner.RunStock(ctx, func(
		productRepo repository.StockProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		// Bloquea el producto (SELECT FOR UPDATE) para serializar movimientos concurrentes
		p, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		log, err := movementRepo.ListByProduct(ctx, in.ProductID)
		if err != nil {
			return err
		}

		current := stock.ProductBalance(in.ProductID, log)
		switch in.Type {
		case entity.StockMovementDeliver, entity.StockMovementDiscard:
			if current.Base < in.Quantity {
				return domain.ErrInsufficientStock
			}
		case entity.StockMovementReturn:
			if stock.Possession(holder, log)[in.ProductID] < in.Quantity {
				return domain.ErrInsufficientPossession
			}
		}

		if err := movementRepo.Create(ctx, m); err != nil {
			return err
		}
		balance = stock.ProductBalance(in.ProductID, append(log, m))
		return productRepo.UpdateCounters(ctx, in.ProductID, balance.Base, balance.InUse, now)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("product_id", in.ProductID).Str("type", in.Type).Int("quantity", in.Quantity).Msg("movimiento rechazado")
		return nil, err
	}

	uc.log.Info().
		Str("product_id", in.ProductID).
		Str("type", in.Type).
		Int("quantity", in.Quantity).
		Int("base", balance.Base).
		Int("in_use", balance.InUse).
		Msg("movimiento registrado")
	return toStockMovementResponse(m), nil
}

// ListMovements devuelve el ledger de un producto en orden de registro.
func (uc *StockLedgerUseCase) ListMovements(ctx context.Context, productID string) ([]*dto.StockMovementResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movementRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toStockMovementResponse(m))
	}
	return out, nil
}

// Possession material en posesión de un colaborador o de un puesto (exactamente uno).
func (uc *StockLedgerUseCase) Possession(ctx context.Context, employeeID, workSiteID string) (*dto.PossessionResponse, error) {
	var holder stock.Holder
	switch {
	case employeeID != "" && workSiteID == "":
		holder = stock.Employee(employeeID)
	case workSiteID != "" && employeeID == "":
		holder = stock.WorkSite(workSiteID)
	default:
		return nil, domain.ErrInvalidInput
	}

	log, err := uc.movementRepo.ListByHolder(ctx, holder.ID, holder.IsEmployee)
	if err != nil {
		return nil, err
	}
	resp := &dto.PossessionResponse{HolderID: holder.ID, HolderType: "work_site", Items: []dto.PossessionItem{}}
	if holder.IsEmployee {
		resp.HolderType = "employee"
	}
	for productID, qty := range stock.Possession(holder, log) {
		p, err := uc.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("producto %s: %w", productID, err)
		}
		if p == nil {
			return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
		}
		resp.Items = append(resp.Items, dto.PossessionItem{
			ProductID:     productID,
			Name:          p.Name,
			Variation:     p.Variation,
			ReferenceCode: p.ReferenceCode,
			Quantity:      qty,
		})
	}
	sortPossession(resp.Items)
	return resp, nil
}

func validateMovement(in MovementInput) (stock.Holder, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return stock.Holder{}, domain.ErrInvalidInput
	}
	hasEmployee := in.EmployeeID != nil && *in.EmployeeID != ""
	hasSite := in.WorkSiteID != nil && *in.WorkSiteID != ""

	switch in.Type {
	case entity.StockMovementDeliver, entity.StockMovementReturn:
		if hasEmployee == hasSite {
			return stock.Holder{}, domain.ErrInvalidInput
		}
		if hasEmployee {
			return stock.Employee(*in.EmployeeID), nil
		}
		return stock.WorkSite(*in.WorkSiteID), nil
	case entity.StockMovementAddLot, entity.StockMovementDiscard:
		if hasEmployee || hasSite {
			return stock.Holder{}, domain.ErrInvalidInput
		}
		return stock.Holder{}, nil
	}
	return stock.Holder{}, domain.ErrInvalidInput
}

func validProductType(t string) bool {
	return t == entity.StockProductIndividual || t == entity.StockProductCollective
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
