package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/dto"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
	"github.com/jhoicas/Gestao-Seguranca-api/pkg/logger"
)

const defaultMovementsLimit = 100

// EquipmentUseCase controla armamento: armas y coletes por número de serie, munición por lotes
// fungibles (descripción, ubicación). Todo traslado deja una fila de auditoría.
type EquipmentUseCase struct {
	txRunner     EquipmentTxRunner
	itemRepo     repository.EquipmentRepository
	movementRepo repository.EquipmentMovementRepository
	log          *logger.Logger
	now          Clock
}

// NewEquipmentUseCase construye el caso de uso.
func NewEquipmentUseCase(
	txRunner EquipmentTxRunner,
	itemRepo repository.EquipmentRepository,
	movementRepo repository.EquipmentMovementRepository,
	log *logger.Logger,
) *EquipmentUseCase {
	return &EquipmentUseCase{
		txRunner:     txRunner,
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
		log:          log.Component("inventory.equipment"),
		now:          time.Now,
	}
}

// SetClock reemplaza la fuente de la fecha actual.
func (uc *EquipmentUseCase) SetClock(c Clock) { uc.now = c }

// CreateSerialized registra un arma o colete. El número de serie es único (domain.ErrDuplicate).
func (uc *EquipmentUseCase) CreateSerialized(ctx context.Context, in dto.CreateEquipmentRequest) (*dto.EquipmentResponse, error) {
	serial := strings.TrimSpace(in.SerialNumber)
	if !entity.IsSerializedEquipmentType(in.Type) || serial == "" || strings.TrimSpace(in.Description) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	item := &entity.EquipmentItem{
		ID:           uuid.New().String(),
		Type:         in.Type,
		Description:  strings.TrimSpace(in.Description),
		Brand:        in.Brand,
		Caliber:      in.Caliber,
		SerialNumber: &serial,
		Quantity:     1,
		WorkSiteID:   normalizeSite(in.WorkSiteID),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := uc.txRunner.RunEquipment(ctx, func(itemRepo repository.EquipmentRepository, _ repository.EquipmentMovementRepository) error {
		existing, err := itemRepo.GetBySerial(ctx, serial)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		return itemRepo.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("item_id", item.ID).Str("type", item.Type).Str("serial", serial).Msg("equipamiento registrado")
	return toEquipmentResponse(item), nil
}

// AddLot da entrada a munición; se fusiona con el lote existente en la misma ubicación.
func (uc *EquipmentUseCase) AddLot(ctx context.Context, in dto.AddAmmoLotRequest) (*dto.EquipmentResponse, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	site := normalizeSite(in.WorkSiteID)
	now := uc.now()

	var lot *entity.EquipmentItem
	err := uc.txRunner.RunEquipment(ctx, func(itemRepo repository.EquipmentRepository, _ repository.EquipmentMovementRepository) error {
		var err error
		lot, err = itemRepo.FindLotForUpdate(ctx, description, site)
		if err != nil {
			return err
		}
		if lot != nil {
			lot.Quantity += in.Quantity
			lot.UpdatedAt = now
			return itemRepo.Update(ctx, lot)
		}
		lot = &entity.EquipmentItem{
			ID:          uuid.New().String(),
			Type:        entity.EquipmentTypeAmmo,
			Description: description,
			Brand:       in.Brand,
			Caliber:     in.Caliber,
			Quantity:    in.Quantity,
			WorkSiteID:  site,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return itemRepo.Create(ctx, lot)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("description", description).Int("quantity", in.Quantity).Int("total", lot.Quantity).Msg("lote de munición registrado")
	return toEquipmentResponse(lot), nil
}

// TransferSerialized mueve un arma o colete a un puesto (nil = base) y anota la auditoría.
func (uc *EquipmentUseCase) TransferSerialized(ctx context.Context, userID, itemID string, in dto.TransferEquipmentRequest) (*dto.EquipmentResponse, error) {
	dest := normalizeSite(in.ToWorkSiteID)
	now := uc.now()

	var item *entity.EquipmentItem
	err := uc.txRunner.RunEquipment(ctx, func(itemRepo repository.EquipmentRepository, movementRepo repository.EquipmentMovementRepository) error {
		var err error
		item, err = itemRepo.GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if !item.IsSerialized() {
			return domain.ErrInvalidInput
		}
		if sameSite(item.WorkSiteID, dest) {
			return domain.ErrConflict
		}

		from := item.WorkSiteID
		item.WorkSiteID = dest
		item.UpdatedAt = now
		if err := itemRepo.Update(ctx, item); err != nil {
			return err
		}
		return movementRepo.Create(ctx, &entity.EquipmentMovement{
			ID:             uuid.New().String(),
			ItemID:         &item.ID,
			ItemType:       item.Type,
			Description:    item.Description,
			FromWorkSiteID: from,
			ToWorkSiteID:   dest,
			Quantity:       1,
			CreatedBy:      userID,
			CreatedAt:      now,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("item_id", itemID).Str("to", siteLabel(dest)).Msg("equipamiento trasladado")
	return toEquipmentResponse(item), nil
}

// TransferLot traslada munición entre ubicaciones en una sola transacción:
//  1. Localiza el lote origen (descripción, from); sin saldo suficiente -> domain.ErrInsufficientStock.
//  2. Si se traslada todo, borra el origen; si no, lo decrementa.
//  3. Fusiona en el lote destino (descripción, to) o lo crea.
//
// Devuelve el lote destino resultante.
func (uc *EquipmentUseCase) TransferLot(ctx context.Context, userID string, in dto.TransferLotRequest) (*dto.EquipmentResponse, error) {
	description := strings.TrimSpace(in.Description)
	from := normalizeSite(in.FromWorkSiteID)
	to := normalizeSite(in.ToWorkSiteID)
	if description == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if sameSite(from, to) {
		return nil, domain.ErrConflict
	}
	now := uc.now()

	var dest *entity.EquipmentItem
	err := uc.txRunner.RunEquipment(ctx, func(itemRepo repository.EquipmentRepository, movementRepo repository.EquipmentMovementRepository) error {
		// 1) Origen
		source, err := itemRepo.FindLotForUpdate(ctx, description, from)
		if err != nil {
			return err
		}
		if source == nil || source.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}

		// 2) Split o borrado del origen
		if source.Quantity == in.Quantity {
			if err := itemRepo.Delete(ctx, source.ID); err != nil {
				return err
			}
		} else {
			source.Quantity -= in.Quantity
			source.UpdatedAt = now
			if err := itemRepo.Update(ctx, source); err != nil {
				return err
			}
		}

		// 3) Merge o alta en destino
		dest, err = itemRepo.FindLotForUpdate(ctx, description, to)
		if err != nil {
			return err
		}
		if dest != nil {
			dest.Quantity += in.Quantity
			dest.UpdatedAt = now
			if err := itemRepo.Update(ctx, dest); err != nil {
				return err
			}
		} else {
			dest = &entity.EquipmentItem{
				ID:          uuid.New().String(),
				Type:        entity.EquipmentTypeAmmo,
				Description: description,
				Brand:       source.Brand,
				Caliber:     source.Caliber,
				Quantity:    in.Quantity,
				WorkSiteID:  to,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := itemRepo.Create(ctx, dest); err != nil {
				return err
			}
		}

		return movementRepo.Create(ctx, &entity.EquipmentMovement{
			ID:             uuid.New().String(),
			ItemType:       entity.EquipmentTypeAmmo,
			Description:    description,
			FromWorkSiteID: from,
			ToWorkSiteID:   to,
			Quantity:       in.Quantity,
			CreatedBy:      userID,
			CreatedAt:      now,
		})
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("description", description).Int("quantity", in.Quantity).Msg("traslado de lote rechazado")
		return nil, err
	}
	uc.log.Info().
		Str("description", description).
		Str("from", siteLabel(from)).
		Str("to", siteLabel(to)).
		Int("quantity", in.Quantity).
		Msg("lote trasladado")
	return toEquipmentResponse(dest), nil
}

// Delete da de baja un ítem (arma, colete o lote completo).
func (uc *EquipmentUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunEquipment(ctx, func(itemRepo repository.EquipmentRepository, _ repository.EquipmentMovementRepository) error {
		item, err := itemRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		return itemRepo.Delete(ctx, id)
	})
}

// List lista el equipamiento; f.AtBase y f.WorkSiteID filtran por ubicación.
func (uc *EquipmentUseCase) List(ctx context.Context, f repository.EquipmentFilter) ([]*dto.EquipmentResponse, error) {
	if f.Type != "" && f.Type != entity.EquipmentTypeAmmo && !entity.IsSerializedEquipmentType(f.Type) {
		return nil, domain.ErrInvalidInput
	}
	if f.AtBase && f.WorkSiteID != "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.itemRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EquipmentResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEquipmentResponse(e))
	}
	return out, nil
}

// Movements devuelve la auditoría de traslados, más recientes primero.
func (uc *EquipmentUseCase) Movements(ctx context.Context, itemID string, limit int) ([]*dto.EquipmentMovementResponse, error) {
	if limit <= 0 {
		limit = defaultMovementsLimit
	}
	list, err := uc.movementRepo.List(ctx, itemID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EquipmentMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toEquipmentMovementResponse(m))
	}
	return out, nil
}

// normalizeSite trata "" como base (nil).
func normalizeSite(site *string) *string {
	if site == nil || strings.TrimSpace(*site) == "" {
		return nil
	}
	s := strings.TrimSpace(*site)
	return &s
}

func sameSite(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func siteLabel(site *string) string {
	if site == nil {
		return "base"
	}
	return *site
}
