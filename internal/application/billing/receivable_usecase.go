package billing

import (
	"context"
	"time"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/dto"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
	"github.com/jhoicas/Gestao-Seguranca-api/pkg/logger"
)

// ReceivableUseCase casos de uso de recebimentos (cuentas por cobrar).
// Los recebimentos solo nacen y mueren con la emisión del faturamento; aquí se registran
// los cobros y se ajustan valor o vencimiento mientras sigan pendientes.
type ReceivableUseCase struct {
	repo repository.ReceivableRepository
	log  *logger.Logger
	now  Clock
}

// NewReceivableUseCase construye el caso de uso.
func NewReceivableUseCase(repo repository.ReceivableRepository, log *logger.Logger) *ReceivableUseCase {
	return &ReceivableUseCase{repo: repo, log: log.Component("billing.receivable"), now: time.Now}
}

// SetClock reemplaza la fuente de la fecha actual.
func (uc *ReceivableUseCase) SetClock(c Clock) { uc.now = c }

// MarkReceived registra el cobro. receivedDate vacío = hoy.
func (uc *ReceivableUseCase) MarkReceived(ctx context.Context, id string, in dto.ReceiveRequest) (*dto.ReceivableResponse, error) {
	r, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != entity.ReceivableStatusPending {
		return nil, domain.ErrConflict
	}
	received := today(uc.now)
	if in.ReceivedDate != "" {
		if received, err = dto.ParseDate(in.ReceivedDate); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	r.Status = entity.ReceivableStatusReceived
	r.ReceivedDate = &received
	r.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	uc.log.Info().Str("receivable_id", id).Str("value", r.Value.StringFixed(2)).Msg("recebimento registrado")
	return uc.response(r), nil
}

// UndoReceive devuelve un recebimento RECEIVED a PENDING.
func (uc *ReceivableUseCase) UndoReceive(ctx context.Context, id string) (*dto.ReceivableResponse, error) {
	r, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != entity.ReceivableStatusReceived {
		return nil, domain.ErrConflict
	}
	r.Status = entity.ReceivableStatusPending
	r.ReceivedDate = nil
	r.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	uc.log.Info().Str("receivable_id", id).Msg("cobro deshecho")
	return uc.response(r), nil
}

// Update edita un recebimento: valor, vencimiento y estado en una sola escritura.
// Valor y vencimiento solo se editan mientras está PENDING (o cuando la misma edición
// lo devuelve a PENDING). Un estado igual al actual no cambia nada; pasar a RECEIVED
// marca la fecha de cobro con hoy y volver a PENDING la limpia.
func (uc *ReceivableUseCase) Update(ctx context.Context, id string, in dto.UpdateReceivableRequest) (*dto.ReceivableResponse, error) {
	r, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	target := r.Status
	if in.Status != nil {
		switch *in.Status {
		case entity.ReceivableStatusPending, entity.ReceivableStatusReceived:
			target = *in.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}

	editsFields := in.Value != nil || in.DueDate != nil
	if editsFields && r.Status != entity.ReceivableStatusPending && target != entity.ReceivableStatusPending {
		return nil, domain.ErrConflict
	}
	if in.Value != nil {
		if in.Value.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		r.Value = in.Value.Round(2)
	}
	if in.DueDate != nil {
		due, err := dto.ParseDate(*in.DueDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		r.DueDate = due
	}

	from := r.Status
	if target != from {
		r.Status = target
		if target == entity.ReceivableStatusReceived {
			received := today(uc.now)
			r.ReceivedDate = &received
		} else {
			r.ReceivedDate = nil
		}
	}
	if !editsFields && target == from {
		return uc.response(r), nil
	}

	r.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	if target != from {
		uc.log.Info().Str("receivable_id", id).Str("from", from).Str("to", target).Msg("estado del recebimento editado")
	}
	return uc.response(r), nil
}

// GetByID obtiene un recebimento con su indicador de atraso.
func (uc *ReceivableUseCase) GetByID(ctx context.Context, id string) (*dto.ReceivableResponse, error) {
	r, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.response(r), nil
}

// List lista recebimentos. overdueOnly filtra los PENDING vencidos.
func (uc *ReceivableUseCase) List(ctx context.Context, f repository.ReceivableFilter, overdueOnly bool) ([]dto.ReceivableResponse, error) {
	if f.Status != "" && f.Status != entity.ReceivableStatusPending && f.Status != entity.ReceivableStatusReceived {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	t := today(uc.now)
	out := make([]dto.ReceivableResponse, 0, len(list))
	for _, r := range list {
		if overdueOnly && !r.IsOverdue(t) {
			continue
		}
		out = append(out, toReceivableResponse(r, t))
	}
	return out, nil
}

func (uc *ReceivableUseCase) load(ctx context.Context, id string) (*entity.Receivable, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (uc *ReceivableUseCase) response(r *entity.Receivable) *dto.ReceivableResponse {
	resp := toReceivableResponse(r, today(uc.now))
	return &resp
}
