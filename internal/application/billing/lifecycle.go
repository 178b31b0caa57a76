package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/dto"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain"
	rules "github.com/jhoicas/Gestao-Seguranca-api/internal/domain/billing"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
	"github.com/jhoicas/Gestao-Seguranca-api/pkg/logger"
)

// BillingLifecycleUseCase gobierna el ciclo de vida del faturamento:
//
//	PENDING --Issue--> BILLED (+ recebimento PENDING)
//	BILLED  --Undo---> PENDING (- recebimento)
//
// Editar y borrar solo se permite en PENDING. Cada transición corre en una única
// transacción: si falla la creación del recebimento, el cambio de estado se revierte.
type BillingLifecycleUseCase struct {
	txRunner    BillingTxRunner
	billingRepo repository.BillingRepository
	rates       rules.StatutoryRates
	log         *logger.Logger
	now         Clock
}

// NewBillingLifecycleUseCase construye el caso de uso.
func NewBillingLifecycleUseCase(
	txRunner BillingTxRunner,
	billingRepo repository.BillingRepository,
	rates rules.StatutoryRates,
	log *logger.Logger,
) *BillingLifecycleUseCase {
	return &BillingLifecycleUseCase{
		txRunner:    txRunner,
		billingRepo: billingRepo,
		rates:       rates,
		log:         log.Component("billing.lifecycle"),
		now:         time.Now,
	}
}

// SetClock reemplaza la fuente de la fecha actual.
func (uc *BillingLifecycleUseCase) SetClock(c Clock) { uc.now = c }

// Create registra un faturamento manual PENDING para un contrato.
// La competencia se deriva de la fecha de emisión; si el contrato ya tiene faturamento
// en ese mes retorna domain.ErrDuplicate.
func (uc *BillingLifecycleUseCase) Create(ctx context.Context, in dto.CreateBillingRequest) (*dto.BillingResponse, error) {
	if in.ContractID == "" || in.GrossValue.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	issue, err := dto.ParseDate(in.IssueDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	due, err := dto.ParseOptionalDate(in.DueDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	var b *entity.Billing
	err = uc.txRunner.RunBilling(ctx, func(
		contractRepo repository.ContractRepository,
		billingRepo repository.BillingRepository,
		_ repository.ReceivableRepository,
	) error {
		contract, err := contractRepo.GetByID(ctx, in.ContractID)
		if err != nil {
			return err
		}
		if contract == nil {
			return domain.ErrNotFound
		}
		competency := rules.MonthOf(issue)
		if err := ensureUniqueCompetency(ctx, billingRepo, contract.ID, competency, ""); err != nil {
			return err
		}
		b = &entity.Billing{
			ID:              uuid.New().String(),
			ContractID:      contract.ID,
			CompanyID:       contract.CompanyID,
			CompetencyMonth: competency,
			GrossValue:      in.GrossValue.Round(2),
			IssueDate:       issue,
			DueDate:         rules.DueDate(contract, issue),
			Status:          entity.BillingStatusPending,
			Notes:           in.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if due != nil {
			b.DueDate = *due
		}
		if b.DueDate.Before(b.IssueDate) {
			return domain.ErrInvalidInput
		}
		uc.rates.Compute(b.GrossValue, rules.TaxConfigFromContract(contract)).Apply(b)
		return billingRepo.Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	resp := toBillingResponse(b)
	return &resp, nil
}

// Update edita un faturamento PENDING: recalcula impuestos desde el nuevo bruto y
// re-sincroniza la competencia con el mes de la fecha de emisión.
func (uc *BillingLifecycleUseCase) Update(ctx context.Context, id string, in dto.UpdateBillingRequest) (*dto.BillingResponse, error) {
	var b *entity.Billing
	err := uc.txRunner.RunBilling(ctx, func(
		contractRepo repository.ContractRepository,
		billingRepo repository.BillingRepository,
		_ repository.ReceivableRepository,
	) error {
		var err error
		b, err = billingRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if !b.IsPending() {
			return domain.ErrBillingNotPending
		}

		if in.GrossValue != nil {
			if in.GrossValue.IsNegative() {
				return domain.ErrInvalidInput
			}
			b.GrossValue = in.GrossValue.Round(2)
		}
		if in.IssueDate != nil {
			issue, err := dto.ParseDate(*in.IssueDate)
			if err != nil {
				return domain.ErrInvalidInput
			}
			b.IssueDate = issue
		}
		if in.DueDate != nil {
			due, err := dto.ParseDate(*in.DueDate)
			if err != nil {
				return domain.ErrInvalidInput
			}
			b.DueDate = due
		}
		if in.Notes != nil {
			b.Notes = *in.Notes
		}
		if b.DueDate.Before(b.IssueDate) {
			return domain.ErrInvalidInput
		}

		if month := rules.MonthOf(b.IssueDate); !month.Equal(b.CompetencyMonth) {
			if err := ensureUniqueCompetency(ctx, billingRepo, b.ContractID, month, b.ID); err != nil {
				return err
			}
			b.CompetencyMonth = month
		}

		contract, err := contractRepo.GetByID(ctx, b.ContractID)
		if err != nil {
			return err
		}
		if contract == nil {
			return domain.ErrNotFound
		}
		uc.rates.Compute(b.GrossValue, rules.TaxConfigFromContract(contract)).Apply(b)
		b.UpdatedAt = uc.now()
		return billingRepo.Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	resp := toBillingResponse(b)
	return &resp, nil
}

// Delete borra un faturamento; solo permitido en PENDING.
func (uc *BillingLifecycleUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunBilling(ctx, func(
		_ repository.ContractRepository,
		billingRepo repository.BillingRepository,
		_ repository.ReceivableRepository,
	) error {
		b, err := billingRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if !b.IsPending() {
			return domain.ErrBillingNotPending
		}
		return billingRepo.Delete(ctx, id)
	})
}

// Issue emite el faturamento (PENDING -> BILLED) y genera su recebimento.
//
// Retorna:
//   - domain.ErrNotFound      si el faturamento no existe.
//   - domain.ErrAlreadyBilled si ya existe un recebimento para el faturamento (no-op).
//   - domain.ErrConflict      si el estado no es PENDING.
//   - error envuelto          si falla la creación del recebimento (estado revertido).
func (uc *BillingLifecycleUseCase) Issue(ctx context.Context, id string) (*dto.IssueBillingResponse, error) {
	now := uc.now()
	var b *entity.Billing
	var r *entity.Receivable

	err := uc.txRunner.RunBilling(ctx, func(
		_ repository.ContractRepository,
		billingRepo repository.BillingRepository,
		receivableRepo repository.ReceivableRepository,
	) error {
		var err error
		b, err = billingRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}

		// 1) Guardia de idempotencia: un recebimento por faturamento
		existing, err := receivableRepo.GetByBillingID(ctx, id)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrAlreadyBilled
		}
		if !b.IsPending() {
			return domain.ErrConflict
		}

		// 2) Estado BILLED
		if err := billingRepo.UpdateStatus(ctx, id, entity.BillingStatusBilled, now); err != nil {
			return err
		}
		b.Status = entity.BillingStatusBilled
		b.UpdatedAt = now

		// 3) Recebimento por el líquido a recibir; si falla, la tx revierte el paso 2
		r = &entity.Receivable{
			ID:        uuid.New().String(),
			CompanyID: b.CompanyID,
			BillingID: b.ID,
			Value:     b.NetReceivableValue,
			DueDate:   b.DueDate,
			Status:    entity.ReceivableStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := receivableRepo.Create(ctx, r); err != nil {
			return fmt.Errorf("crear recebimento: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("billing_id", id).Msg("emisión rechazada")
		return nil, err
	}

	uc.log.Info().
		Str("billing_id", b.ID).
		Str("receivable_id", r.ID).
		Str("value", r.Value.StringFixed(2)).
		Msg("faturamento emitido")
	return &dto.IssueBillingResponse{
		Billing:    toBillingResponse(b),
		Receivable: toReceivableResponse(r, today(uc.now)),
	}, nil
}

// Undo deshace la emisión (BILLED -> PENDING): primero borra el recebimento y solo
// después revierte el estado, de modo que nunca quede un recebimento huérfano.
// Un recebimento ya RECEIVED bloquea la operación (domain.ErrReceivableSettled).
func (uc *BillingLifecycleUseCase) Undo(ctx context.Context, id string) (*dto.BillingResponse, error) {
	now := uc.now()
	var b *entity.Billing

	err := uc.txRunner.RunBilling(ctx, func(
		_ repository.ContractRepository,
		billingRepo repository.BillingRepository,
		receivableRepo repository.ReceivableRepository,
	) error {
		var err error
		b, err = billingRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if b.Status != entity.BillingStatusBilled {
			return domain.ErrConflict
		}

		r, err := receivableRepo.GetByBillingID(ctx, id)
		if err != nil {
			return err
		}
		if r != nil && r.Status == entity.ReceivableStatusReceived {
			return domain.ErrReceivableSettled
		}
		if _, err := receivableRepo.DeleteByBillingID(ctx, id); err != nil {
			return fmt.Errorf("borrar recebimento: %w", err)
		}

		if err := billingRepo.UpdateStatus(ctx, id, entity.BillingStatusPending, now); err != nil {
			return err
		}
		b.Status = entity.BillingStatusPending
		b.UpdatedAt = now
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("billing_id", id).Msg("deshacer emisión rechazado")
		return nil, err
	}

	uc.log.Info().Str("billing_id", id).Msg("emisión deshecha")
	resp := toBillingResponse(b)
	return &resp, nil
}

// GetByID obtiene un faturamento.
func (uc *BillingLifecycleUseCase) GetByID(ctx context.Context, id string) (*dto.BillingResponse, error) {
	b, err := uc.billingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	resp := toBillingResponse(b)
	return &resp, nil
}

// List lista faturamentos; competency (YYYY-MM), status y contractID son filtros opcionales.
func (uc *BillingLifecycleUseCase) List(ctx context.Context, competency, status, contractID string) ([]dto.BillingResponse, error) {
	f := repository.BillingFilter{Status: status, ContractID: contractID}
	if competency != "" {
		month, err := rules.ParseCompetency(competency)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		f.CompetencyMonth = &month
	}
	if status != "" && status != entity.BillingStatusPending && status != entity.BillingStatusBilled {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.billingRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toBillingResponses(list), nil
}

// ensureUniqueCompetency garantiza un solo faturamento por (contrato, competencia).
// exceptID excluye el propio faturamento al editar.
func ensureUniqueCompetency(ctx context.Context, repo repository.BillingRepository, contractID string, month time.Time, exceptID string) error {
	list, err := repo.List(ctx, repository.BillingFilter{CompetencyMonth: &month, ContractID: contractID})
	if err != nil {
		return err
	}
	for _, other := range list {
		if other.ID != exceptID {
			return domain.ErrDuplicate
		}
	}
	return nil
}
