package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/dto"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain"
	rules "github.com/jhoicas/Gestao-Seguranca-api/internal/domain/billing"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
	"github.com/jhoicas/Gestao-Seguranca-api/pkg/logger"
)

// GenerateBillingsUseCase expande los contratos activos en faturamentos PENDING para una competencia.
// Es idempotente: los contratos que ya tienen faturamento en el mes se omiten.
type GenerateBillingsUseCase struct {
	txRunner BillingTxRunner
	rates    rules.StatutoryRates
	log      *logger.Logger
	now      Clock
}

// NewGenerateBillingsUseCase construye el caso de uso.
func NewGenerateBillingsUseCase(txRunner BillingTxRunner, rates rules.StatutoryRates, log *logger.Logger) *GenerateBillingsUseCase {
	return &GenerateBillingsUseCase{
		txRunner: txRunner,
		rates:    rates,
		log:      log.Component("billing.generate"),
		now:      time.Now,
	}
}

// SetClock reemplaza la fuente de la fecha actual.
func (uc *GenerateBillingsUseCase) SetClock(c Clock) { uc.now = c }

// Generate genera los faturamentos de la competencia (YYYY-MM).
//
// Retorna:
//   - domain.ErrInvalidInput      si la competencia no es válida.
//   - domain.ErrNoActiveContracts si no hay contratos activos.
//   - NothingToDo=true            si todos los contratos ya estaban facturados o fuera de vigencia.
func (uc *GenerateBillingsUseCase) Generate(ctx context.Context, in dto.GenerateBillingsRequest) (*dto.GenerateBillingsResponse, error) {
	competency, err := rules.ParseCompetency(in.Competency)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	todayDate := today(uc.now)
	now := uc.now()

	resp := &dto.GenerateBillingsResponse{Competency: in.Competency, Billings: []dto.BillingResponse{}}
	var generated []*entity.Billing

	err = uc.txRunner.RunBilling(ctx, func(
		contractRepo repository.ContractRepository,
		billingRepo repository.BillingRepository,
		_ repository.ReceivableRepository,
	) error {
		contracts, err := contractRepo.List(ctx, repository.ContractFilter{ActiveOnly: true})
		if err != nil {
			return err
		}
		if len(contracts) == 0 {
			return domain.ErrNoActiveContracts
		}

		billedIDs, err := billingRepo.ContractIDsWithBilling(ctx, competency)
		if err != nil {
			return err
		}
		billed := make(map[string]struct{}, len(billedIDs))
		for _, id := range billedIDs {
			billed[id] = struct{}{}
		}

		for _, c := range contracts {
			if _, ok := billed[c.ID]; ok {
				resp.SkippedExisting++
				continue
			}
			if !rules.WithinValidity(c, competency) {
				resp.SkippedOutOfWindow++
				continue
			}
			generated = append(generated, uc.newBilling(c, competency, todayDate, now))
		}
		if len(generated) == 0 {
			return nil
		}
		return billingRepo.CreateBatch(ctx, generated)
	})
	if err != nil {
		return nil, err
	}

	resp.Generated = len(generated)
	resp.NothingToDo = resp.Generated == 0
	resp.Billings = toBillingResponses(generated)

	uc.log.Info().
		Str("competency", in.Competency).
		Int("generated", resp.Generated).
		Int("skipped_existing", resp.SkippedExisting).
		Int("skipped_out_of_window", resp.SkippedOutOfWindow).
		Msg("faturamentos generados")
	return resp, nil
}

func (uc *GenerateBillingsUseCase) newBilling(c *entity.Contract, competency, todayDate, now time.Time) *entity.Billing {
	issue := rules.IssueDate(c, competency, todayDate)
	b := &entity.Billing{
		ID:              uuid.New().String(),
		ContractID:      c.ID,
		CompanyID:       c.CompanyID,
		CompetencyMonth: competency,
		GrossValue:      c.MonthlyBaseValue,
		IssueDate:       issue,
		DueDate:         rules.DueDate(c, issue),
		Status:          entity.BillingStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	uc.rates.Compute(b.GrossValue, rules.TaxConfigFromContract(c)).Apply(b)
	return b
}
