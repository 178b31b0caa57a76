package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/billing"
	rules "github.com/jhoicas/Gestao-Seguranca-api/internal/domain/billing"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/infrastructure/memory"
	"github.com/jhoicas/Gestao-Seguranca-api/pkg/logger"
)

var errBoom = errors.New("falla simulada")

// Hoy fijo en los tests: 10/05/2024.
func fixedClock() time.Time { return time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC) }

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store       *memory.Store
	runner      billing.BillingTxRunner
	generate    *billing.GenerateBillingsUseCase
	lifecycle   *billing.BillingLifecycleUseCase
	receivables *billing.ReceivableUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	return newFixtureWithRunner(t, store, memory.NewTxRunner(store))
}

func newFixtureWithRunner(t *testing.T, store *memory.Store, runner billing.BillingTxRunner) *fixture {
	t.Helper()
	log := logger.Nop()
	f := &fixture{
		store:       store,
		runner:      runner,
		generate:    billing.NewGenerateBillingsUseCase(runner, rules.DefaultStatutoryRates, log),
		lifecycle:   billing.NewBillingLifecycleUseCase(runner, store.Billings(), rules.DefaultStatutoryRates, log),
		receivables: billing.NewReceivableUseCase(store.Receivables(), log),
	}
	f.generate.SetClock(fixedClock)
	f.lifecycle.SetClock(fixedClock)
	f.receivables.SetClock(fixedClock)
	return f
}

// referenceContract bruto 10.000, ISS 5% retenido, PIS e INSS retenidos: líquido 8.335.
func referenceContract(id string) *entity.Contract {
	return &entity.Contract{
		ID:               id,
		CompanyID:        "empresa-1",
		WorkSiteID:       "posto-1",
		Description:      "Vigilancia 24h",
		MonthlyBaseValue: dec("10000"),
		BillingDay:       5,
		DueDay:           15,
		Active:           true,
		RetainISS:        true,
		ISSRate:          dec("5"),
		RetainPIS:        true,
		RetainINSS:       true,
		CreatedAt:        fixedClock(),
	}
}

func (f *fixture) seedContract(t *testing.T, c *entity.Contract) *entity.Contract {
	t.Helper()
	require.NoError(t, f.store.Contracts().Create(context.Background(), c))
	return c
}

// failingReceivables simula fallos del repositorio de recebimentos.
// failCreate rompe la inserción; failDelete rompe el borrado por faturamento.
type failingReceivables struct {
	repository.ReceivableRepository
	failCreate bool
	failDelete bool
}

func (r failingReceivables) Create(ctx context.Context, rec *entity.Receivable) error {
	if r.failCreate {
		return errBoom
	}
	return r.ReceivableRepository.Create(ctx, rec)
}

func (r failingReceivables) DeleteByBillingID(ctx context.Context, billingID string) (int64, error) {
	if r.failDelete {
		return 0, errBoom
	}
	return r.ReceivableRepository.DeleteByBillingID(ctx, billingID)
}

// statusSpy cuenta los cambios de estado pedidos al repositorio de faturamentos.
type statusSpy struct {
	repository.BillingRepository
	calls *int
}

func (s statusSpy) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	*s.calls++
	return s.BillingRepository.UpdateStatus(ctx, id, status, at)
}

type faultyRunner struct {
	inner         *memory.TxRunner
	failCreate    bool
	failDelete    bool
	statusUpdates *int
}

func (r faultyRunner) RunBilling(ctx context.Context, fn func(
	repository.ContractRepository,
	repository.BillingRepository,
	repository.ReceivableRepository,
) error) error {
	return r.inner.RunBilling(ctx, func(c repository.ContractRepository, b repository.BillingRepository, rec repository.ReceivableRepository) error {
		if r.statusUpdates != nil {
			b = statusSpy{BillingRepository: b, calls: r.statusUpdates}
		}
		return fn(c, b, failingReceivables{ReceivableRepository: rec, failCreate: r.failCreate, failDelete: r.failDelete})
	})
}
