package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/billing"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/dto"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/infrastructure/memory"
)

func TestContractUseCase_CrearYListarActivos(t *testing.T) {
	uc := billing.NewContractUseCase(memory.NewStore().Contracts())
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.ContractRequest{
		CompanyID:        "empresa-1",
		WorkSiteID:       "posto-1",
		MonthlyBaseValue: dec("10000"),
		BillingDay:       5,
		DueDay:           15,
		StartDate:        "2024-01-01",
		DurationMonths:   12,
	})
	require.NoError(t, err)
	assert.True(t, created.Active, "activo por defecto")
	require.NotNil(t, created.EndDate)
	assert.Equal(t, "2024-12-31", *created.EndDate)

	inactive := false
	_, err = uc.Update(ctx, created.ID, dto.ContractRequest{
		CompanyID:        "empresa-1",
		WorkSiteID:       "posto-1",
		MonthlyBaseValue: dec("10000"),
		Active:           &inactive,
	})
	require.NoError(t, err)

	active, err := uc.List(ctx, true, "")
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := uc.List(ctx, false, "empresa-1")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestContractUseCase_Validaciones(t *testing.T) {
	uc := billing.NewContractUseCase(memory.NewStore().Contracts())
	ctx := context.Background()

	cases := []dto.ContractRequest{
		{WorkSiteID: "p", MonthlyBaseValue: dec("1")},
		{CompanyID: "e", WorkSiteID: "p", MonthlyBaseValue: dec("-1")},
		{CompanyID: "e", WorkSiteID: "p", BillingDay: 32},
		{CompanyID: "e", WorkSiteID: "p", StartDate: "2024/01/01"},
	}
	for _, in := range cases {
		_, err := uc.Create(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	_, err := uc.GetByID(ctx, "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContractUseCase_ValorBaseEnCentavos(t *testing.T) {
	uc := billing.NewContractUseCase(memory.NewStore().Contracts())

	got, err := uc.Create(context.Background(), dto.ContractRequest{
		CompanyID:        "empresa-1",
		WorkSiteID:       "posto-1",
		MonthlyBaseValue: dec("10.005"),
	})
	require.NoError(t, err)
	assert.True(t, dec("10.01").Equal(got.MonthlyBaseValue), "valor=%s", got.MonthlyBaseValue)
}
