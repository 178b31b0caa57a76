package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/dto"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/infrastructure/memory"
)

// generated crea el contrato de referencia y su faturamento de 2024-05.
func generated(t *testing.T, f *fixture) dto.BillingResponse {
	t.Helper()
	f.seedContract(t, referenceContract("c1"))
	resp, err := f.generate.Generate(context.Background(), dto.GenerateBillingsRequest{Competency: "2024-05"})
	require.NoError(t, err)
	require.Len(t, resp.Billings, 1)
	return resp.Billings[0]
}

func TestIssue_CreaRecebimentoPorElLiquido(t *testing.T) {
	f := newFixture(t)
	b := generated(t, f)

	resp, err := f.lifecycle.Issue(context.Background(), b.ID)
	require.NoError(t, err)

	assert.Equal(t, "BILLED", resp.Billing.Status)
	assert.Equal(t, b.ID, resp.Receivable.BillingID)
	assert.True(t, dec("8335").Equal(resp.Receivable.Value))
	assert.Equal(t, "2024-05-15", resp.Receivable.DueDate)
	assert.Equal(t, "PENDING", resp.Receivable.Status)
	assert.False(t, resp.Receivable.Overdue)
}

func TestIssue_SegundaVezEsRechazada(t *testing.T) {
	f := newFixture(t)
	b := generated(t, f)
	ctx := context.Background()

	_, err := f.lifecycle.Issue(ctx, b.ID)
	require.NoError(t, err)

	_, err = f.lifecycle.Issue(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyBilled)

	list, err := f.receivables.List(ctx, repositoryFilterAll(), false)
	require.NoError(t, err)
	assert.Len(t, list, 1, "sigue existiendo un único recebimento")
}

func TestIssue_FalloDelRecebimentoRevierteElEstado(t *testing.T) {
	store := memory.NewStore()
	ok := newFixtureWithRunner(t, store, memory.NewTxRunner(store))
	b := generated(t, ok)

	faulty := newFixtureWithRunner(t, store, faultyRunner{inner: memory.NewTxRunner(store), failCreate: true})
	_, err := faulty.lifecycle.Issue(context.Background(), b.ID)
	require.ErrorIs(t, err, errBoom)

	got, err := ok.lifecycle.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", got.Status, "ningún faturamento queda BILLED sin recebimento")

	list, err := ok.receivables.List(context.Background(), repositoryFilterAll(), false)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUndo_FalloAlBorrarRecebimentoNoTocaElEstado(t *testing.T) {
	store := memory.NewStore()
	ok := newFixtureWithRunner(t, store, memory.NewTxRunner(store))
	b := generated(t, ok)
	ctx := context.Background()

	issued, err := ok.lifecycle.Issue(ctx, b.ID)
	require.NoError(t, err)

	statusUpdates := 0
	faulty := newFixtureWithRunner(t, store, faultyRunner{
		inner:         memory.NewTxRunner(store),
		failDelete:    true,
		statusUpdates: &statusUpdates,
	})
	_, err = faulty.lifecycle.Undo(ctx, b.ID)
	require.ErrorIs(t, err, errBoom)
	assert.Zero(t, statusUpdates, "el estado no se toca si el borrado falla")

	got, err := ok.lifecycle.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "BILLED", got.Status)

	rec, err := ok.receivables.GetByID(ctx, issued.Receivable.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", rec.Status, "el recebimento sigue existiendo")
}

func TestCreate_BrutoSeRedondeaACentavos(t *testing.T) {
	f := newFixture(t)
	f.seedContract(t, referenceContract("c1"))
	ctx := context.Background()

	got, err := f.lifecycle.Create(ctx, dto.CreateBillingRequest{
		ContractID: "c1",
		GrossValue: dec("500.005"),
		IssueDate:  "2024-05-20",
	})
	require.NoError(t, err)
	assert.True(t, dec("500.01").Equal(got.GrossValue), "bruto=%s", got.GrossValue)
	assert.True(t, got.NetInvoiceValue.LessThanOrEqual(got.GrossValue))

	gross := dec("700.125")
	got, err = f.lifecycle.Update(ctx, got.ID, dto.UpdateBillingRequest{GrossValue: &gross})
	require.NoError(t, err)
	assert.True(t, dec("700.13").Equal(got.GrossValue), "bruto=%s", got.GrossValue)
	assert.True(t, got.NetInvoiceValue.LessThanOrEqual(got.GrossValue))
}

func TestIssueUndo_CicloRepetidoVuelveAlEstadoInicial(t *testing.T) {
	f := newFixture(t)
	b := generated(t, f)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.lifecycle.Issue(ctx, b.ID)
		require.NoError(t, err, "emisión %d", i)

		undone, err := f.lifecycle.Undo(ctx, b.ID)
		require.NoError(t, err, "deshacer %d", i)
		assert.Equal(t, "PENDING", undone.Status)
	}

	list, err := f.receivables.List(ctx, repositoryFilterAll(), false)
	require.NoError(t, err)
	assert.Empty(t, list, "no quedan recebimentos huérfanos")
}

func TestUndo_RecebimentoRecibidoBloquea(t *testing.T) {
	f := newFixture(t)
	b := generated(t, f)
	ctx := context.Background()

	issued, err := f.lifecycle.Issue(ctx, b.ID)
	require.NoError(t, err)
	_, err = f.receivables.MarkReceived(ctx, issued.Receivable.ID, dto.ReceiveRequest{ReceivedDate: "2024-05-14"})
	require.NoError(t, err)

	_, err = f.lifecycle.Undo(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrReceivableSettled)

	got, err := f.lifecycle.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "BILLED", got.Status)
}

func TestUndo_NoEmitidoEsConflicto(t *testing.T) {
	f := newFixture(t)
	b := generated(t, f)

	_, err := f.lifecycle.Undo(context.Background(), b.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestIssue_Inexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.lifecycle.Issue(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_RecalculaImpuestos(t *testing.T) {
	f := newFixture(t)
	b := generated(t, f)
	gross := dec("20000")

	got, err := f.lifecycle.Update(context.Background(), b.ID, dto.UpdateBillingRequest{GrossValue: &gross})
	require.NoError(t, err)
	assert.True(t, dec("1000").Equal(got.ISSValue))
	assert.True(t, dec("16670").Equal(got.NetInvoiceValue))
	assert.True(t, dec("16670").Equal(got.NetReceivableValue))
}

func TestUpdate_CambioDeEmisionResincronizaCompetencia(t *testing.T) {
	f := newFixture(t)
	b := generated(t, f)
	issue, due := "2024-06-03", "2024-06-20"

	got, err := f.lifecycle.Update(context.Background(), b.ID, dto.UpdateBillingRequest{IssueDate: &issue, DueDate: &due})
	require.NoError(t, err)
	assert.Equal(t, "2024-06", got.Competency)
}

func TestUpdate_SoloPendientes(t *testing.T) {
	f := newFixture(t)
	b := generated(t, f)
	ctx := context.Background()
	_, err := f.lifecycle.Issue(ctx, b.ID)
	require.NoError(t, err)

	gross := dec("1")
	_, err = f.lifecycle.Update(ctx, b.ID, dto.UpdateBillingRequest{GrossValue: &gross})
	assert.ErrorIs(t, err, domain.ErrBillingNotPending)

	err = f.lifecycle.Delete(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrBillingNotPending)
}

func TestDelete_Pendiente(t *testing.T) {
	f := newFixture(t)
	b := generated(t, f)
	ctx := context.Background()

	require.NoError(t, f.lifecycle.Delete(ctx, b.ID))
	_, err := f.lifecycle.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// La competencia queda libre para volver a generar
	resp, err := f.generate.Generate(ctx, dto.GenerateBillingsRequest{Competency: "2024-05"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Generated)
}

func TestCreate_ManualRespetaCompetenciaUnica(t *testing.T) {
	f := newFixture(t)
	generated(t, f)
	ctx := context.Background()

	_, err := f.lifecycle.Create(ctx, dto.CreateBillingRequest{
		ContractID: "c1",
		GrossValue: dec("500"),
		IssueDate:  "2024-05-20",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := f.lifecycle.Create(ctx, dto.CreateBillingRequest{
		ContractID: "c1",
		GrossValue: dec("500"),
		IssueDate:  "2024-07-20",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-07", got.Competency)
	assert.Equal(t, "2024-08-15", got.DueDate, "día 15 posterior a la emisión")
	assert.Equal(t, "PENDING", got.Status)
}

func TestCreate_EntradasInvalidas(t *testing.T) {
	f := newFixture(t)
	f.seedContract(t, referenceContract("c1"))
	ctx := context.Background()

	cases := []dto.CreateBillingRequest{
		{ContractID: "", GrossValue: dec("1"), IssueDate: "2024-05-01"},
		{ContractID: "c1", GrossValue: dec("-1"), IssueDate: "2024-05-01"},
		{ContractID: "c1", GrossValue: dec("1"), IssueDate: "01/05/2024"},
		{ContractID: "c1", GrossValue: dec("1"), IssueDate: "2024-05-10", DueDate: "2024-05-01"},
	}
	for _, in := range cases {
		_, err := f.lifecycle.Create(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	_, err := f.lifecycle.Create(ctx, dto.CreateBillingRequest{ContractID: "otro", GrossValue: dec("1"), IssueDate: "2024-05-01"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_Filtros(t *testing.T) {
	f := newFixture(t)
	b := generated(t, f)
	ctx := context.Background()
	_, err := f.lifecycle.Issue(ctx, b.ID)
	require.NoError(t, err)

	billed, err := f.lifecycle.List(ctx, "", "BILLED", "")
	require.NoError(t, err)
	assert.Len(t, billed, 1)

	pending, err := f.lifecycle.List(ctx, "2024-05", "PENDING", "")
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = f.lifecycle.List(ctx, "", "OTRO", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

