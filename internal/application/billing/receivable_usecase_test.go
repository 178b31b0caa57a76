package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/dto"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
)

func repositoryFilterAll() repository.ReceivableFilter { return repository.ReceivableFilter{} }

func issued(t *testing.T, f *fixture) dto.ReceivableResponse {
	t.Helper()
	b := generated(t, f)
	resp, err := f.lifecycle.Issue(context.Background(), b.ID)
	require.NoError(t, err)
	return resp.Receivable
}

func TestMarkReceived_YDeshacer(t *testing.T) {
	f := newFixture(t)
	r := issued(t, f)
	ctx := context.Background()

	got, err := f.receivables.MarkReceived(ctx, r.ID, dto.ReceiveRequest{})
	require.NoError(t, err)
	assert.Equal(t, "RECEIVED", got.Status)
	require.NotNil(t, got.ReceivedDate)
	assert.Equal(t, "2024-05-10", *got.ReceivedDate, "sin fecha se usa hoy")

	_, err = f.receivables.MarkReceived(ctx, r.ID, dto.ReceiveRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err = f.receivables.UndoReceive(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", got.Status)
	assert.Nil(t, got.ReceivedDate)
}

func TestReceivable_Atraso(t *testing.T) {
	f := newFixture(t)
	r := issued(t, f)
	ctx := context.Background()

	f.receivables.SetClock(func() time.Time { return time.Date(2024, 5, 16, 8, 0, 0, 0, time.UTC) })

	got, err := f.receivables.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, got.Overdue)

	overdue, err := f.receivables.List(ctx, repositoryFilterAll(), true)
	require.NoError(t, err)
	assert.Len(t, overdue, 1)

	_, err = f.receivables.MarkReceived(ctx, r.ID, dto.ReceiveRequest{ReceivedDate: "2024-05-16"})
	require.NoError(t, err)
	overdue, err = f.receivables.List(ctx, repositoryFilterAll(), true)
	require.NoError(t, err)
	assert.Empty(t, overdue, "un recebimento recibido nunca está atrasado")
}

func TestReceivableUpdate_SoloPendiente(t *testing.T) {
	f := newFixture(t)
	r := issued(t, f)
	ctx := context.Background()

	value := dec("8000.456")
	due := "2024-05-31"
	got, err := f.receivables.Update(ctx, r.ID, dto.UpdateReceivableRequest{Value: &value, DueDate: &due})
	require.NoError(t, err)
	assert.True(t, dec("8000.46").Equal(got.Value))
	assert.Equal(t, "2024-05-31", got.DueDate)

	received := "RECEIVED"
	got, err = f.receivables.Update(ctx, r.ID, dto.UpdateReceivableRequest{Status: &received})
	require.NoError(t, err)
	assert.Equal(t, "RECEIVED", got.Status)

	_, err = f.receivables.Update(ctx, r.ID, dto.UpdateReceivableRequest{Value: &value})
	assert.ErrorIs(t, err, domain.ErrConflict)

	bad := "CANCELADO"
	_, err = f.receivables.Update(ctx, r.ID, dto.UpdateReceivableRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReceivableUpdate_EdicionCombinada(t *testing.T) {
	f := newFixture(t)
	r := issued(t, f)
	ctx := context.Background()

	value := dec("9000")
	due := "2024-06-30"
	pending := "PENDING"
	got, err := f.receivables.Update(ctx, r.ID, dto.UpdateReceivableRequest{Value: &value, DueDate: &due, Status: &pending})
	require.NoError(t, err, "mismo estado no es una transición")
	assert.True(t, dec("9000").Equal(got.Value))
	assert.Equal(t, "2024-06-30", got.DueDate)
	assert.Equal(t, "PENDING", got.Status)

	value = dec("9100")
	due = "2024-07-05"
	received := "RECEIVED"
	got, err = f.receivables.Update(ctx, r.ID, dto.UpdateReceivableRequest{Value: &value, DueDate: &due, Status: &received})
	require.NoError(t, err)
	assert.Equal(t, "RECEIVED", got.Status)
	require.NotNil(t, got.ReceivedDate)
	assert.Equal(t, "2024-05-10", *got.ReceivedDate)

	stored, err := f.receivables.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, dec("9100").Equal(stored.Value), "el valor se guarda junto con el cambio de estado")
	assert.Equal(t, "2024-07-05", stored.DueDate)

	got, err = f.receivables.Update(ctx, r.ID, dto.UpdateReceivableRequest{Status: &received})
	require.NoError(t, err, "RECEIVED sobre RECEIVED no cambia nada")
	assert.Equal(t, "2024-05-10", *got.ReceivedDate)

	value = dec("8800")
	got, err = f.receivables.Update(ctx, r.ID, dto.UpdateReceivableRequest{Value: &value, Status: &pending})
	require.NoError(t, err, "volver a PENDING permite editar en la misma petición")
	assert.Equal(t, "PENDING", got.Status)
	assert.Nil(t, got.ReceivedDate)
	assert.True(t, dec("8800").Equal(got.Value))
}

func TestReceivable_Inexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.receivables.GetByID(context.Background(), "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
