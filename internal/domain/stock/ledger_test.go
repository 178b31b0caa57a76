package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/stock"
)

func ptr(s string) *string { return &s }

func mov(product, typ string, qty int, employee, workSite *string) *entity.StockMovement {
	return &entity.StockMovement{ProductID: product, Type: typ, Quantity: qty, EmployeeID: employee, WorkSiteID: workSite}
}

func TestPossession_SumaEntregasYRestaDevoluciones(t *testing.T) {
	log := []*entity.StockMovement{
		mov("farda", entity.StockMovementAddLot, 50, nil, nil),
		mov("farda", entity.StockMovementDeliver, 3, ptr("ana"), nil),
		mov("bota", entity.StockMovementDeliver, 1, ptr("ana"), nil),
		mov("farda", entity.StockMovementDeliver, 2, ptr("bruno"), nil),
		mov("farda", entity.StockMovementReturn, 1, ptr("ana"), nil),
		mov("bota", entity.StockMovementReturn, 1, ptr("ana"), nil),
		mov("radio", entity.StockMovementDeliver, 4, nil, ptr("ana")), // puesto con el mismo id
	}

	got := stock.Possession(stock.Employee("ana"), log)

	assert.Equal(t, map[string]int{"farda": 2}, got, "bota devuelta no aparece")
	assert.Equal(t, map[string]int{"radio": 4}, stock.Possession(stock.WorkSite("ana"), log))
	assert.Empty(t, stock.Possession(stock.Employee("carla"), log))
}

// posesión(e, p) == Σ ENTREGAR - Σ DEVOLVER y nunca negativa.
func TestPossession_ConservaLaSuma(t *testing.T) {
	holders := []stock.Holder{stock.Employee("e1"), stock.Employee("e2"), stock.WorkSite("p1")}
	log := []*entity.StockMovement{
		mov("x", entity.StockMovementDeliver, 5, ptr("e1"), nil),
		mov("x", entity.StockMovementDeliver, 2, nil, ptr("p1")),
		mov("y", entity.StockMovementDeliver, 7, ptr("e2"), nil),
		mov("x", entity.StockMovementReturn, 3, ptr("e1"), nil),
		mov("y", entity.StockMovementReturn, 7, ptr("e2"), nil),
		mov("x", entity.StockMovementDeliver, 1, ptr("e1"), nil),
	}

	for _, h := range holders {
		got := stock.Possession(h, log)
		for _, p := range []string{"x", "y"} {
			want := 0
			for _, m := range log {
				if !h.Matches(m) || m.ProductID != p {
					continue
				}
				if m.Type == entity.StockMovementDeliver {
					want += m.Quantity
				} else if m.Type == entity.StockMovementReturn {
					want -= m.Quantity
				}
			}
			assert.Equal(t, want, got[p], "holder=%v producto=%s", h, p)
			assert.GreaterOrEqual(t, got[p], 0)
		}
	}
}

func TestBalances(t *testing.T) {
	log := []*entity.StockMovement{
		mov("x", entity.StockMovementAddLot, 10, nil, nil),
		mov("x", entity.StockMovementDeliver, 4, ptr("e1"), nil),
		mov("x", entity.StockMovementDiscard, 1, nil, nil),
		mov("x", entity.StockMovementReturn, 2, ptr("e1"), nil),
		mov("y", entity.StockMovementAddLot, 3, nil, nil),
	}

	got := stock.Balances(log)

	assert.Equal(t, stock.Balance{Base: 7, InUse: 2}, got["x"])
	assert.Equal(t, stock.Balance{Base: 3}, got["y"])
	assert.Equal(t, stock.Balance{}, stock.ProductBalance("z", log))
}

func TestHolderOf(t *testing.T) {
	h, ok := stock.HolderOf(mov("x", entity.StockMovementDeliver, 1, nil, ptr("p9")))
	assert.True(t, ok)
	assert.Equal(t, stock.WorkSite("p9"), h)

	_, ok = stock.HolderOf(mov("x", entity.StockMovementAddLot, 1, nil, nil))
	assert.False(t, ok)
}
