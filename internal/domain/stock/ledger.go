// Package stock deriva saldos de estoque a partir del ledger de movimientos.
// Las funciones son puras: recorren el log completo en cada llamada, sin memoización.
package stock

import "github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"

// Holder identifica a quien tiene en posesión el material: un colaborador o un puesto.
type Holder struct {
	ID         string
	IsEmployee bool
}

// Employee construye un Holder de colaborador.
func Employee(id string) Holder { return Holder{ID: id, IsEmployee: true} }

// WorkSite construye un Holder de puesto.
func WorkSite(id string) Holder { return Holder{ID: id} }

// HolderOf devuelve el poseedor del movimiento; ok=false en movimientos de lote.
func HolderOf(m *entity.StockMovement) (Holder, bool) {
	switch {
	case m.EmployeeID != nil:
		return Employee(*m.EmployeeID), true
	case m.WorkSiteID != nil:
		return WorkSite(*m.WorkSiteID), true
	}
	return Holder{}, false
}

// Matches indica si el movimiento pertenece al poseedor.
func (h Holder) Matches(m *entity.StockMovement) bool {
	if h.IsEmployee {
		return m.EmployeeID != nil && *m.EmployeeID == h.ID
	}
	return m.WorkSiteID != nil && *m.WorkSiteID == h.ID
}

// Possession calcula la cantidad neta por producto en manos del poseedor:
// +ENTREGAR, -DEVOLVER. Solo devuelve productos con saldo positivo.
func Possession(h Holder, movements []*entity.StockMovement) map[string]int {
	net := make(map[string]int)
	for _, m := range movements {
		if !h.Matches(m) {
			continue
		}
		switch m.Type {
		case entity.StockMovementDeliver:
			net[m.ProductID] += m.Quantity
		case entity.StockMovementReturn:
			net[m.ProductID] -= m.Quantity
		}
	}
	for id, q := range net {
		if q <= 0 {
			delete(net, id)
		}
	}
	return net
}

// Balance saldo de un producto derivado del ledger.
type Balance struct {
	Base  int // en el almacén
	InUse int // entregado a colaboradores/puestos
}

// Balances calcula base e in-use por producto:
// base = +ADICIONAR -DESCARTAR -ENTREGAR +DEVOLVER; inUse = +ENTREGAR -DEVOLVER.
func Balances(movements []*entity.StockMovement) map[string]Balance {
	out := make(map[string]Balance)
	for _, m := range movements {
		b := out[m.ProductID]
		switch m.Type {
		case entity.StockMovementAddLot:
			b.Base += m.Quantity
		case entity.StockMovementDiscard:
			b.Base -= m.Quantity
		case entity.StockMovementDeliver:
			b.Base -= m.Quantity
			b.InUse += m.Quantity
		case entity.StockMovementReturn:
			b.Base += m.Quantity
			b.InUse -= m.Quantity
		}
		out[m.ProductID] = b
	}
	return out
}

// ProductBalance saldo de un único producto.
func ProductBalance(productID string, movements []*entity.StockMovement) Balance {
	return Balances(movements)[productID]
}
