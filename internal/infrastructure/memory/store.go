// Package memory implementa los puertos de repositorio en memoria.
// Se usa con STORE_DRIVER=memory (desarrollo, demos) y en los tests de casos de uso y handlers.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
)

// Store guarda todas las tablas como mapas de valores (nunca punteros compartidos con el llamador).
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	contracts      map[string]entity.Contract
	billings       map[string]entity.Billing
	receivables    map[string]entity.Receivable
	products       map[string]entity.StockProduct
	stockMovements []entity.StockMovement
	equipment      map[string]entity.EquipmentItem
	equipMovements []entity.EquipmentMovement
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		contracts:   make(map[string]entity.Contract),
		billings:    make(map[string]entity.Billing),
		receivables: make(map[string]entity.Receivable),
		products:    make(map[string]entity.StockProduct),
		equipment:   make(map[string]entity.EquipmentItem),
	}
}

func (s *Store) Contracts() *ContractRepo                   { return &ContractRepo{s: s} }
func (s *Store) Billings() *BillingRepo                     { return &BillingRepo{s: s} }
func (s *Store) Receivables() *ReceivableRepo               { return &ReceivableRepo{s: s} }
func (s *Store) StockProducts() *StockProductRepo           { return &StockProductRepo{s: s} }
func (s *Store) StockMovements() *StockMovementRepo         { return &StockMovementRepo{s: s} }
func (s *Store) Equipment() *EquipmentRepo                  { return &EquipmentRepo{s: s} }
func (s *Store) EquipmentMovements() *EquipmentMovementRepo { return &EquipmentMovementRepo{s: s} }

type snapshot struct {
	contracts      map[string]entity.Contract
	billings       map[string]entity.Billing
	receivables    map[string]entity.Receivable
	products       map[string]entity.StockProduct
	stockMovements []entity.StockMovement
	equipment      map[string]entity.EquipmentItem
	equipMovements []entity.EquipmentMovement
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		contracts:      cloneMap(s.contracts),
		billings:       cloneMap(s.billings),
		receivables:    cloneMap(s.receivables),
		products:       cloneMap(s.products),
		stockMovements: append([]entity.StockMovement(nil), s.stockMovements...),
		equipment:      cloneMap(s.equipment),
		equipMovements: append([]entity.EquipmentMovement(nil), s.equipMovements...),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contracts = snap.contracts
	s.billings = snap.billings
	s.receivables = snap.receivables
	s.products = snap.products
	s.stockMovements = snap.stockMovements
	s.equipment = snap.equipment
	s.equipMovements = snap.equipMovements
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// withTx serializa las transacciones y simula el rollback restaurando una instantánea.
// Las escrituras fuera de transacción concurrentes con un rollback se pierden; aceptable
// para un store de desarrollo.
func (s *Store) withTx(ctx context.Context, fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	snap := s.snapshot()
	if err := fn(); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// TxRunner implementa los runners transaccionales de facturación, estoque y armamento.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// RunBilling ejecuta fn con los repos de facturación; si fn falla, nada de lo escrito persiste.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	contractRepo repository.ContractRepository,
	billingRepo repository.BillingRepository,
	receivableRepo repository.ReceivableRepository,
) error) error {
	return r.s.withTx(ctx, func() error {
		return fn(r.s.Contracts(), r.s.Billings(), r.s.Receivables())
	})
}

// RunStock ejecuta fn con los repos de estoque.
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	productRepo repository.StockProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	return r.s.withTx(ctx, func() error {
		return fn(r.s.StockProducts(), r.s.StockMovements())
	})
}

// RunEquipment ejecuta fn con los repos de armamento.
func (r *TxRunner) RunEquipment(ctx context.Context, fn func(
	itemRepo repository.EquipmentRepository,
	movementRepo repository.EquipmentMovementRepository,
) error) error {
	return r.s.withTx(ctx, func() error {
		return fn(r.s.Equipment(), r.s.EquipmentMovements())
	})
}
