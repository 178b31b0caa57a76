package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
)

var (
	_ repository.StockProductRepository  = (*StockProductRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
)

// StockProductRepo implementación de StockProductRepository sobre PostgreSQL (usable con pool o tx).
type StockProductRepo struct {
	q Querier
}

// NewStockProductRepository construye el adaptador de productos de estoque. Pasar pool o tx (Querier).
func NewStockProductRepository(q Querier) *StockProductRepo {
	return &StockProductRepo{q: q}
}

const stockProductColumns = `id, type, category, name, variation, reference_code, base_stock, in_use_stock, created_at, updated_at`

func (r *StockProductRepo) Create(ctx context.Context, p *entity.StockProduct) error {
	query := `INSERT INTO stock_products (` + stockProductColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Type, p.Category, p.Name, p.Variation, p.ReferenceCode, p.BaseStock, p.InUseStock, p.CreatedAt, p.UpdatedAt,
	)
	return wrapWrite("create stock product", err)
}

func (r *StockProductRepo) Update(ctx context.Context, p *entity.StockProduct) error {
	query := `
		UPDATE stock_products SET type = $2, category = $3, name = $4, variation = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.Type, p.Category, p.Name, p.Variation, p.UpdatedAt)
	return expectOne("update stock product", tag, err)
}

func (r *StockProductRepo) UpdateCounters(ctx context.Context, id string, base, inUse int, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE stock_products SET base_stock = $2, in_use_stock = $3, updated_at = $4 WHERE id = $1`,
		id, base, inUse, at,
	)
	return expectOne("update stock counters", tag, err)
}

func (r *StockProductRepo) GetByID(ctx context.Context, id string) (*entity.StockProduct, error) {
	return r.get(ctx, `SELECT `+stockProductColumns+` FROM stock_products WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *StockProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockProduct, error) {
	return r.get(ctx, `SELECT `+stockProductColumns+` FROM stock_products WHERE id = $1 FOR UPDATE`, id)
}

func (r *StockProductRepo) get(ctx context.Context, query, id string) (*entity.StockProduct, error) {
	var p entity.StockProduct
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Type, &p.Category, &p.Name, &p.Variation, &p.ReferenceCode, &p.BaseStock, &p.InUseStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock product: %w", err)
	}
	return &p, nil
}

func (r *StockProductRepo) List(ctx context.Context) ([]*entity.StockProduct, error) {
	rows, err := r.q.Query(ctx, `SELECT `+stockProductColumns+` FROM stock_products ORDER BY name, variation, id`)
	if err != nil {
		return nil, fmt.Errorf("list stock products: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockProduct
	for rows.Next() {
		var p entity.StockProduct
		if err := rows.Scan(
			&p.ID, &p.Type, &p.Category, &p.Name, &p.Variation, &p.ReferenceCode, &p.BaseStock, &p.InUseStock, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// StockMovementRepo ledger de estoque (append-only) sobre PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador del ledger.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const stockMovementColumns = `id, product_id, type, quantity, date, employee_id, work_site_id,
	destination_company, notes, created_by, created_at`

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `INSERT INTO stock_movements (` + stockMovementColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Type, m.Quantity, m.Date, m.EmployeeID, m.WorkSiteID,
		m.DestinationCompany, m.Notes, m.CreatedBy, m.CreatedAt,
	)
	return wrapWrite("create stock movement", err)
}

// ListByProduct devuelve el ledger del producto en orden de inserción.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	return r.list(ctx, `SELECT `+stockMovementColumns+` FROM stock_movements WHERE product_id = $1 ORDER BY seq`, productID)
}

func (r *StockMovementRepo) ListByHolder(ctx context.Context, holderID string, isEmployee bool) ([]*entity.StockMovement, error) {
	column := "work_site_id"
	if isEmployee {
		column = "employee_id"
	}
	return r.list(ctx, `SELECT `+stockMovementColumns+` FROM stock_movements WHERE `+column+` = $1 ORDER BY seq`, holderID)
}

func (r *StockMovementRepo) list(ctx context.Context, query string, arg string) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.StockMovement, error) {
		var m entity.StockMovement
		err := row.Scan(
			&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Date, &m.EmployeeID, &m.WorkSiteID,
			&m.DestinationCompany, &m.Notes, &m.CreatedBy, &m.CreatedAt,
		)
		return &m, err
	})
}
