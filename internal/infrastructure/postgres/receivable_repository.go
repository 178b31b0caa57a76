package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
)

var _ repository.ReceivableRepository = (*ReceivableRepo)(nil)

// ReceivableRepo implementación de ReceivableRepository sobre PostgreSQL (usable con pool o tx).
type ReceivableRepo struct {
	q Querier
}

// NewReceivableRepository construye el adaptador de recebimentos.
func NewReceivableRepository(q Querier) *ReceivableRepo {
	return &ReceivableRepo{q: q}
}

const receivableColumns = `id, company_id, billing_id, value, due_date, status, received_date, created_at, updated_at`

// Create inserta el recebimento; billing_id es UNIQUE y una segunda emisión devuelve domain.ErrDuplicate.
func (r *ReceivableRepo) Create(ctx context.Context, rec *entity.Receivable) error {
	query := `INSERT INTO receivables (` + receivableColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.CompanyID, rec.BillingID, rec.Value, rec.DueDate, rec.Status, rec.ReceivedDate, rec.CreatedAt, rec.UpdatedAt,
	)
	return wrapWrite("create receivable", err)
}

func (r *ReceivableRepo) Update(ctx context.Context, rec *entity.Receivable) error {
	query := `
		UPDATE receivables SET value = $2, due_date = $3, status = $4, received_date = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, rec.ID, rec.Value, rec.DueDate, rec.Status, rec.ReceivedDate, rec.UpdatedAt)
	return expectOne("update receivable", tag, err)
}

func (r *ReceivableRepo) DeleteByBillingID(ctx context.Context, billingID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM receivables WHERE billing_id = $1`, billingID)
	if err != nil {
		return 0, fmt.Errorf("delete receivable: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ReceivableRepo) GetByID(ctx context.Context, id string) (*entity.Receivable, error) {
	return r.get(ctx, `SELECT `+receivableColumns+` FROM receivables WHERE id = $1`, id)
}

func (r *ReceivableRepo) GetByBillingID(ctx context.Context, billingID string) (*entity.Receivable, error) {
	return r.get(ctx, `SELECT `+receivableColumns+` FROM receivables WHERE billing_id = $1`, billingID)
}

func (r *ReceivableRepo) get(ctx context.Context, query, arg string) (*entity.Receivable, error) {
	rec, err := scanReceivable(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receivable: %w", err)
	}
	return rec, nil
}

func (r *ReceivableRepo) List(ctx context.Context, f repository.ReceivableFilter) ([]*entity.Receivable, error) {
	var where []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.CompanyID != "" {
		add("company_id = $%d", f.CompanyID)
	}
	if f.DueFrom != nil {
		add("due_date >= $%d", *f.DueFrom)
	}
	if f.DueTo != nil {
		add("due_date <= $%d", *f.DueTo)
	}
	query := `SELECT ` + receivableColumns + ` FROM receivables`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY due_date, id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list receivables: %w", err)
	}
	defer rows.Close()

	var list []*entity.Receivable
	for rows.Next() {
		rec, err := scanReceivable(rows)
		if err != nil {
			return nil, fmt.Errorf("scan receivable: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func scanReceivable(row pgx.Row) (*entity.Receivable, error) {
	var rec entity.Receivable
	err := row.Scan(&rec.ID, &rec.CompanyID, &rec.BillingID, &rec.Value, &rec.DueDate, &rec.Status, &rec.ReceivedDate, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
