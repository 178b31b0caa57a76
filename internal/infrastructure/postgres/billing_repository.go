package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
)

var _ repository.BillingRepository = (*BillingRepo)(nil)

// BillingRepo implementación de BillingRepository sobre PostgreSQL (usable con pool o tx).
type BillingRepo struct {
	q Querier
}

// NewBillingRepository construye el adaptador de faturamentos. Pasar pool o tx (Querier).
func NewBillingRepository(q Querier) *BillingRepo {
	return &BillingRepo{q: q}
}

const billingColumns = `id, contract_id, company_id, competency_month, gross_value, issue_date, due_date, status, notes,
	iss_value, pis_value, cofins_value, csll_value, irpj_value, inss_value, escrow_value,
	net_invoice_value, net_receivable_value, created_at, updated_at`

const insertBillingSQL = `INSERT INTO billings (` + billingColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

func billingArgs(b *entity.Billing) []any {
	return []any{
		b.ID, b.ContractID, b.CompanyID, b.CompetencyMonth, b.GrossValue, b.IssueDate, b.DueDate, b.Status, b.Notes,
		b.ISSValue, b.PISValue, b.COFINSValue, b.CSLLValue, b.IRPJValue, b.INSSValue, b.EscrowValue,
		b.NetInvoiceValue, b.NetReceivableValue, b.CreatedAt, b.UpdatedAt,
	}
}

func (r *BillingRepo) Create(ctx context.Context, b *entity.Billing) error {
	_, err := r.q.Exec(ctx, insertBillingSQL, billingArgs(b)...)
	return wrapWrite("create billing", err)
}

// CreateBatch inserta el lote en un único round-trip (pgx.Batch).
func (r *BillingRepo) CreateBatch(ctx context.Context, list []*entity.Billing) error {
	if len(list) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, b := range list {
		batch.Queue(insertBillingSQL, billingArgs(b)...)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range list {
		if _, err := br.Exec(); err != nil {
			return wrapWrite("create billing batch", err)
		}
	}
	return nil
}

func (r *BillingRepo) Update(ctx context.Context, b *entity.Billing) error {
	query := `
		UPDATE billings SET
			competency_month = $2, gross_value = $3, issue_date = $4, due_date = $5, status = $6, notes = $7,
			iss_value = $8, pis_value = $9, cofins_value = $10, csll_value = $11, irpj_value = $12,
			inss_value = $13, escrow_value = $14, net_invoice_value = $15, net_receivable_value = $16,
			updated_at = $17
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		b.ID, b.CompetencyMonth, b.GrossValue, b.IssueDate, b.DueDate, b.Status, b.Notes,
		b.ISSValue, b.PISValue, b.COFINSValue, b.CSLLValue, b.IRPJValue,
		b.INSSValue, b.EscrowValue, b.NetInvoiceValue, b.NetReceivableValue,
		b.UpdatedAt,
	)
	return expectOne("update billing", tag, err)
}

func (r *BillingRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE billings SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
	return expectOne("update billing status", tag, err)
}

func (r *BillingRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM billings WHERE id = $1`, id)
	return expectOne("delete billing", tag, err)
}

func (r *BillingRepo) GetByID(ctx context.Context, id string) (*entity.Billing, error) {
	return r.get(ctx, `SELECT `+billingColumns+` FROM billings WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila del faturamento (SELECT FOR UPDATE).
func (r *BillingRepo) GetForUpdate(ctx context.Context, id string) (*entity.Billing, error) {
	return r.get(ctx, `SELECT `+billingColumns+` FROM billings WHERE id = $1 FOR UPDATE`, id)
}

func (r *BillingRepo) get(ctx context.Context, query, id string) (*entity.Billing, error) {
	b, err := scanBilling(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get billing: %w", err)
	}
	return b, nil
}

func (r *BillingRepo) List(ctx context.Context, f repository.BillingFilter) ([]*entity.Billing, error) {
	var where []string
	var args []any
	if f.CompetencyMonth != nil {
		args = append(args, *f.CompetencyMonth)
		where = append(where, fmt.Sprintf("competency_month = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.ContractID != "" {
		args = append(args, f.ContractID)
		where = append(where, fmt.Sprintf("contract_id = $%d", len(args)))
	}
	query := `SELECT ` + billingColumns + ` FROM billings`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY competency_month DESC, issue_date, id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list billings: %w", err)
	}
	defer rows.Close()

	var list []*entity.Billing
	for rows.Next() {
		b, err := scanBilling(rows)
		if err != nil {
			return nil, fmt.Errorf("scan billing: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func (r *BillingRepo) ContractIDsWithBilling(ctx context.Context, competency time.Time) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT contract_id FROM billings WHERE competency_month = $1 ORDER BY contract_id`, competency)
	if err != nil {
		return nil, fmt.Errorf("billed contracts: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("billed contracts scan: %w", err)
	}
	return ids, nil
}

func scanBilling(row pgx.Row) (*entity.Billing, error) {
	var b entity.Billing
	err := row.Scan(
		&b.ID, &b.ContractID, &b.CompanyID, &b.CompetencyMonth, &b.GrossValue, &b.IssueDate, &b.DueDate, &b.Status, &b.Notes,
		&b.ISSValue, &b.PISValue, &b.COFINSValue, &b.CSLLValue, &b.IRPJValue, &b.INSSValue, &b.EscrowValue,
		&b.NetInvoiceValue, &b.NetReceivableValue, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
