package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
)

var _ repository.ContractRepository = (*ContractRepo)(nil)

// ContractRepo implementación de ContractRepository sobre PostgreSQL (usable con pool o tx).
type ContractRepo struct {
	q Querier
}

// NewContractRepository construye el adaptador de contratos. Pasar pool o tx (Querier).
func NewContractRepository(q Querier) *ContractRepo {
	return &ContractRepo{q: q}
}

const contractColumns = `id, company_id, work_site_id, description, monthly_base_value, billing_day, due_day,
	start_date, duration_months, active, retain_iss, iss_rate, retain_pis, retain_cofins, retain_csll,
	retain_irpj, retain_inss, retain_escrow, escrow_rate, created_at, updated_at`

func (r *ContractRepo) Create(ctx context.Context, c *entity.Contract) error {
	query := `INSERT INTO contracts (` + contractColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, c.WorkSiteID, c.Description, c.MonthlyBaseValue, c.BillingDay, c.DueDay,
		c.StartDate, c.DurationMonths, c.Active, c.RetainISS, c.ISSRate, c.RetainPIS, c.RetainCOFINS, c.RetainCSLL,
		c.RetainIRPJ, c.RetainINSS, c.RetainEscrow, c.EscrowRate, c.CreatedAt, c.UpdatedAt,
	)
	return wrapWrite("create contract", err)
}

func (r *ContractRepo) Update(ctx context.Context, c *entity.Contract) error {
	query := `
		UPDATE contracts SET
			company_id = $2, work_site_id = $3, description = $4, monthly_base_value = $5,
			billing_day = $6, due_day = $7, start_date = $8, duration_months = $9, active = $10,
			retain_iss = $11, iss_rate = $12, retain_pis = $13, retain_cofins = $14, retain_csll = $15,
			retain_irpj = $16, retain_inss = $17, retain_escrow = $18, escrow_rate = $19, updated_at = $20
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, c.WorkSiteID, c.Description, c.MonthlyBaseValue,
		c.BillingDay, c.DueDay, c.StartDate, c.DurationMonths, c.Active,
		c.RetainISS, c.ISSRate, c.RetainPIS, c.RetainCOFINS, c.RetainCSLL,
		c.RetainIRPJ, c.RetainINSS, c.RetainEscrow, c.EscrowRate, c.UpdatedAt,
	)
	return expectOne("update contract", tag, err)
}

func (r *ContractRepo) GetByID(ctx context.Context, id string) (*entity.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`
	c, err := scanContract(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contract: %w", err)
	}
	return c, nil
}

func (r *ContractRepo) List(ctx context.Context, f repository.ContractFilter) ([]*entity.Contract, error) {
	var where []string
	var args []any
	if f.ActiveOnly {
		where = append(where, "active")
	}
	if f.CompanyID != "" {
		args = append(args, f.CompanyID)
		where = append(where, fmt.Sprintf("company_id = $%d", len(args)))
	}
	query := `SELECT ` + contractColumns + ` FROM contracts`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at, id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()

	var list []*entity.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanContract(row pgx.Row) (*entity.Contract, error) {
	var c entity.Contract
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.WorkSiteID, &c.Description, &c.MonthlyBaseValue, &c.BillingDay, &c.DueDay,
		&c.StartDate, &c.DurationMonths, &c.Active, &c.RetainISS, &c.ISSRate, &c.RetainPIS, &c.RetainCOFINS, &c.RetainCSLL,
		&c.RetainIRPJ, &c.RetainINSS, &c.RetainEscrow, &c.EscrowRate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
