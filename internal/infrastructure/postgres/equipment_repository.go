package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
)

var (
	_ repository.EquipmentRepository         = (*EquipmentRepo)(nil)
	_ repository.EquipmentMovementRepository = (*EquipmentMovementRepo)(nil)
)

// EquipmentRepo implementación de EquipmentRepository sobre PostgreSQL (usable con pool o tx).
type EquipmentRepo struct {
	q Querier
}

// NewEquipmentRepository construye el adaptador de armamento.
func NewEquipmentRepository(q Querier) *EquipmentRepo {
	return &EquipmentRepo{q: q}
}

const equipmentColumns = `id, type, description, brand, caliber, serial_number, quantity, work_site_id, created_at, updated_at`

func (r *EquipmentRepo) Create(ctx context.Context, e *entity.EquipmentItem) error {
	query := `INSERT INTO equipment_items (` + equipmentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Type, e.Description, e.Brand, e.Caliber, e.SerialNumber, e.Quantity, e.WorkSiteID, e.CreatedAt, e.UpdatedAt,
	)
	return wrapWrite("create equipment", err)
}

func (r *EquipmentRepo) Update(ctx context.Context, e *entity.EquipmentItem) error {
	query := `
		UPDATE equipment_items SET
			description = $2, brand = $3, caliber = $4, serial_number = $5, quantity = $6, work_site_id = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, e.ID, e.Description, e.Brand, e.Caliber, e.SerialNumber, e.Quantity, e.WorkSiteID, e.UpdatedAt)
	return expectOne("update equipment", tag, err)
}

func (r *EquipmentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM equipment_items WHERE id = $1`, id)
	return expectOne("delete equipment", tag, err)
}

func (r *EquipmentRepo) GetByID(ctx context.Context, id string) (*entity.EquipmentItem, error) {
	return r.get(ctx, `SELECT `+equipmentColumns+` FROM equipment_items WHERE id = $1`, id)
}

func (r *EquipmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.EquipmentItem, error) {
	return r.get(ctx, `SELECT `+equipmentColumns+` FROM equipment_items WHERE id = $1 FOR UPDATE`, id)
}

func (r *EquipmentRepo) GetBySerial(ctx context.Context, serial string) (*entity.EquipmentItem, error) {
	return r.get(ctx, `SELECT `+equipmentColumns+` FROM equipment_items WHERE serial_number = $1`, serial)
}

// FindLotForUpdate bloquea el lote (descripción, ubicación). IS NOT DISTINCT FROM compara NULL = base.
func (r *EquipmentRepo) FindLotForUpdate(ctx context.Context, description string, workSiteID *string) (*entity.EquipmentItem, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment_items
		WHERE type = 'MUNICAO' AND description = $1 AND work_site_id IS NOT DISTINCT FROM $2
		LIMIT 1 FOR UPDATE`
	return r.get(ctx, query, description, workSiteID)
}

func (r *EquipmentRepo) get(ctx context.Context, query string, args ...any) (*entity.EquipmentItem, error) {
	e, err := scanEquipment(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment: %w", err)
	}
	return e, nil
}

func (r *EquipmentRepo) List(ctx context.Context, f repository.EquipmentFilter) ([]*entity.EquipmentItem, error) {
	var where []string
	var args []any
	if f.Type != "" {
		args = append(args, f.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.AtBase {
		where = append(where, "work_site_id IS NULL")
	}
	if f.WorkSiteID != "" {
		args = append(args, f.WorkSiteID)
		where = append(where, fmt.Sprintf("work_site_id = $%d", len(args)))
	}
	query := `SELECT ` + equipmentColumns + ` FROM equipment_items`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY type, description, id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()

	var list []*entity.EquipmentItem
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanEquipment(row pgx.Row) (*entity.EquipmentItem, error) {
	var e entity.EquipmentItem
	err := row.Scan(&e.ID, &e.Type, &e.Description, &e.Brand, &e.Caliber, &e.SerialNumber, &e.Quantity, &e.WorkSiteID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// EquipmentMovementRepo auditoría de traslados sobre PostgreSQL.
type EquipmentMovementRepo struct {
	q Querier
}

// NewEquipmentMovementRepository construye el adaptador de auditoría.
func NewEquipmentMovementRepository(q Querier) *EquipmentMovementRepo {
	return &EquipmentMovementRepo{q: q}
}

const equipmentMovementColumns = `id, item_id, item_type, description, from_work_site_id, to_work_site_id, quantity, created_by, created_at`

func (r *EquipmentMovementRepo) Create(ctx context.Context, m *entity.EquipmentMovement) error {
	query := `INSERT INTO equipment_movements (` + equipmentMovementColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ItemID, m.ItemType, m.Description, m.FromWorkSiteID, m.ToWorkSiteID, m.Quantity, m.CreatedBy, m.CreatedAt,
	)
	return wrapWrite("create equipment movement", err)
}

func (r *EquipmentMovementRepo) List(ctx context.Context, itemID string, limit int) ([]*entity.EquipmentMovement, error) {
	query := `SELECT ` + equipmentMovementColumns + ` FROM equipment_movements`
	args := []any{}
	if itemID != "" {
		args = append(args, itemID)
		query += " WHERE item_id = $1"
	}
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" ORDER BY seq DESC LIMIT $%d", len(args))
	} else {
		query += " ORDER BY seq DESC"
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list equipment movements: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.EquipmentMovement, error) {
		var m entity.EquipmentMovement
		err := row.Scan(&m.ID, &m.ItemID, &m.ItemType, &m.Description, &m.FromWorkSiteID, &m.ToWorkSiteID, &m.Quantity, &m.CreatedBy, &m.CreatedAt)
		return &m, err
	})
}
