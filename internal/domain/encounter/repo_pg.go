package encounter

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitalflow/vitalflow/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== Visit Repository ===========

type visitRepoPG struct{ pool *pgxpool.Pool }

func NewVisitRepoPG(pool *pgxpool.Pool) VisitRepository {
	return &visitRepoPG{pool: pool}
}

func (r *visitRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const visitCols = `id, admit_reason, appointment_date, next_visit_date, created_at`

func (r *visitRepoPG) scanVisit(row pgx.Row) (*Visit, error) {
	var v Visit
	err := row.Scan(&v.ID, &v.AdmitReason, &v.AppointmentDate, &v.NextVisitDate, &v.CreatedAt)
	return &v, err
}

func (r *visitRepoPG) Create(ctx context.Context, v *Visit) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO visit (admit_reason, appointment_date, next_visit_date)
		VALUES ($1,$2,$3)
		RETURNING id, created_at`,
		v.AdmitReason, v.AppointmentDate, v.NextVisitDate,
	).Scan(&v.ID, &v.CreatedAt)
}

func (r *visitRepoPG) GetByID(ctx context.Context, id int64) (*Visit, error) {
	return r.scanVisit(r.conn(ctx).QueryRow(ctx, `SELECT `+visitCols+` FROM visit WHERE id = $1`, id))
}

func (r *visitRepoPG) GetByPatient(ctx context.Context, patientID int64) (*Visit, error) {
	return r.scanVisit(r.conn(ctx).QueryRow(ctx, `
		SELECT v.id, v.admit_reason, v.appointment_date, v.next_visit_date, v.created_at
		FROM visit v
		JOIN patient p ON p.visit_id = v.id
		WHERE p.id = $1`, patientID))
}

func (r *visitRepoPG) Update(ctx context.Context, v *Visit) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE visit SET admit_reason=$2, appointment_date=$3, next_visit_date=$4
		WHERE id = $1`,
		v.ID, v.AdmitReason, v.AppointmentDate, v.NextVisitDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *visitRepoPG) List(ctx context.Context, limit, offset int) ([]*Visit, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM visit`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+visitCols+` FROM visit ORDER BY appointment_date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Visit
	for rows.Next() {
		v, err := r.scanVisit(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	return items, total, nil
}

// =========== Discharge Repository ===========

type dischargeRepoPG struct{ pool *pgxpool.Pool }

func NewDischargeRepoPG(pool *pgxpool.Pool) DischargeRepository {
	return &dischargeRepoPG{pool: pool}
}

func (r *dischargeRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const dischargeCols = `id, discharge_date, instructions, created_at`

func (r *dischargeRepoPG) scanDischarge(row pgx.Row) (*Discharge, error) {
	var d Discharge
	err := row.Scan(&d.ID, &d.DischargeDate, &d.Instructions, &d.CreatedAt)
	return &d, err
}

func (r *dischargeRepoPG) Create(ctx context.Context, d *Discharge) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO discharge (discharge_date, instructions)
		VALUES ($1,$2)
		RETURNING id, created_at`,
		d.DischargeDate, d.Instructions,
	).Scan(&d.ID, &d.CreatedAt)
}

func (r *dischargeRepoPG) GetByID(ctx context.Context, id int64) (*Discharge, error) {
	return r.scanDischarge(r.conn(ctx).QueryRow(ctx, `SELECT `+dischargeCols+` FROM discharge WHERE id = $1`, id))
}

func (r *dischargeRepoPG) GetByPatient(ctx context.Context, patientID int64) (*Discharge, error) {
	return r.scanDischarge(r.conn(ctx).QueryRow(ctx, `
		SELECT d.id, d.discharge_date, d.instructions, d.created_at
		FROM discharge d
		JOIN patient p ON p.discharge_id = d.id
		WHERE p.id = $1`, patientID))
}

func (r *dischargeRepoPG) List(ctx context.Context, limit, offset int) ([]*Discharge, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM discharge`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+dischargeCols+` FROM discharge ORDER BY discharge_date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Discharge
	for rows.Next() {
		d, err := r.scanDischarge(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, nil
}
