package clinical

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

// =========== Vital Chart Repository ===========

type vitalRepoPG struct{ pool *pgxpool.Pool }

func NewVitalRepoPG(pool *pgxpool.Pool) VitalRepository {
	return &vitalRepoPG{pool: pool}
}

func (r *vitalRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const vitalCols = `id, heart_rate, blood_pressure, respiratory_rate, temperature, recorded_at`

func (r *vitalRepoPG) scanVital(row pgx.Row) (*VitalChart, error) {
	var v VitalChart
	err := row.Scan(&v.ID, &v.HeartRate, &v.BloodPressure, &v.RespiratoryRate, &v.Temperature, &v.RecordedAt)
	return &v, err
}

func (r *vitalRepoPG) Create(ctx context.Context, v *VitalChart) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO vital_chart (heart_rate, blood_pressure, respiratory_rate, temperature)
		VALUES ($1,$2,$3,$4)
		RETURNING id, recorded_at`,
		v.HeartRate, v.BloodPressure, v.RespiratoryRate, v.Temperature,
	).Scan(&v.ID, &v.RecordedAt)
}

func (r *vitalRepoPG) GetByID(ctx context.Context, id int64) (*VitalChart, error) {
	return r.scanVital(r.conn(ctx).QueryRow(ctx, `SELECT `+vitalCols+` FROM vital_chart WHERE id = $1`, id))
}

func (r *vitalRepoPG) GetByPatient(ctx context.Context, patientID int64) (*VitalChart, error) {
	return r.scanVital(r.conn(ctx).QueryRow(ctx, `
		SELECT v.id, v.heart_rate, v.blood_pressure, v.respiratory_rate, v.temperature, v.recorded_at
		FROM vital_chart v
		JOIN patient p ON p.vital_id = v.id
		WHERE p.id = $1`, patientID))
}

func (r *vitalRepoPG) List(ctx context.Context, limit, offset int) ([]*VitalChart, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM vital_chart`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+vitalCols+` FROM vital_chart ORDER BY recorded_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*VitalChart
	for rows.Next() {
		v, err := r.scanVital(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	return items, total, nil
}

// =========== Condition Repository ===========

type conditionRepoPG struct{ pool *pgxpool.Pool }

func NewConditionRepoPG(pool *pgxpool.Pool) ConditionRepository {
	return &conditionRepoPG{pool: pool}
}

func (r *conditionRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const conditionCols = `id, description, treatment, created_at`

func (r *conditionRepoPG) scanCondition(row pgx.Row) (*Condition, error) {
	var c Condition
	err := row.Scan(&c.ID, &c.Description, &c.Treatment, &c.CreatedAt)
	return &c, err
}

func (r *conditionRepoPG) Create(ctx context.Context, c *Condition) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO condition (description, treatment)
		VALUES ($1,$2)
		RETURNING id, created_at`,
		c.Description, c.Treatment,
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *conditionRepoPG) GetByID(ctx context.Context, id int64) (*Condition, error) {
	return r.scanCondition(r.conn(ctx).QueryRow(ctx, `SELECT `+conditionCols+` FROM condition WHERE id = $1`, id))
}

func (r *conditionRepoPG) GetByPatient(ctx context.Context, patientID int64) (*Condition, error) {
	return r.scanCondition(r.conn(ctx).QueryRow(ctx, `
		SELECT c.id, c.description, c.treatment, c.created_at
		FROM condition c
		JOIN patient p ON p.condition_id = c.id
		WHERE p.id = $1`, patientID))
}

func (r *conditionRepoPG) Update(ctx context.Context, c *Condition) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE condition SET description=$2, treatment=$3
		WHERE id = $1`,
		c.ID, c.Description, c.Treatment)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *conditionRepoPG) List(ctx context.Context, limit, offset int) ([]*Condition, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM condition`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+conditionCols+` FROM condition ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Condition
	for rows.Next() {
		c, err := r.scanCondition(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, nil
}
