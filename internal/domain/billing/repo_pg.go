package billing

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

type insuranceRepoPG struct{ pool *pgxpool.Pool }

func NewInsuranceRepoPG(pool *pgxpool.Pool) InsuranceRepository {
	return &insuranceRepoPG{pool: pool}
}

func (r *insuranceRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const insuranceCols = `id, insurance_provider, policy_number, deductible, created_at`

func (r *insuranceRepoPG) scanInsurance(row pgx.Row) (*Insurance, error) {
	var ins Insurance
	err := row.Scan(&ins.ID, &ins.InsuranceProvider, &ins.PolicyNumber, &ins.Deductible, &ins.CreatedAt)
	return &ins, err
}

func (r *insuranceRepoPG) Create(ctx context.Context, ins *Insurance) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO insurance (insurance_provider, policy_number, deductible)
		VALUES ($1,$2,$3)
		RETURNING id, created_at`,
		ins.InsuranceProvider, ins.PolicyNumber, ins.Deductible,
	).Scan(&ins.ID, &ins.CreatedAt)
}

func (r *insuranceRepoPG) GetByID(ctx context.Context, id int64) (*Insurance, error) {
	return r.scanInsurance(r.conn(ctx).QueryRow(ctx, `SELECT `+insuranceCols+` FROM insurance WHERE id = $1`, id))
}

func (r *insuranceRepoPG) GetByPatient(ctx context.Context, patientID int64) (*Insurance, error) {
	return r.scanInsurance(r.conn(ctx).QueryRow(ctx, `
		SELECT i.id, i.insurance_provider, i.policy_number, i.deductible, i.created_at
		FROM insurance i
		JOIN patient p ON p.insurance_id = i.id
		WHERE p.id = $1`, patientID))
}

func (r *insuranceRepoPG) List(ctx context.Context, limit, offset int) ([]*Insurance, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM insurance`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+insuranceCols+` FROM insurance ORDER BY insurance_provider LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Insurance
	for rows.Next() {
		ins, err := r.scanInsurance(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, ins)
	}
	return items, total, nil
}
