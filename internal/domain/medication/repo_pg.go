package medication

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

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const medicationCols = `id, prescription_name, dosage_amount, dosage_unit, pickup_location, refills_left, frequency_amount, frequency_period, created_at`

func (r *repoPG) scanMedication(row pgx.Row) (*Medication, error) {
	var m Medication
	err := row.Scan(&m.ID, &m.PrescriptionName, &m.DosageAmount, &m.DosageUnit, &m.PickupLocation,
		&m.RefillsLeft, &m.FrequencyAmount, &m.FrequencyPeriod, &m.CreatedAt)
	return &m, err
}

func (r *repoPG) Create(ctx context.Context, m *Medication) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO medication (prescription_name, dosage_amount, dosage_unit, pickup_location, refills_left, frequency_amount, frequency_period)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at`,
		m.PrescriptionName, m.DosageAmount, m.DosageUnit, m.PickupLocation,
		m.RefillsLeft, m.FrequencyAmount, m.FrequencyPeriod,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Medication, error) {
	return r.scanMedication(r.conn(ctx).QueryRow(ctx, `SELECT `+medicationCols+` FROM medication WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Medication, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM medication`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+medicationCols+` FROM medication ORDER BY prescription_name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Medication
	for rows.Next() {
		m, err := r.scanMedication(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, nil
}

func (r *repoPG) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM medication WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *repoPG) PatientExists(ctx context.Context, patientID int64) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM patient WHERE id = $1)`, patientID).Scan(&exists)
	return exists, err
}

func (r *repoPG) Prescribe(ctx context.Context, link *PatientMedication) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient_medication (patient_id, medication_id, prescribed_date, end_date)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (patient_id, medication_id) DO UPDATE
		SET prescribed_date = EXCLUDED.prescribed_date, end_date = EXCLUDED.end_date`,
		link.PatientID, link.MedicationID, link.PrescribedDate, link.EndDate)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID int64) ([]*Medication, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT m.id, m.prescription_name, m.dosage_amount, m.dosage_unit, m.pickup_location, m.refills_left, m.frequency_amount, m.frequency_period, m.created_at
		FROM medication m
		JOIN patient_medication pm ON pm.medication_id = m.id
		WHERE pm.patient_id = $1
		ORDER BY m.prescription_name`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Medication
	for rows.Next() {
		m, err := r.scanMedication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, nil
}
