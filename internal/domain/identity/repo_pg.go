package identity

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

// =========== Patient Repository ===========

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const patientCols = `id, first_name, last_name, dob, blood_type, weight,
	doctor_id, nurse_id, visit_id, vital_id, condition_id, discharge_id, insurance_id, created_at`

func (r *patientRepoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.DOB, &p.BloodType, &p.Weight,
		&p.DoctorID, &p.NurseID, &p.VisitID, &p.VitalID, &p.ConditionID,
		&p.DischargeID, &p.InsuranceID, &p.CreatedAt)
	return &p, err
}

func (r *patientRepoPG) collect(rows pgx.Rows) ([]*Patient, error) {
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, nil
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patient ORDER BY last_name, first_name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items, err := r.collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *patientRepoPG) GetByID(ctx context.Context, id int64) (*Patient, error) {
	return r.scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

// UpdateLinks rewrites only the FK fields present in the request; COALESCE
// keeps the stored value for absent ones.
func (r *patientRepoPG) UpdateLinks(ctx context.Context, id int64, u *PatientLinkUpdate) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET
			doctor_id    = COALESCE($2, doctor_id),
			nurse_id     = COALESCE($3, nurse_id),
			visit_id     = COALESCE($4, visit_id),
			vital_id     = COALESCE($5, vital_id),
			condition_id = COALESCE($6, condition_id),
			discharge_id = COALESCE($7, discharge_id),
			insurance_id = COALESCE($8, insurance_id)
		WHERE id = $1`,
		id, u.DoctorID, u.NurseID, u.VisitID, u.VitalID, u.ConditionID, u.DischargeID, u.InsuranceID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *patientRepoPG) ListByDoctor(ctx context.Context, doctorID int64, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient WHERE doctor_id = $1`, doctorID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patient WHERE doctor_id = $1 ORDER BY last_name, first_name LIMIT $2 OFFSET $3`, doctorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items, err := r.collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *patientRepoPG) ListByNurse(ctx context.Context, nurseID int64, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient WHERE nurse_id = $1`, nurseID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patient WHERE nurse_id = $1 ORDER BY last_name, first_name LIMIT $2 OFFSET $3`, nurseID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items, err := r.collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *patientRepoPG) ListByProxy(ctx context.Context, proxyID int64, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM patient p
		JOIN proxy x ON x.patient_id = p.id
		WHERE x.id = $1`, proxyID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT p.id, p.first_name, p.last_name, p.dob, p.blood_type, p.weight,
			p.doctor_id, p.nurse_id, p.visit_id, p.vital_id, p.condition_id, p.discharge_id, p.insurance_id, p.created_at
		FROM patient p
		JOIN proxy x ON x.patient_id = p.id
		WHERE x.id = $1
		ORDER BY p.last_name, p.first_name LIMIT $2 OFFSET $3`, proxyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items, err := r.collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// =========== Doctor Repository ===========

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepoPG{pool: pool}
}

func (r *doctorRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const doctorCols = `id, first_name, last_name, specialty, created_at`

func (r *doctorRepoPG) scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.FirstName, &d.LastName, &d.Specialty, &d.CreatedAt)
	return &d, err
}

func (r *doctorRepoPG) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM doctor`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+doctorCols+` FROM doctor ORDER BY last_name, first_name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := r.scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, nil
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id int64) (*Doctor, error) {
	return r.scanDoctor(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE id = $1`, id))
}

func (r *doctorRepoPG) GetByPatient(ctx context.Context, patientID int64) (*Doctor, error) {
	return r.scanDoctor(r.conn(ctx).QueryRow(ctx, `
		SELECT d.id, d.first_name, d.last_name, d.specialty, d.created_at
		FROM doctor d
		JOIN patient p ON p.doctor_id = d.id
		WHERE p.id = $1`, patientID))
}

// =========== Nurse Repository ===========

type nurseRepoPG struct{ pool *pgxpool.Pool }

func NewNurseRepoPG(pool *pgxpool.Pool) NurseRepository {
	return &nurseRepoPG{pool: pool}
}

func (r *nurseRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const nurseCols = `id, first_name, last_name, created_at`

func (r *nurseRepoPG) scanNurse(row pgx.Row) (*Nurse, error) {
	var n Nurse
	err := row.Scan(&n.ID, &n.FirstName, &n.LastName, &n.CreatedAt)
	return &n, err
}

func (r *nurseRepoPG) List(ctx context.Context, limit, offset int) ([]*Nurse, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM nurse`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+nurseCols+` FROM nurse ORDER BY last_name, first_name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Nurse
	for rows.Next() {
		n, err := r.scanNurse(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, n)
	}
	return items, total, nil
}

func (r *nurseRepoPG) GetByID(ctx context.Context, id int64) (*Nurse, error) {
	return r.scanNurse(r.conn(ctx).QueryRow(ctx, `SELECT `+nurseCols+` FROM nurse WHERE id = $1`, id))
}

func (r *nurseRepoPG) GetByPatient(ctx context.Context, patientID int64) (*Nurse, error) {
	return r.scanNurse(r.conn(ctx).QueryRow(ctx, `
		SELECT n.id, n.first_name, n.last_name, n.created_at
		FROM nurse n
		JOIN patient p ON p.nurse_id = n.id
		WHERE p.id = $1`, patientID))
}

// =========== Proxy Repository ===========

type proxyRepoPG struct{ pool *pgxpool.Pool }

func NewProxyRepoPG(pool *pgxpool.Pool) ProxyRepository {
	return &proxyRepoPG{pool: pool}
}

func (r *proxyRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const proxyCols = `id, first_name, last_name, relationship, patient_id, created_at`

func (r *proxyRepoPG) scanProxy(row pgx.Row) (*Proxy, error) {
	var p Proxy
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Relationship, &p.PatientID, &p.CreatedAt)
	return &p, err
}

func (r *proxyRepoPG) List(ctx context.Context, limit, offset int) ([]*Proxy, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM proxy`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+proxyCols+` FROM proxy ORDER BY last_name, first_name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Proxy
	for rows.Next() {
		p, err := r.scanProxy(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *proxyRepoPG) GetByID(ctx context.Context, id int64) (*Proxy, error) {
	return r.scanProxy(r.conn(ctx).QueryRow(ctx, `SELECT `+proxyCols+` FROM proxy WHERE id = $1`, id))
}

func (r *proxyRepoPG) ListByPatient(ctx context.Context, patientID int64) ([]*Proxy, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+proxyCols+` FROM proxy WHERE patient_id = $1 ORDER BY last_name, first_name`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Proxy
	for rows.Next() {
		p, err := r.scanProxy(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, nil
}
