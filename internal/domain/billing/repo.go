package billing

import "context"

// InsuranceRepository provides access to insurance records.
type InsuranceRepository interface {
	Create(ctx context.Context, ins *Insurance) error
	GetByID(ctx context.Context, id int64) (*Insurance, error)
	GetByPatient(ctx context.Context, patientID int64) (*Insurance, error)
	List(ctx context.Context, limit, offset int) ([]*Insurance, int, error)
}
