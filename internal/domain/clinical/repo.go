package clinical

import "context"

// VitalRepository provides access to vital chart records.
type VitalRepository interface {
	Create(ctx context.Context, v *VitalChart) error
	GetByID(ctx context.Context, id int64) (*VitalChart, error)
	GetByPatient(ctx context.Context, patientID int64) (*VitalChart, error)
	List(ctx context.Context, limit, offset int) ([]*VitalChart, int, error)
}

// ConditionRepository provides access to condition records.
type ConditionRepository interface {
	Create(ctx context.Context, c *Condition) error
	GetByID(ctx context.Context, id int64) (*Condition, error)
	GetByPatient(ctx context.Context, patientID int64) (*Condition, error)
	Update(ctx context.Context, c *Condition) error
	List(ctx context.Context, limit, offset int) ([]*Condition, int, error)
}
