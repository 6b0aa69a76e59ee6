package encounter

import "context"

type VisitRepository interface {
	Create(ctx context.Context, v *Visit) error
	GetByID(ctx context.Context, id int64) (*Visit, error)
	GetByPatient(ctx context.Context, patientID int64) (*Visit, error)
	Update(ctx context.Context, v *Visit) error
	List(ctx context.Context, limit, offset int) ([]*Visit, int, error)
}

type DischargeRepository interface {
	Create(ctx context.Context, d *Discharge) error
	GetByID(ctx context.Context, id int64) (*Discharge, error)
	GetByPatient(ctx context.Context, patientID int64) (*Discharge, error)
	List(ctx context.Context, limit, offset int) ([]*Discharge, int, error)
}
