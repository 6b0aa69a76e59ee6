package medication

import "context"

// Repository provides access to the medication formulary and to
// patient prescription links.
type Repository interface {
	Create(ctx context.Context, m *Medication) error
	GetByID(ctx context.Context, id int64) (*Medication, error)
	List(ctx context.Context, limit, offset int) ([]*Medication, int, error)

	Exists(ctx context.Context, id int64) (bool, error)
	PatientExists(ctx context.Context, patientID int64) (bool, error)

	Prescribe(ctx context.Context, link *PatientMedication) error
	ListByPatient(ctx context.Context, patientID int64) ([]*Medication, error)
}
