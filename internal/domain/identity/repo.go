package identity

import "context"

type PatientRepository interface {
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	GetByID(ctx context.Context, id int64) (*Patient, error)
	UpdateLinks(ctx context.Context, id int64, u *PatientLinkUpdate) error
	ListByDoctor(ctx context.Context, doctorID int64, limit, offset int) ([]*Patient, int, error)
	ListByNurse(ctx context.Context, nurseID int64, limit, offset int) ([]*Patient, int, error)
	ListByProxy(ctx context.Context, proxyID int64, limit, offset int) ([]*Patient, int, error)
}

type DoctorRepository interface {
	List(ctx context.Context, limit, offset int) ([]*Doctor, int, error)
	GetByID(ctx context.Context, id int64) (*Doctor, error)
	GetByPatient(ctx context.Context, patientID int64) (*Doctor, error)
}

type NurseRepository interface {
	List(ctx context.Context, limit, offset int) ([]*Nurse, int, error)
	GetByID(ctx context.Context, id int64) (*Nurse, error)
	GetByPatient(ctx context.Context, patientID int64) (*Nurse, error)
}

type ProxyRepository interface {
	List(ctx context.Context, limit, offset int) ([]*Proxy, int, error)
	GetByID(ctx context.Context, id int64) (*Proxy, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*Proxy, error)
}
