package identity

import (
	"context"
	"fmt"
)

type Service struct {
	patients PatientRepository
	doctors  DoctorRepository
	nurses   NurseRepository
	proxies  ProxyRepository
}

func NewService(patients PatientRepository, doctors DoctorRepository, nurses NurseRepository, proxies ProxyRepository) *Service {
	return &Service{patients: patients, doctors: doctors, nurses: nurses, proxies: proxies}
}

// -- Patient --

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

// UpdatePatientLinks changes only the care-team and record FK fields;
// demographics are immutable through this API.
func (s *Service) UpdatePatientLinks(ctx context.Context, id int64, u *PatientLinkUpdate) error {
	if u.isEmpty() {
		return fmt.Errorf("at least one link field is required")
	}
	return s.patients.UpdateLinks(ctx, id, u)
}

func (s *Service) ListPatientProxies(ctx context.Context, patientID int64) ([]*Proxy, error) {
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		return nil, err
	}
	return s.proxies.ListByPatient(ctx, patientID)
}

func (s *Service) GetPatientDoctor(ctx context.Context, patientID int64) (*Doctor, error) {
	return s.doctors.GetByPatient(ctx, patientID)
}

func (s *Service) GetPatientNurse(ctx context.Context, patientID int64) (*Nurse, error) {
	return s.nurses.GetByPatient(ctx, patientID)
}

// -- Doctor --

func (s *Service) ListDoctors(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, limit, offset)
}

func (s *Service) GetDoctor(ctx context.Context, id int64) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) ListDoctorPatients(ctx context.Context, doctorID int64, limit, offset int) ([]*Patient, int, error) {
	if _, err := s.doctors.GetByID(ctx, doctorID); err != nil {
		return nil, 0, err
	}
	return s.patients.ListByDoctor(ctx, doctorID, limit, offset)
}

// -- Nurse --

func (s *Service) ListNurses(ctx context.Context, limit, offset int) ([]*Nurse, int, error) {
	return s.nurses.List(ctx, limit, offset)
}

func (s *Service) GetNurse(ctx context.Context, id int64) (*Nurse, error) {
	return s.nurses.GetByID(ctx, id)
}

func (s *Service) ListNursePatients(ctx context.Context, nurseID int64, limit, offset int) ([]*Patient, int, error) {
	if _, err := s.nurses.GetByID(ctx, nurseID); err != nil {
		return nil, 0, err
	}
	return s.patients.ListByNurse(ctx, nurseID, limit, offset)
}

// -- Proxy --

func (s *Service) ListProxies(ctx context.Context, limit, offset int) ([]*Proxy, int, error) {
	return s.proxies.List(ctx, limit, offset)
}

func (s *Service) GetProxy(ctx context.Context, id int64) (*Proxy, error) {
	return s.proxies.GetByID(ctx, id)
}

func (s *Service) ListProxyPatients(ctx context.Context, proxyID int64, limit, offset int) ([]*Patient, int, error) {
	if _, err := s.proxies.GetByID(ctx, proxyID); err != nil {
		return nil, 0, err
	}
	return s.patients.ListByProxy(ctx, proxyID, limit, offset)
}
