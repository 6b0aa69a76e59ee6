package encounter

import (
	"context"
	"fmt"
)

type Service struct {
	visits     VisitRepository
	discharges DischargeRepository
}

func NewService(visits VisitRepository, discharges DischargeRepository) *Service {
	return &Service{visits: visits, discharges: discharges}
}

// -- Visit --

func (s *Service) CreateVisit(ctx context.Context, v *Visit) error {
	if v.AdmitReason == "" {
		return fmt.Errorf("AdmitReason is required")
	}
	if v.AppointmentDate.IsZero() {
		return fmt.Errorf("AppointmentDate is required")
	}
	return s.visits.Create(ctx, v)
}

func (s *Service) GetVisit(ctx context.Context, id int64) (*Visit, error) {
	return s.visits.GetByID(ctx, id)
}

func (s *Service) GetPatientVisit(ctx context.Context, patientID int64) (*Visit, error) {
	return s.visits.GetByPatient(ctx, patientID)
}

func (s *Service) UpdateVisit(ctx context.Context, v *Visit) error {
	if v.AdmitReason == "" {
		return fmt.Errorf("AdmitReason is required")
	}
	if v.AppointmentDate.IsZero() {
		return fmt.Errorf("AppointmentDate is required")
	}
	return s.visits.Update(ctx, v)
}

func (s *Service) ListVisits(ctx context.Context, limit, offset int) ([]*Visit, int, error) {
	return s.visits.List(ctx, limit, offset)
}

// -- Discharge --

func (s *Service) CreateDischarge(ctx context.Context, d *Discharge) error {
	if d.DischargeDate.IsZero() {
		return fmt.Errorf("DischargeDate is required")
	}
	if d.Instructions == "" {
		return fmt.Errorf("Instructions is required")
	}
	return s.discharges.Create(ctx, d)
}

func (s *Service) GetDischarge(ctx context.Context, id int64) (*Discharge, error) {
	return s.discharges.GetByID(ctx, id)
}

func (s *Service) GetPatientDischarge(ctx context.Context, patientID int64) (*Discharge, error) {
	return s.discharges.GetByPatient(ctx, patientID)
}

func (s *Service) ListDischarges(ctx context.Context, limit, offset int) ([]*Discharge, int, error) {
	return s.discharges.List(ctx, limit, offset)
}
