package medication

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, m *Medication) error {
	if m.PrescriptionName == "" {
		return fmt.Errorf("PrescriptionName is required")
	}
	if m.DosageAmount != nil && *m.DosageAmount <= 0 {
		return fmt.Errorf("DosageAmount must be positive")
	}
	if m.RefillsLeft != nil && *m.RefillsLeft < 0 {
		return fmt.Errorf("RefillsLeft cannot be negative")
	}
	return s.repo.Create(ctx, m)
}

func (s *Service) Get(ctx context.Context, id int64) (*Medication, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Medication, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Prescribe attaches a medication to a patient. Both sides of the link
// must already exist; a repeated prescription refreshes the dates
// instead of failing.
func (s *Service) Prescribe(ctx context.Context, link *PatientMedication) error {
	if link.MedicationID <= 0 {
		return fmt.Errorf("MedicationID is required")
	}
	ok, err := s.repo.PatientExists(ctx, link.PatientID)
	if err != nil {
		return err
	}
	if !ok {
		return pgx.ErrNoRows
	}
	ok, err = s.repo.Exists(ctx, link.MedicationID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("medication %d does not exist", link.MedicationID)
	}
	return s.repo.Prescribe(ctx, link)
}

func (s *Service) ListForPatient(ctx context.Context, patientID int64) ([]*Medication, error) {
	ok, err := s.repo.PatientExists(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return s.repo.ListByPatient(ctx, patientID)
}
