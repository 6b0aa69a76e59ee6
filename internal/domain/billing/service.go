package billing

import (
	"context"
	"fmt"
)

type Service struct {
	insurance InsuranceRepository
}

func NewService(insurance InsuranceRepository) *Service {
	return &Service{insurance: insurance}
}

func (s *Service) CreateInsurance(ctx context.Context, ins *Insurance) error {
	if ins.InsuranceProvider == "" {
		return fmt.Errorf("InsuranceProvider is required")
	}
	if ins.PolicyNumber == "" {
		return fmt.Errorf("PolicyNumber is required")
	}
	if ins.Deductible != nil && *ins.Deductible < 0 {
		return fmt.Errorf("Deductible cannot be negative")
	}
	return s.insurance.Create(ctx, ins)
}

func (s *Service) GetInsurance(ctx context.Context, id int64) (*Insurance, error) {
	return s.insurance.GetByID(ctx, id)
}

func (s *Service) GetPatientInsurance(ctx context.Context, patientID int64) (*Insurance, error) {
	return s.insurance.GetByPatient(ctx, patientID)
}

func (s *Service) ListInsurance(ctx context.Context, limit, offset int) ([]*Insurance, int, error) {
	return s.insurance.List(ctx, limit, offset)
}
