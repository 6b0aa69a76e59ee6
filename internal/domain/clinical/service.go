package clinical

import (
	"context"
	"fmt"
)

type Service struct {
	vitals     VitalRepository
	conditions ConditionRepository
}

func NewService(vitals VitalRepository, conditions ConditionRepository) *Service {
	return &Service{vitals: vitals, conditions: conditions}
}

// -- Vital Chart --

func (s *Service) RecordVitals(ctx context.Context, v *VitalChart) error {
	if v.HeartRate <= 0 {
		return fmt.Errorf("HeartRate is required")
	}
	if v.BloodPressure == "" {
		return fmt.Errorf("BloodPressure is required")
	}
	if v.RespiratoryRate <= 0 {
		return fmt.Errorf("RespiratoryRate is required")
	}
	if v.Temperature <= 0 {
		return fmt.Errorf("Temperature is required")
	}
	return s.vitals.Create(ctx, v)
}

func (s *Service) GetVitals(ctx context.Context, id int64) (*VitalChart, error) {
	return s.vitals.GetByID(ctx, id)
}

func (s *Service) GetPatientVitals(ctx context.Context, patientID int64) (*VitalChart, error) {
	return s.vitals.GetByPatient(ctx, patientID)
}

func (s *Service) ListVitals(ctx context.Context, limit, offset int) ([]*VitalChart, int, error) {
	return s.vitals.List(ctx, limit, offset)
}

// -- Condition --

func (s *Service) CreateCondition(ctx context.Context, c *Condition) error {
	if c.Description == "" {
		return fmt.Errorf("Description is required")
	}
	return s.conditions.Create(ctx, c)
}

func (s *Service) GetCondition(ctx context.Context, id int64) (*Condition, error) {
	return s.conditions.GetByID(ctx, id)
}

func (s *Service) GetPatientCondition(ctx context.Context, patientID int64) (*Condition, error) {
	return s.conditions.GetByPatient(ctx, patientID)
}

func (s *Service) UpdateCondition(ctx context.Context, c *Condition) error {
	if c.Description == "" {
		return fmt.Errorf("Description is required")
	}
	return s.conditions.Update(ctx, c)
}

func (s *Service) ListConditions(ctx context.Context, limit, offset int) ([]*Condition, int, error) {
	return s.conditions.List(ctx, limit, offset)
}
