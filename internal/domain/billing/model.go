package billing

import "time"

// Insurance is a patient's coverage record.
type Insurance struct {
	ID                int64     `db:"id" json:"InsuranceID"`
	InsuranceProvider string    `db:"insurance_provider" json:"InsuranceProvider"`
	PolicyNumber      string    `db:"policy_number" json:"PolicyNumber"`
	Deductible        *float64  `db:"deductible" json:"Deductible,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"CreatedAt"`
}
