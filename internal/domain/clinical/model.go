package clinical

import "time"

// VitalChart is one set of recorded vitals. All four measurements are
// required on intake.
type VitalChart struct {
	ID              int64     `db:"id" json:"VitalID"`
	HeartRate       int       `db:"heart_rate" json:"HeartRate"`
	BloodPressure   string    `db:"blood_pressure" json:"BloodPressure"`
	RespiratoryRate int       `db:"respiratory_rate" json:"RespiratoryRate"`
	Temperature     float64   `db:"temperature" json:"Temperature"`
	RecordedAt      time.Time `db:"recorded_at" json:"RecordedAt"`
}

// Condition is a diagnosis with an optional treatment plan.
type Condition struct {
	ID          int64     `db:"id" json:"ConditionID"`
	Description string    `db:"description" json:"Description"`
	Treatment   *string   `db:"treatment" json:"Treatment,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"CreatedAt"`
}
