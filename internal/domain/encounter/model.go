package encounter

import "time"

// Visit records an admission or appointment.
type Visit struct {
	ID              int64      `db:"id" json:"VisitID"`
	AdmitReason     string     `db:"admit_reason" json:"AdmitReason"`
	AppointmentDate time.Time  `db:"appointment_date" json:"AppointmentDate"`
	NextVisitDate   *time.Time `db:"next_visit_date" json:"NextVisitDate,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"CreatedAt"`
}

// Discharge carries the discharge date and after-care instructions.
type Discharge struct {
	ID            int64     `db:"id" json:"DischargeID"`
	DischargeDate time.Time `db:"discharge_date" json:"DischargeDate"`
	Instructions  string    `db:"instructions" json:"Instructions"`
	CreatedAt     time.Time `db:"created_at" json:"CreatedAt"`
}
