package identity

import "time"

// Patient is the central record; the FK columns point at the patient's
// current doctor, nurse, visit, vitals, condition, discharge and insurance.
type Patient struct {
	ID          int64      `db:"id" json:"PatientID"`
	FirstName   string     `db:"first_name" json:"FirstName"`
	LastName    string     `db:"last_name" json:"LastName"`
	DOB         *time.Time `db:"dob" json:"DOB,omitempty"`
	BloodType   *string    `db:"blood_type" json:"BloodType,omitempty"`
	Weight      *float64   `db:"weight" json:"Weight,omitempty"`
	DoctorID    *int64     `db:"doctor_id" json:"DoctorID,omitempty"`
	NurseID     *int64     `db:"nurse_id" json:"NurseID,omitempty"`
	VisitID     *int64     `db:"visit_id" json:"VisitID,omitempty"`
	VitalID     *int64     `db:"vital_id" json:"VitalID,omitempty"`
	ConditionID *int64     `db:"condition_id" json:"ConditionID,omitempty"`
	DischargeID *int64     `db:"discharge_id" json:"DischargeID,omitempty"`
	InsuranceID *int64     `db:"insurance_id" json:"InsuranceID,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"CreatedAt"`
}

type Doctor struct {
	ID        int64     `db:"id" json:"DoctorID"`
	FirstName string    `db:"first_name" json:"FirstName"`
	LastName  string    `db:"last_name" json:"LastName"`
	Specialty *string   `db:"specialty" json:"Specialty,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"CreatedAt"`
}

type Nurse struct {
	ID        int64     `db:"id" json:"NurseID"`
	FirstName string    `db:"first_name" json:"FirstName"`
	LastName  string    `db:"last_name" json:"LastName"`
	CreatedAt time.Time `db:"created_at" json:"CreatedAt"`
}

// Proxy is a caregiver linked to one patient; a proxy's portal views are
// the linked patient's records.
type Proxy struct {
	ID           int64     `db:"id" json:"ProxyID"`
	FirstName    string    `db:"first_name" json:"FirstName"`
	LastName     string    `db:"last_name" json:"LastName"`
	Relationship *string   `db:"relationship" json:"Relationship,omitempty"`
	PatientID    *int64    `db:"patient_id" json:"PatientID,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"CreatedAt"`
}

// PatientLinkUpdate carries the FK fields a PUT may change. Nil fields are
// left untouched.
type PatientLinkUpdate struct {
	DoctorID    *int64 `json:"DoctorID"`
	NurseID     *int64 `json:"NurseID"`
	VisitID     *int64 `json:"VisitID"`
	VitalID     *int64 `json:"VitalID"`
	ConditionID *int64 `json:"ConditionID"`
	DischargeID *int64 `json:"DischargeID"`
	InsuranceID *int64 `json:"InsuranceID"`
}

func (u *PatientLinkUpdate) isEmpty() bool {
	return u.DoctorID == nil && u.NurseID == nil && u.VisitID == nil &&
		u.VitalID == nil && u.ConditionID == nil && u.DischargeID == nil &&
		u.InsuranceID == nil
}
