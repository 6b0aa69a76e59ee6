package medication

import "time"

// Medication is a prescribable drug from the formulary. Only the
// prescription name is mandatory; dosage and refill details are
// filled in as the pharmacy provides them.
type Medication struct {
	ID               int64     `db:"id" json:"MedicationID"`
	PrescriptionName string    `db:"prescription_name" json:"PrescriptionName"`
	DosageAmount     *float64  `db:"dosage_amount" json:"DosageAmount,omitempty"`
	DosageUnit       *string   `db:"dosage_unit" json:"DosageUnit,omitempty"`
	PickupLocation   *string   `db:"pickup_location" json:"PickupLocation,omitempty"`
	RefillsLeft      *int      `db:"refills_left" json:"RefillsLeft,omitempty"`
	FrequencyAmount  *int      `db:"frequency_amount" json:"FrequencyAmount,omitempty"`
	FrequencyPeriod  *string   `db:"frequency_period" json:"FrequencyPeriod,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"CreatedAt"`
}

// PatientMedication links a patient to a prescribed medication.
type PatientMedication struct {
	PatientID      int64      `db:"patient_id" json:"PatientID"`
	MedicationID   int64      `db:"medication_id" json:"MedicationID"`
	PrescribedDate *time.Time `db:"prescribed_date" json:"PrescribedDate,omitempty"`
	EndDate        *time.Time `db:"end_date" json:"EndDate,omitempty"`
}
