package model

import "time"

// ClinicalRecord represents one clinical-history entry for a patient,
// optionally attributed to a doctor.
type ClinicalRecord struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patient_id"`
	DoctorID   string    `json:"doctor_id,omitempty"`
	Medication string    `json:"medication,omitempty"`
	Treatment  string    `json:"treatment,omitempty"`
	Diagnosis  string    `json:"diagnosis,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
