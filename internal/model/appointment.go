package model

import "time"

// Appointment represents a scheduled visit between a doctor and a patient
// at an office.
type Appointment struct {
	ID          string     `json:"id"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	DoctorID    string     `json:"doctor_id"`
	PatientID   string     `json:"patient_id"`
	OfficeID    string     `json:"office_id"`
	Phone       string     `json:"phone,omitempty"`
	Details     string     `json:"details,omitempty"`
	Email       string     `json:"email,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
