package model

import "time"

// Office represents a consultation office (consultorio).
// OpensAt is a wall-clock time in "HH:MM" format.
type Office struct {
	ID             string    `json:"id"`
	Name           string    `json:"name,omitempty"`
	DoctorCapacity *int      `json:"doctor_capacity,omitempty"`
	OpensAt        string    `json:"opens_at,omitempty"`
	ContactNumber  string    `json:"contact_number,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// DoctorOffice links a doctor to an office they practice at.
type DoctorOffice struct {
	ID        string    `json:"id"`
	OfficeID  string    `json:"office_id"`
	DoctorID  string    `json:"doctor_id"`
	CreatedAt time.Time `json:"created_at"`
}
