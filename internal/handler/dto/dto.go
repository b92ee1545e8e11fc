// Package dto defines request and response payloads for the HTTP API.
package dto

import "time"

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// MessageResponse carries a human-readable confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterRequest is the payload for creating a user account.
type RegisterRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Surname    string `json:"surname" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Profession string `json:"profession" validate:"max=100"`
	Password   string `json:"password" validate:"required,min=6,max=128"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ProtectedResponse is returned by the authenticated greeting endpoint.
type ProtectedResponse struct {
	Message string `json:"message"`
}

// DoctorRequest is the payload for creating a doctor profile.
type DoctorRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Surname    string `json:"surname" validate:"required,max=100"`
	Office     string `json:"office" validate:"max=100"`
	Profession string `json:"profession" validate:"max=100"`
	Phone      string `json:"phone" validate:"max=30"`
	Email      string `json:"email" validate:"omitempty,email,max=255"`
}

// PatientRequest is the payload for creating a patient.
type PatientRequest struct {
	Name           string     `json:"name" validate:"required,max=100"`
	Surname        string     `json:"surname" validate:"required,max=100"`
	Gender         string     `json:"gender" validate:"max=30"`
	Age            *int       `json:"age" validate:"omitempty,gte=0,lte=150"`
	STI            bool       `json:"sti"`
	HeartCondition bool       `json:"heart_condition"`
	Diabetes       bool       `json:"diabetes"`
	Phone          string     `json:"phone" validate:"max=30"`
	Email          string     `json:"email" validate:"omitempty,email,max=255"`
	BirthDate      *time.Time `json:"birth_date"`
}

// RecordRequest is the payload for creating or replacing a clinical record.
type RecordRequest struct {
	PatientID  string `json:"patient_id" validate:"required"`
	DoctorID   string `json:"doctor_id"`
	Medication string `json:"medication" validate:"max=500"`
	Treatment  string `json:"treatment" validate:"max=2000"`
	Diagnosis  string `json:"diagnosis" validate:"max=2000"`
	Notes      string `json:"notes" validate:"max=5000"`
}

// AppointmentRequest is the payload for scheduling an appointment.
type AppointmentRequest struct {
	ScheduledAt *time.Time `json:"scheduled_at"`
	DoctorID    string     `json:"doctor_id" validate:"required"`
	PatientID   string     `json:"patient_id" validate:"required"`
	OfficeID    string     `json:"office_id"`
	Phone       string     `json:"phone" validate:"max=30"`
	Details     string     `json:"details" validate:"max=2000"`
	Email       string     `json:"email" validate:"omitempty,email,max=255"`
}

// OfficeRequest is the payload for registering a consultation office.
type OfficeRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	DoctorCapacity *int   `json:"doctor_capacity" validate:"omitempty,gte=0"`
	OpensAt        string `json:"opens_at" validate:"omitempty,len=5"`
	ContactNumber  string `json:"contact_number" validate:"max=30"`
}

// DoctorOfficeRequest is the payload for assigning a doctor to an office.
type DoctorOfficeRequest struct {
	OfficeID string `json:"office_id" validate:"required"`
	DoctorID string `json:"doctor_id" validate:"required"`
}
