// Package model defines domain entities for the application.
package model

import (
	"strings"
	"time"
)

// User represents an account holder with a hashed credential.
// The password hash is never serialized in API responses.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email"`
	Profession   string    `json:"profession,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// patientRoles are professions that never derive a doctor profile.
// The source data uses the Spanish spelling; both are accepted.
var patientRoles = map[string]bool{
	"paciente": true,
	"patient":  true,
}

// Role returns the normalized professional role (trimmed, lowercased).
func (u *User) Role() string {
	return strings.ToLower(strings.TrimSpace(u.Profession))
}

// IsClinician reports whether registering this user derives a doctor
// profile: the role is non-empty and not a patient role.
func (u *User) IsClinician() bool {
	role := u.Role()
	return role != "" && !patientRoles[role]
}
