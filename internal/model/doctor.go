package model

import "time"

// Doctor represents a practitioner record. One is derived automatically
// when a registering user's profession is not a patient role; office and
// phone stay empty until filled in later.
type Doctor struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Surname    string    `json:"surname"`
	Office     string    `json:"office,omitempty"`
	Profession string    `json:"profession,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
