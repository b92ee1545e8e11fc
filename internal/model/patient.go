package model

import "time"

// Patient represents a patient demographic and risk-factor record.
type Patient struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Surname        string     `json:"surname"`
	Gender         string     `json:"gender,omitempty"`
	Age            *int       `json:"age,omitempty"`
	STI            bool       `json:"sti"`
	HeartCondition bool       `json:"heart_condition"`
	Diabetes       bool       `json:"diabetes"`
	Phone          string     `json:"phone,omitempty"`
	Email          string     `json:"email,omitempty"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
