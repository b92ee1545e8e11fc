package model

import "testing"

func TestUser_IsClinician(t *testing.T) {
	tests := []struct {
		name       string
		profession string
		want       bool
	}{
		{"empty profession", "", false},
		{"whitespace only", "   ", false},
		{"paciente lowercase", "paciente", false},
		{"paciente mixed case", "Paciente", false},
		{"paciente padded", "  PACIENTE  ", false},
		{"english patient", "Patient", false},
		{"cardiologist", "Cardiólogo", true},
		{"dentist padded", " Dentista ", true},
		{"general medicine", "medicina general", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Profession: tt.profession}
			if got := u.IsClinician(); got != tt.want {
				t.Errorf("IsClinician() with %q = %v, want %v", tt.profession, got, tt.want)
			}
		})
	}
}

func TestUser_Role(t *testing.T) {
	u := &User{Profession: "  Cardiólogo "}
	if got := u.Role(); got != "cardiólogo" {
		t.Errorf("Role() = %q, want %q", got, "cardiólogo")
	}
}
