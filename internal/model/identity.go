package model

// Identity is the authenticated caller resolved from a bearer token.
// It is injected into the request context by the auth middleware.
type Identity struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Profession string `json:"profession,omitempty"`
}
