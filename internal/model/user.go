package model

import "time"

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleConsultor   Role = "consultor"
	RoleConsultante Role = "consultante"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleConsultor, RoleConsultante:
		return true
	}
	return false
}

// User is a platform account. Password is an opaque credential kept only in
// the store; it must never leave through the API or session claims.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Password    string    `json:"password,omitempty"`
	Role        Role      `json:"role"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	ConsultorID string    `json:"consultorId,omitempty"` // owning consultor, set only for consultantes
	CreatedAt   time.Time `json:"createdAt"`
}

// Sanitized returns a copy safe for sessions and API responses.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

func (u User) Clone() User { return u }
