package dto

import "time"

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the sanitized user shape; it never carries the credential.
type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	ConsultorID string    `json:"consultorId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
