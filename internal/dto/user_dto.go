package dto

type CreateUserRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Role        string `json:"role" binding:"required,oneof=admin consultor consultante"`
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	ConsultorID string `json:"consultorId"` // required when role=consultante
}

// UpdateUserRequest carries only the fields to change; absent fields persist.
type UpdateUserRequest struct {
	Username    *string `json:"username"`
	Password    *string `json:"password"`
	Role        *string `json:"role" binding:"omitempty,oneof=admin consultor consultante"`
	FullName    *string `json:"fullName"`
	Email       *string `json:"email" binding:"omitempty,email"`
	ConsultorID *string `json:"consultorId"`
}

// ConsultanteSummary is the consultor's roster row: one owned consultante
// plus how many of their assignments are still active.
type ConsultanteSummary struct {
	User              UserResponse `json:"user"`
	ActiveAssignments int          `json:"activeAssignments"`
}
