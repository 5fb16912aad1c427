package dto

import "time"

type OptionRequest struct {
	ID   string `json:"id"`
	Text string `json:"text" binding:"required"`
}

type QuestionRequest struct {
	ID           string          `json:"id"`
	Type         string          `json:"type" binding:"required,oneof=open closed multiple"`
	QuestionText string          `json:"questionText" binding:"required"`
	Image        string          `json:"image"` // inline base64 data URL
	Options      []OptionRequest `json:"options" binding:"omitempty,dive"`
}

type CreateTestRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description" binding:"required"`
	Questions   []QuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

// UpdateTestRequest replaces the question list only when supplied.
type UpdateTestRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Questions   *[]QuestionRequest `json:"questions" binding:"omitempty,min=1,dive"`
}

type OptionResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type QuestionResponse struct {
	ID           string           `json:"id"`
	Type         string           `json:"type"`
	QuestionText string           `json:"questionText"`
	Image        string           `json:"image,omitempty"`
	Options      []OptionResponse `json:"options,omitempty"`
}

type TestResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Questions   []QuestionResponse `json:"questions"`
	CreatedBy   string             `json:"createdBy"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   *time.Time         `json:"updatedAt,omitempty"`
}

type TestSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	QuestionCount int       `json:"questionCount"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
}
