package dto

import "time"

type CreateAssignmentRequest struct {
	TestID       string     `json:"testId" binding:"required"`
	ConsultantID string     `json:"consultantId" binding:"required"`
	DueDate      *time.Time `json:"dueDate"`
}

type AssignmentResponse struct {
	ID           string     `json:"id"`
	TestID       string     `json:"testId"`
	TestTitle    string     `json:"testTitle"` // raw test id when the test was deleted
	ConsultantID string     `json:"consultantId"`
	Consultant   string     `json:"consultant"`
	ConsultorID  string     `json:"consultorId"`
	AssignedDate time.Time  `json:"assignedDate"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	Status       string     `json:"status"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
	LastSavedAt  *time.Time `json:"lastSavedAt,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// AnswerDTO carries one response: Answer for open questions, Selected option
// ids for closed (exactly one) and multiple (one or more) questions.
type AnswerDTO struct {
	QuestionID string   `json:"questionId" binding:"required"`
	Type       string   `json:"type" binding:"required,oneof=open closed multiple"`
	Answer     string   `json:"answer"`
	Selected   []string `json:"selected"`
}

// StartTestResponse is what the consultante needs to take (or resume) a test:
// the assignment, the full test and any autosaved progress to prefill.
type StartTestResponse struct {
	Assignment AssignmentResponse `json:"assignment"`
	Test       TestResponse       `json:"test"`
	Progress   []AnswerDTO        `json:"progress,omitempty"`
}

type SaveProgressRequest struct {
	Answers []AnswerDTO `json:"answers" binding:"omitempty,dive"`
}

type SubmitRequest struct {
	Answers []AnswerDTO `json:"answers" binding:"required,dive"`
}
