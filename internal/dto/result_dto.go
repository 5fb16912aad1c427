package dto

import "time"

type ResultSummary struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignmentId"`
	TestID       string    `json:"testId"`
	TestTitle    string    `json:"testTitle"` // raw test id when the test was deleted
	ConsultantID string    `json:"consultantId"`
	Consultant   string    `json:"consultant"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// AnswerDetail resolves a stored answer against the test for review: option
// ids become option texts, falling back to the raw ids when the question or
// option no longer exists.
type AnswerDetail struct {
	QuestionID   string   `json:"questionId"`
	QuestionText string   `json:"questionText"`
	Type         string   `json:"type"`
	Answer       string   `json:"answer,omitempty"`
	Selected     []string `json:"selected,omitempty"`
}

type ResultDetail struct {
	ResultSummary
	Answers []AnswerDetail `json:"answers"`
}
