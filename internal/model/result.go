package model

import "time"

// Result is the immutable record of a completed assignment's answers.
// Exactly one result exists per completed assignment.
type Result struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignmentId"`
	TestID       string    `json:"testId"`
	ConsultantID string    `json:"consultantId"`
	SubmittedAt  time.Time `json:"submittedAt"`
	Answers      []Answer  `json:"answers"`
}

func (r Result) Clone() Result {
	r.Answers = cloneAnswers(r.Answers)
	return r
}
