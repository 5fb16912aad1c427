package model

import "time"

type AssignmentStatus string

const (
	StatusPending    AssignmentStatus = "pending"
	StatusInProgress AssignmentStatus = "in_progress"
	StatusCompleted  AssignmentStatus = "completed"
)

// Assignment binds one test to one consultante and tracks its lifecycle:
// pending -> in_progress -> completed, with completed terminal.
type Assignment struct {
	ID              string           `json:"id"`
	TestID          string           `json:"testId"`
	ConsultantID    string           `json:"consultantId"`
	ConsultorID     string           `json:"consultorId"`
	AssignedDate    time.Time        `json:"assignedDate"`
	DueDate         *time.Time       `json:"dueDate,omitempty"`
	Status          AssignmentStatus `json:"status"`
	ProgressAnswers []Answer         `json:"progressAnswers,omitempty"`
	StartedAt       *time.Time       `json:"startedAt,omitempty"`
	LastSavedAt     *time.Time       `json:"lastSavedAt,omitempty"`
	CompletedAt     *time.Time       `json:"completedAt,omitempty"`
}

// Active reports whether the assignment still counts against the one
// active assignment per (test, consultant) invariant.
func (a Assignment) Active() bool { return a.Status != StatusCompleted }

// Expired reports whether the due date, if any, has passed.
func (a Assignment) Expired(now time.Time) bool {
	return a.DueDate != nil && now.After(*a.DueDate)
}

func (a Assignment) Clone() Assignment {
	a.ProgressAnswers = cloneAnswers(a.ProgressAnswers)
	a.DueDate = cloneTime(a.DueDate)
	a.StartedAt = cloneTime(a.StartedAt)
	a.LastSavedAt = cloneTime(a.LastSavedAt)
	a.CompletedAt = cloneTime(a.CompletedAt)
	return a
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	at := *t
	return &at
}
