package service

import (
	"errors"
	"fmt"
)

// ErrNotFound is the recoverable miss: callers branch on it, controllers map
// it to 404.
var ErrNotFound = errors.New("not found")

// Rejection codes, stable for clients.
const (
	CodeInvalidCredentials  = "invalid_credentials"
	CodeDuplicateUsername   = "duplicate_username"
	CodeUnknownConsultor    = "unknown_consultor"
	CodeInvalidRole         = "invalid_role"
	CodeInvalidTest         = "invalid_test"
	CodeInvalidImage        = "invalid_image"
	CodeNotOwner            = "not_owner"
	CodeDuplicateAssignment = "duplicate_assignment"
	CodeAssignmentExpired   = "assignment_expired"
	CodeAssignmentCompleted = "assignment_completed"
	CodeInvalidSubmission   = "invalid_submission"
)

// Rejection is a structured, recoverable domain validation failure: a
// machine-readable code plus a human-readable reason. It is reported, never
// panicked, and controllers map it to a 4xx response.
type Rejection struct {
	Code   string
	Reason string
}

func (r *Rejection) Error() string { return r.Reason }

func reject(code, format string, args ...interface{}) *Rejection {
	return &Rejection{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// AsRejection unwraps err into a Rejection, if it is one.
func AsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
