package service

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dcastano/evalia/internal/dto"
	"github.com/dcastano/evalia/internal/model"
	"github.com/dcastano/evalia/internal/repository"
	"github.com/dcastano/evalia/internal/session"
)

type AssignmentService interface {
	Create(sess *session.Session, req dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error)
	ListFor(sess *session.Session) []dto.AssignmentResponse
	Get(sess *session.Session, id string) (*dto.AssignmentResponse, error)
	Start(sess *session.Session, id string) (*dto.StartTestResponse, error)
	SaveProgress(sess *session.Session, id string, req dto.SaveProgressRequest) (*dto.AssignmentResponse, error)
	Submit(sess *session.Session, id string, req dto.SubmitRequest) (*dto.ResultSummary, error)
}

type assignmentService struct {
	// mu serializes the lifecycle mutations: each one is a precondition
	// check followed by one or more store writes, and the store lock only
	// covers a single operation at a time.
	mu sync.Mutex

	assignments repository.AssignmentRepository
	tests       repository.TestRepository
	users       repository.UserRepository
	results     repository.ResultRepository
}

func NewAssignmentService(
	assignments repository.AssignmentRepository,
	tests repository.TestRepository,
	users repository.UserRepository,
	results repository.ResultRepository,
) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		tests:       tests,
		users:       users,
		results:     results,
	}
}

func (s *assignmentService) Create(sess *session.Session, req dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	test, ok := s.tests.Get(req.TestID)
	if !ok {
		return nil, reject(CodeInvalidTest, "test %q does not exist", req.TestID)
	}
	consultant, ok := s.users.Get(req.ConsultantID)
	if !ok || consultant.Role != model.RoleConsultante {
		return nil, reject(CodeInvalidRole, "user %q is not a consultante", req.ConsultantID)
	}
	if !sess.IsAdmin() && consultant.ConsultorID != sess.User.ID {
		return nil, reject(CodeNotOwner, "consultante %q is not assigned to you", consultant.ID)
	}
	if _, exists := s.assignments.ActiveFor(req.TestID, req.ConsultantID); exists {
		return nil, reject(CodeDuplicateAssignment,
			"consultante %q already has an active assignment for test %q", req.ConsultantID, req.TestID)
	}

	consultorID := sess.User.ID
	if sess.IsAdmin() {
		switch {
		case consultant.ConsultorID != "":
			consultorID = consultant.ConsultorID
		case test.CreatedBy != "":
			consultorID = test.CreatedBy
		}
	}

	created := s.assignments.Create(model.Assignment{
		TestID:       req.TestID,
		ConsultantID: req.ConsultantID,
		ConsultorID:  consultorID,
		DueDate:      req.DueDate,
	})
	log.Info().Str("assignment_id", created.ID).Str("test_id", created.TestID).
		Str("consultant_id", created.ConsultantID).Msg("assignment created")

	resp := s.assignmentResponse(created)
	return &resp, nil
}

func (s *assignmentService) ListFor(sess *session.Session) []dto.AssignmentResponse {
	var list []model.Assignment
	switch {
	case sess.IsAdmin():
		list = s.assignments.All()
	case sess.IsConsultor():
		list = s.assignments.ByConsultor(sess.User.ID)
	default:
		list = s.assignments.ByConsultant(sess.User.ID)
	}
	out := make([]dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, s.assignmentResponse(a))
	}
	return out
}

func (s *assignmentService) Get(sess *session.Session, id string) (*dto.AssignmentResponse, error) {
	a, err := s.visibleAssignment(sess, id)
	if err != nil {
		return nil, err
	}
	resp := s.assignmentResponse(a)
	return &resp, nil
}

// Start transitions a pending assignment to in_progress and hands back the
// test plus any autosaved progress. Resuming an in_progress assignment is the
// same call; a completed one is terminal and an overdue one is rejected
// without changing its status.
func (s *assignmentService) Start(sess *session.Session, id string) (*dto.StartTestResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.ownAssignment(sess, id)
	if err != nil {
		return nil, err
	}
	if a.Status == model.StatusCompleted {
		return nil, reject(CodeAssignmentCompleted, "assignment %q is already completed", id)
	}
	if a.Expired(time.Now()) {
		return nil, reject(CodeAssignmentExpired, "assignment %q is past its due date", id)
	}
	test, ok := s.tests.Get(a.TestID)
	if !ok {
		return nil, reject(CodeInvalidTest, "test %q no longer exists", a.TestID)
	}

	if a.Status == model.StatusPending {
		now := time.Now().UTC()
		status := model.StatusInProgress
		a, _ = s.assignments.Update(id, repository.AssignmentPatch{
			Status:    &status,
			StartedAt: &now,
		})
		log.Info().Str("assignment_id", id).Msg("assignment started")
	}

	testResp, err := testResponse(test)
	if err != nil {
		return nil, err
	}
	return &dto.StartTestResponse{
		Assignment: s.assignmentResponse(a),
		Test:       *testResp,
		Progress:   answersToDTO(a.ProgressAnswers),
	}, nil
}

// SaveProgress replaces the autosaved answers wholesale. Saving on a still
// pending assignment starts it, including the start timestamp.
func (s *assignmentService) SaveProgress(sess *session.Session, id string, req dto.SaveProgressRequest) (*dto.AssignmentResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.ownAssignment(sess, id)
	if err != nil {
		return nil, err
	}
	if a.Status == model.StatusCompleted {
		return nil, reject(CodeAssignmentCompleted, "assignment %q is already completed", id)
	}

	now := time.Now().UTC()
	status := model.StatusInProgress
	answers := answersFromDTO(req.Answers)
	patch := repository.AssignmentPatch{
		Status:          &status,
		ProgressAnswers: &answers,
		LastSavedAt:     &now,
	}
	if a.Status == model.StatusPending {
		patch.StartedAt = &now
	}
	updated, _ := s.assignments.Update(id, patch)
	resp := s.assignmentResponse(updated)
	return &resp, nil
}

// Submit validates the answers against the test, records a result and closes
// the assignment. The result is created before the assignment flips to
// completed so a crash in between leaves a retryable submission rather than a
// completed assignment without a result.
func (s *assignmentService) Submit(sess *session.Session, id string, req dto.SubmitRequest) (*dto.ResultSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.ownAssignment(sess, id)
	if err != nil {
		return nil, err
	}
	if a.Status == model.StatusCompleted {
		return nil, reject(CodeAssignmentCompleted, "assignment %q is already completed", id)
	}
	test, ok := s.tests.Get(a.TestID)
	if !ok {
		return nil, reject(CodeInvalidTest, "test %q no longer exists", a.TestID)
	}

	answers := answersFromDTO(req.Answers)
	if err := ValidateSubmission(test, answers); err != nil {
		return nil, err
	}

	result := s.results.Create(model.Result{
		AssignmentID: a.ID,
		TestID:       a.TestID,
		ConsultantID: a.ConsultantID,
		Answers:      answers,
	})

	now := time.Now().UTC()
	status := model.StatusCompleted
	empty := []model.Answer{}
	s.assignments.Update(id, repository.AssignmentPatch{
		Status:          &status,
		ProgressAnswers: &empty,
		CompletedAt:     &now,
	})
	log.Info().Str("assignment_id", id).Str("result_id", result.ID).Msg("assignment submitted")

	return &dto.ResultSummary{
		ID:           result.ID,
		AssignmentID: result.AssignmentID,
		TestID:       result.TestID,
		TestTitle:    test.Title,
		ConsultantID: result.ConsultantID,
		Consultant:   sess.User.DisplayName(),
		SubmittedAt:  result.SubmittedAt,
	}, nil
}

// ownAssignment fetches an assignment that belongs to the calling consultante.
func (s *assignmentService) ownAssignment(sess *session.Session, id string) (model.Assignment, error) {
	a, ok := s.assignments.Get(id)
	if !ok {
		return model.Assignment{}, ErrNotFound
	}
	if a.ConsultantID != sess.User.ID {
		return model.Assignment{}, reject(CodeNotOwner, "assignment %q belongs to another consultante", id)
	}
	return a, nil
}

// visibleAssignment fetches an assignment the caller is allowed to read:
// admins see all, consultores their own consultantes', consultantes theirs.
func (s *assignmentService) visibleAssignment(sess *session.Session, id string) (model.Assignment, error) {
	a, ok := s.assignments.Get(id)
	if !ok {
		return model.Assignment{}, ErrNotFound
	}
	switch {
	case sess.IsAdmin():
	case sess.IsConsultor():
		if a.ConsultorID != sess.User.ID {
			return model.Assignment{}, reject(CodeNotOwner, "assignment %q belongs to another consultor", id)
		}
	default:
		if a.ConsultantID != sess.User.ID {
			return model.Assignment{}, reject(CodeNotOwner, "assignment %q belongs to another consultante", id)
		}
	}
	return a, nil
}

func (s *assignmentService) assignmentResponse(a model.Assignment) dto.AssignmentResponse {
	resp := dto.AssignmentResponse{
		ID:           a.ID,
		TestID:       a.TestID,
		TestTitle:    a.TestID,
		ConsultantID: a.ConsultantID,
		Consultant:   a.ConsultantID,
		ConsultorID:  a.ConsultorID,
		AssignedDate: a.AssignedDate,
		DueDate:      a.DueDate,
		Status:       string(a.Status),
		StartedAt:    a.StartedAt,
		LastSavedAt:  a.LastSavedAt,
		CompletedAt:  a.CompletedAt,
	}
	if t, ok := s.tests.Get(a.TestID); ok {
		resp.TestTitle = t.Title
	}
	if u, ok := s.users.Get(a.ConsultantID); ok {
		resp.Consultant = u.DisplayName()
	}
	return resp
}
