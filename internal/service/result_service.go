package service

import (
	"github.com/dcastano/evalia/internal/dto"
	"github.com/dcastano/evalia/internal/model"
	"github.com/dcastano/evalia/internal/repository"
	"github.com/dcastano/evalia/internal/session"
)

type ResultService interface {
	ListFor(sess *session.Session) []dto.ResultSummary
	Get(sess *session.Session, id string) (*dto.ResultDetail, error)
	ByAssignment(sess *session.Session, assignmentID string) (*dto.ResultDetail, error)
}

type resultService struct {
	results repository.ResultRepository
	tests   repository.TestRepository
	users   repository.UserRepository
}

func NewResultService(
	results repository.ResultRepository,
	tests repository.TestRepository,
	users repository.UserRepository,
) ResultService {
	return &resultService{results: results, tests: tests, users: users}
}

func (s *resultService) ListFor(sess *session.Session) []dto.ResultSummary {
	var list []model.Result
	switch {
	case sess.IsAdmin():
		list = s.results.All()
	case sess.IsConsultor():
		for _, r := range s.results.All() {
			if u, ok := s.users.Get(r.ConsultantID); ok && u.ConsultorID == sess.User.ID {
				list = append(list, r)
			}
		}
	default:
		list = s.results.ByConsultant(sess.User.ID)
	}
	out := make([]dto.ResultSummary, 0, len(list))
	for _, r := range list {
		out = append(out, s.summary(r))
	}
	return out
}

func (s *resultService) Get(sess *session.Session, id string) (*dto.ResultDetail, error) {
	r, ok := s.results.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return s.detail(sess, r)
}

func (s *resultService) ByAssignment(sess *session.Session, assignmentID string) (*dto.ResultDetail, error) {
	r, ok := s.results.ByAssignment(assignmentID)
	if !ok {
		return nil, ErrNotFound
	}
	return s.detail(sess, r)
}

func (s *resultService) detail(sess *session.Session, r model.Result) (*dto.ResultDetail, error) {
	switch {
	case sess.IsAdmin():
	case sess.IsConsultor():
		u, ok := s.users.Get(r.ConsultantID)
		if !ok || u.ConsultorID != sess.User.ID {
			return nil, reject(CodeNotOwner, "result %q belongs to another consultor's consultante", r.ID)
		}
	default:
		if r.ConsultantID != sess.User.ID {
			return nil, reject(CodeNotOwner, "result %q belongs to another consultante", r.ID)
		}
	}

	test, hasTest := s.tests.Get(r.TestID)
	answers := make([]dto.AnswerDetail, 0, len(r.Answers))
	for _, a := range r.Answers {
		answers = append(answers, resolveAnswer(test, hasTest, a))
	}
	return &dto.ResultDetail{
		ResultSummary: s.summary(r),
		Answers:       answers,
	}, nil
}

// resolveAnswer maps stored ids back to human-readable texts. When the test,
// question or option was deleted after submission, the raw id is shown
// instead of failing the whole review.
func resolveAnswer(test model.Test, hasTest bool, a model.Answer) dto.AnswerDetail {
	detail := dto.AnswerDetail{
		QuestionID:   a.QuestionID,
		QuestionText: a.QuestionID,
		Type:         string(a.Type),
		Answer:       a.Answer,
		Selected:     append([]string(nil), a.Selected...),
	}
	if !hasTest {
		return detail
	}
	q, ok := test.QuestionByID(a.QuestionID)
	if !ok {
		return detail
	}
	detail.QuestionText = q.QuestionText

	if len(a.Selected) > 0 {
		texts := make(map[string]string, len(q.Options))
		for _, opt := range q.Options {
			texts[opt.ID] = opt.Text
		}
		resolved := make([]string, 0, len(a.Selected))
		for _, id := range a.Selected {
			if text, ok := texts[id]; ok {
				resolved = append(resolved, text)
			} else {
				resolved = append(resolved, id)
			}
		}
		detail.Selected = resolved
	}
	return detail
}

func (s *resultService) summary(r model.Result) dto.ResultSummary {
	sum := dto.ResultSummary{
		ID:           r.ID,
		AssignmentID: r.AssignmentID,
		TestID:       r.TestID,
		TestTitle:    r.TestID,
		ConsultantID: r.ConsultantID,
		Consultant:   r.ConsultantID,
		SubmittedAt:  r.SubmittedAt,
	}
	if t, ok := s.tests.Get(r.TestID); ok {
		sum.TestTitle = t.Title
	}
	if u, ok := s.users.Get(r.ConsultantID); ok {
		sum.Consultant = u.DisplayName()
	}
	return sum
}
