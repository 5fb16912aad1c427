package service

import (
	"testing"
	"time"

	"github.com/dcastano/evalia/internal/event"
	"github.com/dcastano/evalia/internal/model"
	"github.com/dcastano/evalia/internal/repository"
	"github.com/dcastano/evalia/internal/session"
	"github.com/dcastano/evalia/internal/store"
)

// env wires a full in-memory stack with no durable cache, enough for any
// service under test.
type env struct {
	store       *store.Store
	users       repository.UserRepository
	tests       repository.TestRepository
	assignments repository.AssignmentRepository
	results     repository.ResultRepository

	admin       model.User
	consultor   model.User
	consultante model.User
}

func newEnv(t *testing.T) *env {
	t.Helper()
	s := store.New(nil, event.NewBus())
	s.Initialize(store.EmptyDocument())

	e := &env{
		store:       s,
		users:       repository.NewUserRepository(s),
		tests:       repository.NewTestRepository(s),
		assignments: repository.NewAssignmentRepository(s),
		results:     repository.NewResultRepository(s),
	}
	e.admin = e.users.Create(model.User{
		Username: "admin", Password: "admin123", Role: model.RoleAdmin, FullName: "Admin",
	})
	e.consultor = e.users.Create(model.User{
		Username: "carla", Password: "secret", Role: model.RoleConsultor, FullName: "Carla Consultor",
	})
	e.consultante = e.users.Create(model.User{
		Username: "diego", Password: "secret", Role: model.RoleConsultante,
		FullName: "Diego Consultante", ConsultorID: e.consultor.ID,
	})
	return e
}

func (e *env) sessionFor(u model.User) *session.Session {
	return &session.Session{User: u.Sanitized()}
}

// seedTest stores a three-question test owned by the consultor.
func (e *env) seedTest() model.Test {
	return e.tests.Create(model.Test{
		Title:     "Intake Assessment",
		CreatedBy: e.consultor.ID,
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionOpen, QuestionText: "Describe your goals"},
			{ID: "q2", Type: model.QuestionClosed, QuestionText: "Pick one", Options: []model.Option{
				{ID: "opt_1", Text: "Yes"}, {ID: "opt_2", Text: "No"},
			}},
			{ID: "q3", Type: model.QuestionMultiple, QuestionText: "Pick some", Options: []model.Option{
				{ID: "opt_1", Text: "A"}, {ID: "opt_2", Text: "B"}, {ID: "opt_3", Text: "C"},
			}},
		},
	})
}

func (e *env) seedAssignment(testID string, due *time.Time) model.Assignment {
	return e.assignments.Create(model.Assignment{
		TestID:       testID,
		ConsultantID: e.consultante.ID,
		ConsultorID:  e.consultor.ID,
		DueDate:      due,
	})
}

func newConsultorUser(username string) model.User {
	return model.User{
		Username: username, Password: "secret",
		Role: model.RoleConsultor, FullName: username,
	}
}

func validAnswers() []model.Answer {
	return []model.Answer{
		{QuestionID: "q1", Type: model.QuestionOpen, Answer: "Improve focus"},
		{QuestionID: "q2", Type: model.QuestionClosed, Selected: []string{"opt_1"}},
		{QuestionID: "q3", Type: model.QuestionMultiple, Selected: []string{"opt_2", "opt_3"}},
	}
}
