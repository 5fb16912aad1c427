package repository

import (
	"time"

	"github.com/dcastano/evalia/internal/model"
	"github.com/dcastano/evalia/internal/store"
)

type AssignmentRepository interface {
	Create(a model.Assignment) model.Assignment
	All() []model.Assignment
	Get(id string) (model.Assignment, bool)
	ByConsultant(consultantID string) []model.Assignment
	ByConsultor(consultorID string) []model.Assignment
	ActiveFor(testID, consultantID string) (model.Assignment, bool)
	CountActiveFor(consultantID, consultorID string) int
	Update(id string, patch AssignmentPatch) (model.Assignment, bool)
	Remove(id string) bool
}

// AssignmentPatch covers the lifecycle transitions: status moves, progress
// autosave and the completion bookkeeping.
type AssignmentPatch struct {
	Status          *model.AssignmentStatus
	ProgressAnswers *[]model.Answer
	StartedAt       *time.Time
	LastSavedAt     *time.Time
	CompletedAt     *time.Time
}

func (p AssignmentPatch) apply(a *model.Assignment) {
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.ProgressAnswers != nil {
		a.ProgressAnswers = *p.ProgressAnswers
	}
	if p.StartedAt != nil {
		a.StartedAt = p.StartedAt
	}
	if p.LastSavedAt != nil {
		a.LastSavedAt = p.LastSavedAt
	}
	if p.CompletedAt != nil {
		a.CompletedAt = p.CompletedAt
	}
}

type assignmentRepository struct {
	table *store.Table[model.Assignment]
}

func NewAssignmentRepository(s *store.Store) AssignmentRepository {
	return &assignmentRepository{table: s.Assignments()}
}

func (r *assignmentRepository) Create(a model.Assignment) model.Assignment {
	return r.table.Insert(a)
}

func (r *assignmentRepository) All() []model.Assignment { return r.table.All() }

func (r *assignmentRepository) Get(id string) (model.Assignment, bool) { return r.table.Get(id) }

// ByConsultant returns the assignments targeted at a consultante.
func (r *assignmentRepository) ByConsultant(consultantID string) []model.Assignment {
	return r.table.Find(func(a model.Assignment) bool { return a.ConsultantID == consultantID })
}

// ByConsultor returns the assignments owned by a consultor.
func (r *assignmentRepository) ByConsultor(consultorID string) []model.Assignment {
	return r.table.Find(func(a model.Assignment) bool { return a.ConsultorID == consultorID })
}

// ActiveFor returns the non-completed assignment for a (test, consultant)
// pair; at most one may exist at any time.
func (r *assignmentRepository) ActiveFor(testID, consultantID string) (model.Assignment, bool) {
	matches := r.table.Find(func(a model.Assignment) bool {
		return a.TestID == testID && a.ConsultantID == consultantID && a.Active()
	})
	if len(matches) == 0 {
		return model.Assignment{}, false
	}
	return matches[0], true
}

func (r *assignmentRepository) CountActiveFor(consultantID, consultorID string) int {
	return len(r.table.Find(func(a model.Assignment) bool {
		return a.ConsultantID == consultantID && a.ConsultorID == consultorID && a.Active()
	}))
}

func (r *assignmentRepository) Update(id string, patch AssignmentPatch) (model.Assignment, bool) {
	return r.table.Update(id, patch.apply)
}

func (r *assignmentRepository) Remove(id string) bool { return r.table.Remove(id) }
