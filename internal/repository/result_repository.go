package repository

import (
	"github.com/dcastano/evalia/internal/model"
	"github.com/dcastano/evalia/internal/store"
)

type ResultRepository interface {
	Create(res model.Result) model.Result
	All() []model.Result
	Get(id string) (model.Result, bool)
	ByAssignment(assignmentID string) (model.Result, bool)
	ByConsultant(consultantID string) []model.Result
	Remove(id string) bool
}

type resultRepository struct {
	table *store.Table[model.Result]
}

func NewResultRepository(s *store.Store) ResultRepository {
	return &resultRepository{table: s.Results()}
}

func (r *resultRepository) Create(res model.Result) model.Result { return r.table.Insert(res) }

func (r *resultRepository) All() []model.Result { return r.table.All() }

func (r *resultRepository) Get(id string) (model.Result, bool) { return r.table.Get(id) }

// ByAssignment returns the single result of a completed assignment, if any.
func (r *resultRepository) ByAssignment(assignmentID string) (model.Result, bool) {
	matches := r.table.Find(func(res model.Result) bool { return res.AssignmentID == assignmentID })
	if len(matches) == 0 {
		return model.Result{}, false
	}
	return matches[0], true
}

func (r *resultRepository) ByConsultant(consultantID string) []model.Result {
	return r.table.Find(func(res model.Result) bool { return res.ConsultantID == consultantID })
}

func (r *resultRepository) Remove(id string) bool { return r.table.Remove(id) }
