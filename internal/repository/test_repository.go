package repository

import (
	"time"

	"github.com/dcastano/evalia/internal/model"
	"github.com/dcastano/evalia/internal/store"
)

type TestRepository interface {
	Create(t model.Test) model.Test
	All() []model.Test
	Get(id string) (model.Test, bool)
	ByCreator(userID string) []model.Test
	Update(id string, patch TestPatch) (model.Test, bool)
	Remove(id string) bool
}

// TestPatch replaces the question list only when explicitly included, never
// through an accidental shallow merge.
type TestPatch struct {
	Title       *string
	Description *string
	Questions   *[]model.Question
	UpdatedAt   *time.Time
}

func (p TestPatch) apply(t *model.Test) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Questions != nil {
		t.Questions = *p.Questions
	}
	if p.UpdatedAt != nil {
		t.UpdatedAt = p.UpdatedAt
	}
}

type testRepository struct {
	table *store.Table[model.Test]
}

func NewTestRepository(s *store.Store) TestRepository {
	return &testRepository{table: s.Tests()}
}

func (r *testRepository) Create(t model.Test) model.Test { return r.table.Insert(t) }

func (r *testRepository) All() []model.Test { return r.table.All() }

func (r *testRepository) Get(id string) (model.Test, bool) { return r.table.Get(id) }

// ByCreator returns the tests authored by a consultor (or admin).
func (r *testRepository) ByCreator(userID string) []model.Test {
	return r.table.Find(func(t model.Test) bool { return t.CreatedBy == userID })
}

func (r *testRepository) Update(id string, patch TestPatch) (model.Test, bool) {
	return r.table.Update(id, patch.apply)
}

func (r *testRepository) Remove(id string) bool { return r.table.Remove(id) }
