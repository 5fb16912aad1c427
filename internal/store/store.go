package store

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dcastano/evalia/internal/event"
	"github.com/dcastano/evalia/internal/model"
)

// Collection names the four record sets the store owns. Name-addressed
// operations (export endpoints) go through ParseCollection so an unknown name
// fails as a structural error instead of silently matching nothing.
type Collection string

const (
	CollectionUsers       Collection = "users"
	CollectionTests       Collection = "tests"
	CollectionAssignments Collection = "assignments"
	CollectionResults     Collection = "results"
)

var ErrInvalidCollection = errors.New("invalid collection")

// Collections lists every collection in a stable order.
func Collections() []Collection {
	return []Collection{CollectionUsers, CollectionTests, CollectionAssignments, CollectionResults}
}

func ParseCollection(name string) (Collection, error) {
	switch Collection(name) {
	case CollectionUsers, CollectionTests, CollectionAssignments, CollectionResults:
		return Collection(name), nil
	}
	return "", ErrInvalidCollection
}

// Filename is the fixed export filename for the collection.
func (c Collection) Filename() string { return string(c) + ".json" }

// Persister mirrors every mutation into the durable cache. The write is
// synchronous relative to the mutating call's return.
type Persister interface {
	Save(doc Document) error
}

// Store exclusively owns the four collections. Every read hands out deep
// copies, never references into the internal slices. A single RWMutex keeps
// each mutation atomic: mutate, snapshot, persist, notify, then the next
// operation may run.
type Store struct {
	mu        sync.RWMutex
	persister Persister
	bus       *event.Bus

	users       *Table[model.User]
	tests       *Table[model.Test]
	assignments *Table[model.Assignment]
	results     *Table[model.Result]
}

func New(persister Persister, bus *event.Bus) *Store {
	s := &Store{persister: persister, bus: bus}
	s.users = &Table[model.User]{
		store:  s,
		name:   CollectionUsers,
		prefix: "user",
		clone:  model.User.Clone,
		id:     func(u *model.User) *string { return &u.ID },
		defaults: func(u *model.User, now time.Time) {
			if u.CreatedAt.IsZero() {
				u.CreatedAt = now
			}
		},
	}
	s.tests = &Table[model.Test]{
		store:  s,
		name:   CollectionTests,
		prefix: "test",
		clone:  model.Test.Clone,
		id:     func(t *model.Test) *string { return &t.ID },
		defaults: func(t *model.Test, now time.Time) {
			if t.CreatedAt.IsZero() {
				t.CreatedAt = now
			}
			if t.Questions == nil {
				t.Questions = []model.Question{}
			}
		},
	}
	s.assignments = &Table[model.Assignment]{
		store:  s,
		name:   CollectionAssignments,
		prefix: "assign",
		clone:  model.Assignment.Clone,
		id:     func(a *model.Assignment) *string { return &a.ID },
		defaults: func(a *model.Assignment, now time.Time) {
			if a.AssignedDate.IsZero() {
				a.AssignedDate = now
			}
			if a.Status == "" {
				a.Status = model.StatusPending
			}
		},
	}
	s.results = &Table[model.Result]{
		store:  s,
		name:   CollectionResults,
		prefix: "result",
		clone:  model.Result.Clone,
		id:     func(r *model.Result) *string { return &r.ID },
		defaults: func(r *model.Result, now time.Time) {
			if r.SubmittedAt.IsZero() {
				r.SubmittedAt = now
			}
		},
	}
	return s
}

func (s *Store) Users() *Table[model.User]             { return s.users }
func (s *Store) Tests() *Table[model.Test]             { return s.tests }
func (s *Store) Assignments() *Table[model.Assignment] { return s.assignments }
func (s *Store) Results() *Table[model.Result]         { return s.results }

// Initialize loads the four collections from a document without persisting
// or notifying; it is the startup half of the store lifecycle.
func (s *Store) Initialize(doc Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(doc)
}

// ReplaceAll swaps the entire store content, persists and notifies. Used by
// the destructive reset.
func (s *Store) ReplaceAll(doc Document) {
	s.mu.Lock()
	s.loadLocked(doc)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	s.committed(snapshot)
}

func (s *Store) loadLocked(doc Document) {
	s.users.recs = append([]model.User{}, doc.Users.Users...)
	s.tests.recs = append([]model.Test{}, doc.Tests.Tests...)
	s.assignments.recs = append([]model.Assignment{}, doc.Assignments.Assignments...)
	s.results.recs = append([]model.Result{}, doc.Results.Results...)
}

// Snapshot returns a deep copy of the whole store in cache-document shape.
func (s *Store) Snapshot() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Document {
	return Document{
		Users:       UsersDocument{Users: cloneAll(s.users)},
		Tests:       TestsDocument{Tests: cloneAll(s.tests)},
		Assignments: AssignmentsDocument{Assignments: cloneAll(s.assignments)},
		Results:     ResultsDocument{Results: cloneAll(s.results)},
	}
}

// DocumentFor returns the single-collection document used by per-collection
// exports, in bootstrap shape.
func (s *Store) DocumentFor(c Collection) (interface{}, error) {
	snapshot := s.Snapshot()
	switch c {
	case CollectionUsers:
		return snapshot.Users, nil
	case CollectionTests:
		return snapshot.Tests, nil
	case CollectionAssignments:
		return snapshot.Assignments, nil
	case CollectionResults:
		return snapshot.Results, nil
	}
	return nil, ErrInvalidCollection
}

// committed runs after a mutation has been applied in memory: write-through
// to the durable cache, then fire the change signal. A cache write failure is
// logged but does not undo the in-memory mutation.
func (s *Store) committed(doc Document) {
	if s.persister != nil {
		if err := s.persister.Save(doc); err != nil {
			log.Error().Err(err).Msg("store: durable cache write failed")
		}
	}
	if s.bus != nil {
		s.bus.Publish(event.StoreChanged, event.Change{At: time.Now().UTC()})
	}
}

// Table holds one ordered collection. All methods hand out clones; the slice
// and its records never escape.
type Table[T any] struct {
	store    *Store
	name     Collection
	prefix   string
	clone    func(T) T
	id       func(*T) *string
	defaults func(*T, time.Time)
	recs     []T
}

func (t *Table[T]) Name() Collection { return t.name }

// Insert appends a record, assigning an id and collection defaults when
// absent, and returns the stored copy.
func (t *Table[T]) Insert(rec T) T {
	s := t.store
	s.mu.Lock()
	if idField := t.id(&rec); *idField == "" {
		*idField = NewID(t.prefix)
	}
	t.defaults(&rec, time.Now().UTC())
	t.recs = append(t.recs, t.clone(rec))
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	s.committed(snapshot)
	return rec
}

// All returns every record in insertion order.
func (t *Table[T]) All() []T {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return cloneAll(t)
}

// Get returns the record with the given id, or ok=false on a miss.
func (t *Table[T]) Get(id string) (T, bool) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if idx := t.indexLocked(id); idx >= 0 {
		return t.clone(t.recs[idx]), true
	}
	var zero T
	return zero, false
}

// Find returns every record satisfying pred, in store order.
func (t *Table[T]) Find(pred func(T) bool) []T {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	out := []T{}
	for _, rec := range t.recs {
		if pred(t.clone(rec)) {
			out = append(out, t.clone(rec))
		}
	}
	return out
}

// Update applies a field-by-field patch to the stored record. The id cannot
// be changed by a patch. A miss returns ok=false and performs no cache write.
func (t *Table[T]) Update(id string, apply func(*T)) (T, bool) {
	s := t.store
	s.mu.Lock()
	idx := t.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		var zero T
		return zero, false
	}
	rec := t.clone(t.recs[idx])
	apply(&rec)
	*t.id(&rec) = id
	t.recs[idx] = t.clone(rec)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	s.committed(snapshot)
	return rec, true
}

// Remove deletes the record with the given id. A miss returns false and is
// not an error.
func (t *Table[T]) Remove(id string) bool {
	s := t.store
	s.mu.Lock()
	idx := t.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	t.recs = append(t.recs[:idx], t.recs[idx+1:]...)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	s.committed(snapshot)
	return true
}

func (t *Table[T]) Len() int {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return len(t.recs)
}

func (t *Table[T]) indexLocked(id string) int {
	for i := range t.recs {
		if *t.id(&t.recs[i]) == id {
			return i
		}
	}
	return -1
}

func cloneAll[T any](t *Table[T]) []T {
	out := make([]T, 0, len(t.recs))
	for _, rec := range t.recs {
		out = append(out, t.clone(rec))
	}
	return out
}
