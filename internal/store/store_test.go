package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/evalia/internal/event"
	"github.com/dcastano/evalia/internal/model"
)

type recordingPersister struct {
	saves []Document
}

func (p *recordingPersister) Save(doc Document) error {
	p.saves = append(p.saves, doc)
	return nil
}

func newTestStore(t *testing.T) (*Store, *recordingPersister, *event.Bus) {
	t.Helper()
	p := &recordingPersister{}
	bus := event.NewBus()
	s := New(p, bus)
	s.Initialize(EmptyDocument())
	return s, p, bus
}

func TestInsertAppliesDefaults(t *testing.T) {
	s, p, _ := newTestStore(t)

	u := s.Users().Insert(model.User{Username: "ana", Role: model.RoleAdmin})
	assert.Contains(t, u.ID, "user_")
	assert.False(t, u.CreatedAt.IsZero())

	a := s.Assignments().Insert(model.Assignment{TestID: "t1", ConsultantID: "c1"})
	assert.Contains(t, a.ID, "assign_")
	assert.Equal(t, model.StatusPending, a.Status)
	assert.False(t, a.AssignedDate.IsZero())

	// every mutation persisted synchronously
	require.Len(t, p.saves, 2)
	assert.Len(t, p.saves[1].Users.Users, 1)
	assert.Len(t, p.saves[1].Assignments.Assignments, 1)
}

func TestInsertKeepsProvidedID(t *testing.T) {
	s, _, _ := newTestStore(t)

	u := s.Users().Insert(model.User{ID: "user_fixed", Username: "bob"})
	assert.Equal(t, "user_fixed", u.ID)
}

func TestGetReturnsDeepCopy(t *testing.T) {
	s, _, _ := newTestStore(t)

	created := s.Tests().Insert(model.Test{
		Title:     "Intake",
		Questions: []model.Question{{ID: "q1", Type: model.QuestionOpen, QuestionText: "Why?"}},
	})

	got, ok := s.Tests().Get(created.ID)
	require.True(t, ok)
	got.Questions[0].QuestionText = "mutated"

	again, ok := s.Tests().Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Why?", again.Questions[0].QuestionText)
}

func TestUpdateMissIsNoop(t *testing.T) {
	s, p, _ := newTestStore(t)
	saves := len(p.saves)

	_, ok := s.Users().Update("user_missing", func(u *model.User) { u.Username = "x" })
	assert.False(t, ok)
	assert.Len(t, p.saves, saves, "a miss must not persist")
}

func TestUpdatePreservesID(t *testing.T) {
	s, _, _ := newTestStore(t)
	u := s.Users().Insert(model.User{Username: "ana"})

	updated, ok := s.Users().Update(u.ID, func(x *model.User) {
		x.ID = "user_forged"
		x.Username = "ana2"
	})
	require.True(t, ok)
	assert.Equal(t, u.ID, updated.ID)
	assert.Equal(t, "ana2", updated.Username)
}

func TestRemove(t *testing.T) {
	s, _, _ := newTestStore(t)
	u := s.Users().Insert(model.User{Username: "ana"})

	assert.True(t, s.Users().Remove(u.ID))
	assert.False(t, s.Users().Remove(u.ID))
	assert.Equal(t, 0, s.Users().Len())
}

func TestMutationPublishesChange(t *testing.T) {
	s, _, bus := newTestStore(t)

	changes := make(chan event.Change, 1)
	cancel := bus.Subscribe(event.StoreChanged, func(data interface{}) {
		if c, ok := data.(event.Change); ok {
			changes <- c
		}
	})
	defer cancel()

	s.Users().Insert(model.User{Username: "ana"})

	select {
	case <-changes:
	case <-time.After(time.Second):
		t.Fatal("no change notification after insert")
	}
}

func TestInitializeIsSilent(t *testing.T) {
	p := &recordingPersister{}
	bus := event.NewBus()
	s := New(p, bus)

	doc := EmptyDocument()
	doc.Users.Users = []model.User{{ID: "user_1", Username: "ana"}}
	s.Initialize(doc)

	assert.Empty(t, p.saves, "initialize must not write back")
	assert.Equal(t, 1, s.Users().Len())
}

func TestReplaceAllPersists(t *testing.T) {
	s, p, _ := newTestStore(t)
	s.Users().Insert(model.User{Username: "ana"})

	s.ReplaceAll(EmptyDocument())
	assert.Equal(t, 0, s.Users().Len())
	assert.NotEmpty(t, p.saves)
	assert.Empty(t, p.saves[len(p.saves)-1].Users.Users)
}

func TestParseCollection(t *testing.T) {
	for _, name := range []string{"users", "tests", "assignments", "results"} {
		c, err := ParseCollection(name)
		assert.NoError(t, err)
		assert.Equal(t, name+".json", c.Filename())
	}

	_, err := ParseCollection("sessions")
	assert.ErrorIs(t, err, ErrInvalidCollection)
}

func TestDocumentFor(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.Users().Insert(model.User{Username: "ana"})

	doc, err := s.DocumentFor(CollectionUsers)
	require.NoError(t, err)
	users, ok := doc.(UsersDocument)
	require.True(t, ok)
	assert.Len(t, users.Users, 1)
}
