package persistence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/evalia/internal/event"
	"github.com/dcastano/evalia/internal/model"
	"github.com/dcastano/evalia/internal/store"
)

func TestCacheFileRoundTrip(t *testing.T) {
	cache := NewCacheFile(t.TempDir())

	doc := store.EmptyDocument()
	doc.Users.Users = []model.User{{ID: "user_1", Username: "ana", Role: model.RoleAdmin}}
	require.NoError(t, cache.Save(doc))

	loaded, ok := cache.Load()
	require.True(t, ok)
	require.Len(t, loaded.Users.Users, 1)
	assert.Equal(t, "ana", loaded.Users.Users[0].Username)
}

func TestCacheFileMissing(t *testing.T) {
	cache := NewCacheFile(t.TempDir())
	_, ok := cache.Load()
	assert.False(t, ok)
}

func TestCacheFileCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CacheFilename), []byte("{nope"), 0o644))

	cache := NewCacheFile(dir)
	_, ok := cache.Load()
	assert.False(t, ok, "corrupt cache must be treated as absent")
}

func TestCacheFileClear(t *testing.T) {
	cache := NewCacheFile(t.TempDir())
	require.NoError(t, cache.Save(store.EmptyDocument()))
	require.NoError(t, cache.Clear())

	_, ok := cache.Load()
	assert.False(t, ok)
}

func bootstrapServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/users.json", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(store.UsersDocument{Users: []model.User{
			{ID: "user_1", Username: "admin", Role: model.RoleAdmin},
		}})
	})
	mux.HandleFunc("/tests.json", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(store.TestsDocument{Tests: []model.Test{
			{ID: "test_1", Title: "Intake"},
		}})
	})
	mux.HandleFunc("/assignments.json", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(store.AssignmentsDocument{})
	})
	mux.HandleFunc("/results.json", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(store.ResultsDocument{})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestBootstrapperLoad(t *testing.T) {
	srv := bootstrapServer(t)
	boot := NewBootstrapper(srv.URL, 5*time.Second)

	doc := boot.Load(context.Background())
	require.Len(t, doc.Users.Users, 1)
	assert.Equal(t, "admin", doc.Users.Users[0].Username)
	require.Len(t, doc.Tests.Tests, 1)
	assert.NotNil(t, doc.Assignments.Assignments)
	assert.NotNil(t, doc.Results.Results)
}

func TestBootstrapperFailureYieldsEmpty(t *testing.T) {
	boot := NewBootstrapper("http://127.0.0.1:1", 200*time.Millisecond)

	doc := boot.Load(context.Background())
	assert.Empty(t, doc.Users.Users)
	assert.NotNil(t, doc.Users.Users, "fallback must be empty but valid")
}

func TestManagerPrefersCache(t *testing.T) {
	srv := bootstrapServer(t)
	cache := NewCacheFile(t.TempDir())

	cached := store.EmptyDocument()
	cached.Users.Users = []model.User{{ID: "user_9", Username: "cached"}}
	require.NoError(t, cache.Save(cached))

	m := NewManager(cache, NewBootstrapper(srv.URL, 5*time.Second))
	doc := m.InitialDocument(context.Background())
	require.Len(t, doc.Users.Users, 1)
	assert.Equal(t, "cached", doc.Users.Users[0].Username)
}

func TestManagerBootstrapsColdStart(t *testing.T) {
	srv := bootstrapServer(t)
	m := NewManager(NewCacheFile(t.TempDir()), NewBootstrapper(srv.URL, 5*time.Second))

	doc := m.InitialDocument(context.Background())
	require.Len(t, doc.Users.Users, 1)
	assert.Equal(t, "admin", doc.Users.Users[0].Username)
}

func TestManagerReset(t *testing.T) {
	srv := bootstrapServer(t)
	cache := NewCacheFile(t.TempDir())
	m := NewManager(cache, NewBootstrapper(srv.URL, 5*time.Second))

	s := store.New(cache, event.NewBus())
	s.Initialize(store.EmptyDocument())
	s.Users().Insert(model.User{Username: "doomed"})

	require.NoError(t, m.Reset(context.Background(), s))

	users := s.Users().All()
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)

	// reset re-persists the bootstrap data
	loaded, ok := cache.Load()
	require.True(t, ok)
	assert.Len(t, loaded.Users.Users, 1)
}
