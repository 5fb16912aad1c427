package persistence

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/dcastano/evalia/internal/store"
)

// Manager wires the two-tier load policy: the durable cache is authoritative
// when present, otherwise the remote bootstrap is consulted, and a destructive
// reset clears the cache and reinitializes from remote.
type Manager struct {
	cache *CacheFile
	boot  *Bootstrapper
}

func NewManager(cache *CacheFile, boot *Bootstrapper) *Manager {
	return &Manager{cache: cache, boot: boot}
}

// InitialDocument resolves the store content at startup.
func (m *Manager) InitialDocument(ctx context.Context) store.Document {
	if doc, ok := m.cache.Load(); ok {
		log.Info().Str("path", m.cache.Path()).Msg("persistence: durable cache found, skipping remote bootstrap")
		return doc
	}
	return m.boot.Load(ctx)
}

// Reset clears the durable cache, re-bootstraps from the remote source and
// swaps the store content. The replaced store persists itself and fires the
// change signal.
func (m *Manager) Reset(ctx context.Context, s *store.Store) error {
	if err := m.cache.Clear(); err != nil {
		return err
	}
	s.ReplaceAll(m.boot.Load(ctx))
	return nil
}
