package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/dcastano/evalia/internal/store"
)

// CacheFilename is the well-known durable cache artifact, one JSON blob
// holding all four collections.
const CacheFilename = "appdata.json"

// CacheFile is the durable local mirror of the store. Once present and
// parseable it is authoritative over the remote bootstrap.
type CacheFile struct {
	path string
}

func NewCacheFile(dataDir string) *CacheFile {
	return &CacheFile{path: filepath.Join(dataDir, CacheFilename)}
}

func (c *CacheFile) Path() string { return c.path }

// Load reads the cache. ok is false when the file is missing or unparseable;
// a corrupt cache is treated the same as an absent one.
func (c *CacheFile) Load() (store.Document, bool) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return store.Document{}, false
	}
	var doc store.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Warn().Err(err).Str("path", c.path).Msg("cache: unparseable durable cache, ignoring")
		return store.Document{}, false
	}
	return doc, true
}

// Save serializes the whole store into the cache file. Implements
// store.Persister, so every mutation writes through here before returning.
func (c *CacheFile) Save(doc store.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("cache: encode store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("cache: create data dir: %w", err)
	}
	if err := os.WriteFile(c.path, raw, 0o644); err != nil {
		return fmt.Errorf("cache: write %s: %w", c.path, err)
	}
	return nil
}

// Clear removes the durable cache; the next startup bootstraps from remote.
func (c *CacheFile) Clear() error {
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cache: clear %s: %w", c.path, err)
	}
	return nil
}
