package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dcastano/evalia/internal/model"
	"github.com/dcastano/evalia/internal/store"
)

// Bootstrapper assembles the initial store from four independent JSON
// documents served under a common base URL, one per collection.
type Bootstrapper struct {
	baseURL string
	client  *http.Client
}

func NewBootstrapper(baseURL string, timeout time.Duration) *Bootstrapper {
	return &Bootstrapper{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Load fetches all four collection documents. Any fetch or parse failure
// degrades to an empty-but-structurally-valid document for every collection;
// a partially initialized store is never returned.
func (b *Bootstrapper) Load(ctx context.Context) store.Document {
	if b.baseURL == "" {
		log.Info().Msg("bootstrap: no remote source configured, starting empty")
		return store.EmptyDocument()
	}

	var doc store.Document
	err := func() error {
		if err := b.fetch(ctx, store.CollectionUsers, &doc.Users); err != nil {
			return err
		}
		if err := b.fetch(ctx, store.CollectionTests, &doc.Tests); err != nil {
			return err
		}
		if err := b.fetch(ctx, store.CollectionAssignments, &doc.Assignments); err != nil {
			return err
		}
		return b.fetch(ctx, store.CollectionResults, &doc.Results)
	}()
	if err != nil {
		log.Warn().Err(err).Str("base_url", b.baseURL).Msg("bootstrap: remote load failed, falling back to empty store")
		return store.EmptyDocument()
	}

	normalize(&doc)
	log.Info().
		Int("users", len(doc.Users.Users)).
		Int("tests", len(doc.Tests.Tests)).
		Int("assignments", len(doc.Assignments.Assignments)).
		Int("results", len(doc.Results.Results)).
		Msg("bootstrap: loaded remote documents")
	return doc
}

func (b *Bootstrapper) fetch(ctx context.Context, c store.Collection, out interface{}) error {
	url := b.baseURL + "/" + c.Filename()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("bootstrap: build request for %s: %w", c, err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("bootstrap: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bootstrap: fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("bootstrap: read %s: %w", url, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("bootstrap: parse %s: %w", url, err)
	}
	return nil
}

// normalize replaces nil record slices with empty ones so a document with a
// missing array still yields a structurally valid store.
func normalize(doc *store.Document) {
	if doc.Users.Users == nil {
		doc.Users.Users = []model.User{}
	}
	if doc.Tests.Tests == nil {
		doc.Tests.Tests = []model.Test{}
	}
	if doc.Assignments.Assignments == nil {
		doc.Assignments.Assignments = []model.Assignment{}
	}
	if doc.Results.Results == nil {
		doc.Results.Results = []model.Result{}
	}
}
