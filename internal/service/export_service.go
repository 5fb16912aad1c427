package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"github.com/dcastano/evalia/config"
	"github.com/dcastano/evalia/internal/persistence"
	"github.com/dcastano/evalia/internal/store"
)

// FullExportFilename is the single-file export containing every collection.
const FullExportFilename = "appdata.json"

var ErrBucketNotConfigured = errors.New("bucket export is not configured")

type ExportService interface {
	// Collection renders one collection as a standalone JSON document.
	Collection(name string) (string, []byte, error)
	// Full renders the whole store in the durable cache format.
	Full() ([]byte, error)
	// ToDirectory writes one file per collection into dir, collecting
	// per-file failures into a single error.
	ToDirectory(dir string) error
	// ToBucket uploads every collection plus the full document to the
	// configured MinIO bucket and returns the object names written.
	ToBucket(ctx context.Context) ([]string, error)
	// Reset wipes the durable cache and reloads the store from the
	// bootstrap source.
	Reset(ctx context.Context) error
}

type exportService struct {
	store   *store.Store
	manager *persistence.Manager
	cfg     config.Export
	client  *minio.Client
}

func NewExportService(s *store.Store, m *persistence.Manager, cfg *config.Config) (ExportService, error) {
	svc := &exportService{store: s, manager: m, cfg: cfg.Export}
	if cfg.Export.MinioEndpoint != "" {
		client, err := minio.New(cfg.Export.MinioEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Export.MinioAccessKey, cfg.Export.MinioSecretKey, ""),
			Secure: cfg.Export.MinioUseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		svc.client = client
	}
	return svc, nil
}

func (s *exportService) Collection(name string) (string, []byte, error) {
	c, err := store.ParseCollection(name)
	if err != nil {
		return "", nil, err
	}
	doc, err := s.store.DocumentFor(c)
	if err != nil {
		return "", nil, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", nil, err
	}
	return c.Filename(), data, nil
}

func (s *exportService) Full() ([]byte, error) {
	return json.MarshalIndent(s.store.Snapshot(), "", "  ")
}

func (s *exportService) ToDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	var errs []error
	for _, c := range store.Collections() {
		filename, data, err := s.Collection(string(c))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c, err))
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	log.Info().Str("dir", dir).Msg("collections exported to directory")
	return nil
}

func (s *exportService) ToBucket(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrBucketNotConfigured
	}

	objects := make(map[string][]byte, len(store.Collections())+1)
	for _, c := range store.Collections() {
		filename, data, err := s.Collection(string(c))
		if err != nil {
			return nil, err
		}
		objects[filename] = data
	}
	full, err := s.Full()
	if err != nil {
		return nil, err
	}
	objects[FullExportFilename] = full

	prefix := time.Now().UTC().Format("2006-01-02T15-04-05")
	written := make([]string, 0, len(objects))
	for filename, data := range objects {
		name := prefix + "/" + filename
		_, err := s.client.PutObject(ctx, s.cfg.MinioBucket, name,
			bytes.NewReader(data), int64(len(data)),
			minio.PutObjectOptions{ContentType: "application/json"})
		if err != nil {
			return written, fmt.Errorf("upload %s: %w", name, err)
		}
		written = append(written, name)
	}
	log.Info().Str("bucket", s.cfg.MinioBucket).Int("objects", len(written)).
		Msg("collections exported to bucket")
	return written, nil
}

func (s *exportService) Reset(ctx context.Context) error {
	if err := s.manager.Reset(ctx, s.store); err != nil {
		return err
	}
	log.Warn().Msg("store reset to bootstrap data")
	return nil
}
