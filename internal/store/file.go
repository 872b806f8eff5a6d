package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/pkg/apperror"
)

// FileStore persists the document as a single JSON file. The file is
// re-read on every operation; nothing is cached across calls. Writes go to
// a temp file in the same directory and are renamed into place, so a failed
// write never truncates the current document.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore creates the parent directory if needed and validates that
// any existing document parses. A missing file is not an error; the first
// Update creates it.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, apperror.Wrap(err, apperror.KindStoreUnavailable, "data store unavailable")
	}

	s := &FileStore{path: path}
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) View(ctx context.Context, fn func(doc *domain.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	return fn(doc)
}

func (s *FileStore) Update(ctx context.Context, fn func(doc *domain.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

func (s *FileStore) Close() {}

func (s *FileStore) load() (*domain.Document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewDocument(), nil
		}
		return nil, apperror.Wrap(err, apperror.KindStoreUnavailable, "data store unavailable")
	}

	doc := domain.NewDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, apperror.Wrap(fmt.Errorf("corrupt document %s: %w", s.path, err),
			apperror.KindStoreUnavailable, "data store unavailable")
	}
	return doc, nil
}

func (s *FileStore) save(doc *domain.Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return apperror.Wrap(err, apperror.KindStoreUnavailable, "data store unavailable")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-")
	if err != nil {
		return apperror.Wrap(err, apperror.KindStoreUnavailable, "data store unavailable")
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return apperror.Wrap(err, apperror.KindStoreUnavailable, "data store unavailable")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return apperror.Wrap(err, apperror.KindStoreUnavailable, "data store unavailable")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return apperror.Wrap(err, apperror.KindStoreUnavailable, "data store unavailable")
	}
	return nil
}
