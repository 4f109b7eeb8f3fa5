package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"bloodtool/internal/conflict"
	"bloodtool/internal/forms"
	"bloodtool/internal/logging"

	"go.uber.org/zap"
)

const jsonIndent = "    "

// JSONFileStore keeps the document in a single indented JSON file.
type JSONFileStore struct {
	mu     sync.Mutex
	path   string
	closed bool
}

// NewJSONFileStore returns a store backed by path. The file is created on
// the first save.
func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{path: path}
}

// Path returns the data file location.
func (s *JSONFileStore) Path() string {
	return s.path
}

// Load reads the document. A missing or empty file yields an empty document.
func (s *JSONFileStore) Load(ctx context.Context) (*forms.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return forms.NewDocument(), nil
		}
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	doc := forms.NewDocument()
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("failed to parse data file %s: %w", s.path, err)
		}
	}
	doc.Normalize()

	logging.Get(logging.CategoryStore).Debug("loaded document",
		zap.String("path", s.path),
		zap.Int("entries", len(doc.Entries)))
	return doc, nil
}

// Save replaces the data file atomically.
func (s *JSONFileStore) Save(ctx context.Context, doc *forms.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	out := doc.Clone()
	out.Normalize()
	if err := writeJSONAtomic(s.path, out); err != nil {
		return err
	}

	logging.Get(logging.CategoryStore).Info("saved document",
		zap.String("path", s.path),
		zap.Int("entries", len(out.Entries)))
	return nil
}

// Close marks the store closed.
func (s *JSONFileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// ExportEntries writes the accepted log alone as an indented JSON array.
func ExportEntries(path string, entries []conflict.Plan) error {
	if entries == nil {
		entries = []conflict.Plan{}
	}
	if err := writeJSONAtomic(path, entries); err != nil {
		return fmt.Errorf("failed to export entries: %w", err)
	}
	logging.Get(logging.CategoryStore).Info("exported entries",
		zap.String("path", path),
		zap.Int("entries", len(entries)))
	return nil
}

// writeJSONAtomic writes v to a temp file next to path and renames it over path.
func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", jsonIndent)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		cleanup()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
