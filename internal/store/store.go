// Package store persists the planning document. The JSON file backend keeps
// the whole document in saved_data.json; the SQLite backend keeps one row
// per page and one row per accepted plan.
package store

import (
	"context"
	"errors"
	"fmt"

	"bloodtool/internal/config"
	"bloodtool/internal/forms"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store is closed")

// Store loads and saves the whole planning document.
type Store interface {
	Load(ctx context.Context) (*forms.Document, error)
	Save(ctx context.Context, doc *forms.Document) error
	Close() error
}

// Open returns the backend selected by cfg. Relative paths are resolved
// against workspace.
func Open(workspace string, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", config.DriverJSON:
		return NewJSONFileStore(config.Resolve(workspace, cfg.DataFile)), nil
	case config.DriverSQLite:
		return NewSQLiteStore(config.Resolve(workspace, cfg.DatabasePath))
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Counts summarises a document for status output.
type Counts struct {
	Platoons   int
	Transports int
	Deliveries int
	Entries    int
}

// Count tallies the repeated sections of doc.
func Count(doc *forms.Document) Counts {
	c := Counts{
		Platoons:   len(doc.Company.Platoons),
		Transports: len(doc.Transport.Options),
		Entries:    len(doc.Entries),
	}
	for _, opt := range doc.Transport.Options {
		c.Deliveries += len(opt.Schedule)
	}
	return c
}
