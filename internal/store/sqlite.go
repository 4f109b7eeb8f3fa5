package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"bloodtool/internal/conflict"
	"bloodtool/internal/forms"
	"bloodtool/internal/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Page keys in the records table.
const (
	pageHome      = "home"
	pageCompany   = "medical_logistics_company"
	pageTransport = "transport_info"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	page TEXT PRIMARY KEY,
	body TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS entries (
	id TEXT PRIMARY KEY,
	seq INTEGER NOT NULL UNIQUE,
	body TEXT NOT NULL,
	accepted_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_seq ON entries(seq);
`

// StoredEntry is an accepted plan with its row metadata.
type StoredEntry struct {
	ID         string
	Seq        int
	AcceptedAt time.Time
	Plan       conflict.Plan
}

// SQLiteStore keeps page records and the accepted log in SQLite.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.Mutex
	dbPath string
	now    func() time.Time
}

// NewSQLiteStore opens (and migrates) the database at path. ":memory:" is
// accepted for tests.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	logging.Get(logging.CategoryStore).Debug("opened sqlite store", zap.String("path", path))
	return &SQLiteStore{db: db, dbPath: path, now: time.Now}, nil
}

// Path returns the database location.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// Load assembles the document from the page records and the accepted log.
func (s *SQLiteStore) Load(ctx context.Context) (*forms.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, ErrClosed
	}

	doc := forms.NewDocument()

	rows, err := s.db.QueryContext(ctx, `SELECT page, body FROM records`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var page, body string
		if err := rows.Scan(&page, &body); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		var target any
		switch page {
		case pageHome:
			target = &doc.Home
		case pageCompany:
			target = &doc.Company
		case pageTransport:
			target = &doc.Transport
		default:
			continue
		}
		if err := json.Unmarshal([]byte(body), target); err != nil {
			return nil, fmt.Errorf("failed to decode %s record: %w", page, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	entries, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		doc.AppendEntry(e.Plan)
	}
	doc.Normalize()
	return doc, nil
}

// Save writes every page record and brings the entries table in line with
// doc.Entries in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, doc *forms.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrClosed
	}

	out := doc.Clone()
	out.Normalize()
	stamp := s.now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	records := []struct {
		page string
		v    any
	}{
		{pageHome, out.Home},
		{pageCompany, out.Company},
		{pageTransport, out.Transport},
	}
	for _, r := range records {
		body, err := json.Marshal(r.v)
		if err != nil {
			return fmt.Errorf("failed to encode %s record: %w", r.page, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO records (page, body, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(page) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
			r.page, string(body), stamp); err != nil {
			return fmt.Errorf("failed to write %s record: %w", r.page, err)
		}
	}

	bodies := make([]string, len(out.Entries))
	for i, e := range out.Entries {
		body, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to encode entry %d: %w", i+1, err)
		}
		bodies[i] = string(body)
	}

	start, err := divergence(ctx, tx, bodies)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE seq >= ?`, start); err != nil {
		return fmt.Errorf("failed to reset entries: %w", err)
	}

	for i := start; i < len(bodies); i++ {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO entries (id, seq, body, accepted_at) VALUES (?, ?, ?, ?)`,
			uuid.NewString(), i, bodies[i], stamp); err != nil {
			return fmt.Errorf("failed to insert entry %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	logging.Get(logging.CategoryStore).Info("saved document",
		zap.String("path", s.dbPath),
		zap.Int("entries", len(out.Entries)),
		zap.Int("written", len(out.Entries)-start))
	return nil
}

// divergence returns the first seq whose stored body differs from bodies.
// Rows before it are kept with their IDs; rows from it on are rewritten.
func divergence(ctx context.Context, tx *sql.Tx, bodies []string) (int, error) {
	rows, err := tx.QueryContext(ctx, `SELECT body FROM entries ORDER BY seq`)
	if err != nil {
		return 0, fmt.Errorf("failed to read entries: %w", err)
	}
	defer rows.Close()

	i := 0
	for ; rows.Next() && i < len(bodies); i++ {
		var body string
		if err := rows.Scan(&body); err != nil {
			return 0, fmt.Errorf("failed to scan entry: %w", err)
		}
		if body != bodies[i] {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to read entries: %w", err)
	}
	return i, nil
}

// Entries lists the accepted log in acceptance order.
func (s *SQLiteStore) Entries(ctx context.Context) ([]StoredEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, ErrClosed
	}
	return s.entries(ctx)
}

func (s *SQLiteStore) entries(ctx context.Context) ([]StoredEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, seq, body, accepted_at FROM entries ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var out []StoredEntry
	for rows.Next() {
		var (
			e        StoredEntry
			body     string
			accepted string
		)
		if err := rows.Scan(&e.ID, &e.Seq, &body, &accepted); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if err := json.Unmarshal([]byte(body), &e.Plan); err != nil {
			return nil, fmt.Errorf("failed to decode entry %s: %w", e.ID, err)
		}
		if t, err := time.Parse(time.RFC3339Nano, accepted); err == nil {
			e.AcceptedAt = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
