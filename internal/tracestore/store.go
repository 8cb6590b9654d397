// Package tracestore persists engine trace events in SQLite.
package tracestore

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/funvibe/monadic/internal/engine"
	"github.com/funvibe/monadic/internal/evaluator"

	// SQLite driver (pure Go, no CGO required)
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store records every capability-boundary event of the evaluations it
// traces. It implements engine.Tracer.
type Store struct {
	mu  sync.Mutex
	db  *sql.DB
	err error // first write failure
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	dsn := MemoryPath
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating trace directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening trace database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to trace database: %w", err)
	}

	// one connection, so an in-memory database is shared by every query
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating trace schema: %w", err)
	}
	return s, nil
}

func (s *Store) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS trace_events (
			eval_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			op TEXT NOT NULL,
			statement TEXT NOT NULL DEFAULT '',
			value_type TEXT NOT NULL DEFAULT '',
			at DATETIME NOT NULL,
			PRIMARY KEY (eval_id, seq)
		);

		CREATE INDEX IF NOT EXISTS idx_trace_events_at ON trace_events(at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Trace stores ev. A failed write is logged once and reported by Err.
func (s *Store) Trace(ev engine.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO trace_events (eval_id, seq, op, statement, value_type, at) VALUES (?, ?, ?, ?, ?, ?)`,
		ev.EvalID.String(), ev.Seq, ev.Op, ev.Statement, string(ev.ValueType), ev.Time.UTC(),
	)
	if err != nil && s.err == nil {
		s.err = err
		log.Printf("[WARN] trace store write failed: %v", err)
	}
}

// Err returns the first write failure, if any.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Events returns the events of one evaluation in order.
func (s *Store) Events(evalID uuid.UUID) ([]engine.Event, error) {
	rows, err := s.db.Query(
		`SELECT eval_id, seq, op, statement, value_type, at FROM trace_events WHERE eval_id = ? ORDER BY seq`,
		evalID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("querying trace events: %w", err)
	}
	defer rows.Close()

	var events []engine.Event
	for rows.Next() {
		var (
			id, op, stmt, vt string
			seq              int64
			at               time.Time
		)
		if err := rows.Scan(&id, &seq, &op, &stmt, &vt, &at); err != nil {
			return nil, fmt.Errorf("scanning trace event: %w", err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("trace event has bad eval id %q: %w", id, err)
		}
		events = append(events, engine.Event{
			EvalID:    parsed,
			Seq:       seq,
			Op:        op,
			Statement: stmt,
			ValueType: evaluator.ObjectType(vt),
			Time:      at,
		})
	}
	return events, rows.Err()
}

// Evaluations lists the stored evaluation IDs, most recent first.
func (s *Store) Evaluations() ([]uuid.UUID, error) {
	rows, err := s.db.Query(`SELECT eval_id FROM trace_events GROUP BY eval_id ORDER BY MAX(at) DESC, eval_id`)
	if err != nil {
		return nil, fmt.Errorf("querying evaluations: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("bad eval id %q: %w", id, err)
		}
		ids = append(ids, parsed)
	}
	return ids, rows.Err()
}

func (s *Store) Close() error { return s.db.Close() }
