package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"zero-pass/internal/history/migrations"
)

// SQLiteRecorder implements Recorder on a SQLite database.
type SQLiteRecorder struct {
	db    *sql.DB
	clock Clock
	idgen IDGenerator
}

var _ Recorder = (*SQLiteRecorder)(nil)

// NewSQLiteRecorder opens the database at path, or an in-memory database for
// ":memory:", and brings its schema up to date. Nil clock and idgen default
// to RealClock and UUIDGenerator.
func NewSQLiteRecorder(path string, clock Clock, idgen IDGenerator) (*SQLiteRecorder, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating history database: %w", err)
	}

	if clock == nil {
		clock = RealClock{}
	}
	if idgen == nil {
		idgen = UUIDGenerator{}
	}
	return &SQLiteRecorder{db: db, clock: clock, idgen: idgen}, nil
}

// OpenConnection opens and configures a SQLite connection.
// path can be a file path or ":memory:" for in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	return db, nil
}

func (s *SQLiteRecorder) Record(ctx context.Context, method string, repeat uint8, sink string) (*Run, error) {
	run := &Run{
		ID:     s.idgen.New(),
		RanAt:  s.clock.Now().UTC(),
		Method: method,
		Repeat: repeat,
		Sink:   sink,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, ran_at, method, repeat, sink) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.RanAt, run.Method, int(run.Repeat), run.Sink,
	)
	if err != nil {
		return nil, fmt.Errorf("recording run: %w", err)
	}
	return run, nil
}

func (s *SQLiteRecorder) Recent(ctx context.Context, limit int) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ran_at, method, repeat, sink FROM runs ORDER BY ran_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var (
			r      Run
			repeat int
		)
		if err := rows.Scan(&r.ID, &r.RanAt, &r.Method, &repeat, &r.Sink); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Repeat = uint8(repeat)
		runs = append(runs, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

func (s *SQLiteRecorder) Close() error {
	return s.db.Close()
}
