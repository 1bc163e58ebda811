// Package history persists conversion records in a SQLite database and
// answers the queries behind the "convmusic history" subcommands.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Conversion represents a single recorded conversion
type Conversion struct {
	ID           int64
	BatchID      string
	InputPath    string
	OutputPath   string
	SourceFormat string
	TargetFormat string
	Quality      int
	Success      bool
	ErrorMessage string
	Duration     time.Duration
	CreatedAt    time.Time
}

// Store manages the SQLite database holding conversion history
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore creates a new Store instance and initializes the database
func NewStore(dbPath string) (*Store, error) {
	// Handle in-memory database
	if dbPath == ":memory:" {
		return openAndInitStore(dbPath)
	}

	// Ensure parent directory exists for file-based databases
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	return openAndInitStore(dbPath)
}

// openAndInitStore opens the database connection and initializes schema
func openAndInitStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Configure SQLite for concurrent access with retry logic.
	// Set busy_timeout FIRST so subsequent operations wait on locks.
	pragmas := []string{
		"PRAGMA busy_timeout=5000", // Must be first
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	store := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

// execWithRetry executes a SQL statement with exponential backoff retry on
// lock errors. Concurrent initialization of the same database file can
// transiently report "database is locked".
func execWithRetry(db *sql.DB, sql string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(sql)
		if err == nil {
			return nil
		}

		// Only retry on "database is locked" errors
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}

		lastErr = err
		delay := baseDelay * time.Duration(1<<attempt)
		time.Sleep(delay)
	}
	return lastErr
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record inserts a conversion record into the database and sets its ID.
func (s *Store) Record(ctx context.Context, conv *Conversion) error {
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO conversions
		(batch_id, input_path, output_path, source_format, target_format, quality, success, error_message, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query,
		conv.BatchID,
		conv.InputPath,
		conv.OutputPath,
		conv.SourceFormat,
		conv.TargetFormat,
		conv.Quality,
		conv.Success,
		conv.ErrorMessage,
		conv.Duration.Milliseconds(),
		conv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert conversion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}
	conv.ID = id

	return nil
}

// Recent returns the most recent conversions, newest first.
// When failedOnly is set, only failed conversions are returned.
// limit <= 0 means a default of 20 records.
func (s *Store) Recent(ctx context.Context, limit int, failedOnly bool) ([]Conversion, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, batch_id, input_path, output_path, source_format, target_format, quality, success, error_message, duration_ms, created_at
		FROM conversions`
	if failedOnly {
		query += ` WHERE success = 0`
	}
	query += ` ORDER BY id DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query conversions: %w", err)
	}
	defer rows.Close()

	return scanConversions(rows)
}

// Batch returns every conversion recorded under the given batch id.
func (s *Store) Batch(ctx context.Context, batchID string) ([]Conversion, error) {
	query := `SELECT id, batch_id, input_path, output_path, source_format, target_format, quality, success, error_message, duration_ms, created_at
		FROM conversions WHERE batch_id = ? ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("query batch: %w", err)
	}
	defer rows.Close()

	return scanConversions(rows)
}

// scanConversions reads Conversion rows in the column order used by the
// SELECT statements above.
func scanConversions(rows *sql.Rows) ([]Conversion, error) {
	var conversions []Conversion
	for rows.Next() {
		var conv Conversion
		var durationMs int64
		if err := rows.Scan(
			&conv.ID,
			&conv.BatchID,
			&conv.InputPath,
			&conv.OutputPath,
			&conv.SourceFormat,
			&conv.TargetFormat,
			&conv.Quality,
			&conv.Success,
			&conv.ErrorMessage,
			&durationMs,
			&conv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		conv.Duration = time.Duration(durationMs) * time.Millisecond
		conversions = append(conversions, conv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return conversions, nil
}

// Clear removes all conversion records. Returns the number of deleted rows.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM conversions`)
	if err != nil {
		return 0, fmt.Errorf("clear conversions: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// Prune deletes records older than keepDays days. keepDays <= 0 keeps
// everything.
func (s *Store) Prune(ctx context.Context, keepDays int) (int64, error) {
	if keepDays <= 0 {
		return 0, nil
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -keepDays)
	result, err := s.db.ExecContext(ctx, `DELETE FROM conversions WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune conversions: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
