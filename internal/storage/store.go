// Package storage is the gateway to the embedded SQLite store. Every
// logical operation opens its own connection, executes, commits and
// closes before returning. That trades throughput for simplicity, which
// is the right trade for a single-user local tool; a connection pool
// would be introduced here if the store ever moved out of process.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fiwa/internal/core"
	"fiwa/internal/log"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// timeLayout is how timestamps are stored. All timestamps are UTC.
const timeLayout = time.RFC3339Nano

// Store executes statements against the database file at path.
type Store struct {
	path string
	log  *log.Logger
}

func New(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Store{
		path: path,
		log:  logger.WithComponent(log.ComponentStorage),
	}
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Initialize applies the schema at first run. If the backing file
// already exists the schema is assumed in place and nothing runs;
// created reports which case occurred.
func (s *Store) Initialize(ctx context.Context) (created bool, err error) {
	if _, err := os.Stat(s.path); err == nil {
		s.log.InfoContext(ctx, "database already initialized", log.FieldDBPath, s.path)
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat database file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return false, fmt.Errorf("create database directory: %w", err)
	}
	if err := RunMigrations(s.path); err != nil {
		return false, err
	}
	s.log.InfoContext(ctx, "database initialized", log.FieldDBPath, s.path)
	return true, nil
}

// withConn runs fn against a fresh connection, closed on every exit
// path. Statements auto-commit unless fn opens its own transaction.
func (s *Store) withConn(ctx context.Context, fn func(ctx context.Context, db *sql.DB) error) error {
	db, err := sql.Open(driverName, s.path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	return fn(ctx, db)
}

// withTx runs fn inside a single transaction on a fresh connection, so
// multi-statement operations either fully commit or leave no trace.
func (s *Store) withTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	return s.withConn(ctx, func(ctx context.Context, db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		if err := fn(ctx, tx); err != nil {
			_ = tx.Rollback()
			return err
		}
		return tx.Commit()
	})
}

// wrap converts storage-engine failures into a generic StorageError so
// engine-internal text never reaches callers. Domain errors produced by
// constraint mapping pass through untouched; the cause is logged here.
func (s *Store) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if core.IsDuplicate(err) || core.IsNotFound(err) || core.IsValidation(err) || core.IsQuota(err) {
		return err
	}
	s.log.Error("storage operation failed", log.FieldOperation, op, log.FieldError, err)
	return &core.StorageError{Op: op, Err: err}
}

// mapConstraint turns SQLite uniqueness violations into typed duplicate
// errors carrying a field hint. Everything else passes through.
func mapConstraint(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return err
	}
	switch {
	case strings.Contains(msg, "users.email"):
		return &core.DuplicateError{Field: "email"}
	case strings.Contains(msg, "projects.project_hash"):
		return &core.DuplicateError{Field: "project_hash"}
	case strings.Contains(msg, "labels."):
		return &core.DuplicateError{Field: "label name"}
	case strings.Contains(msg, "project_members."):
		return &core.DuplicateError{Field: "membership"}
	case strings.Contains(msg, "items.item_uuid"):
		return &core.DuplicateError{Field: "item_uuid"}
	default:
		return &core.DuplicateError{}
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		// Older rows may carry second precision only.
		t, err = time.Parse(time.RFC3339, s)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored timestamp %q: %w", s, err)
	}
	return t, nil
}

func encodeStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	out, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(out)
}

// decodeStrings is lenient: malformed stored data degrades to an empty
// list instead of failing the read.
func decodeStrings(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return []string{}
	}
	if values == nil {
		return []string{}
	}
	return values
}

func encodeInt64s(values []int64) string {
	if len(values) == 0 {
		return "[]"
	}
	out, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(out)
}

func decodeInt64s(raw string) []int64 {
	if raw == "" {
		return []int64{}
	}
	var values []int64
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return []int64{}
	}
	if values == nil {
		return []int64{}
	}
	return values
}
