// Package store persists named Karma run configurations in SQLite.
// Each record keeps the XML form produced by the karma codec.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/karmarun/packages/core/karma"
	"github.com/abdul-hamid-achik/karmarun/packages/core/workspace"
	"github.com/abdul-hamid-achik/karmarun/packages/core/xmlnode"
	"github.com/google/uuid"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when no configuration has the requested name
var ErrNotFound = errors.New("run configuration not found")

const schema = `
CREATE TABLE IF NOT EXISTS run_configurations (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	xml        TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// Record is a stored configuration
type Record struct {
	ID        string
	Name      string
	Settings  karma.RunSettings
	UpdatedAt time.Time
}

// Store is a SQLite backed configuration store
type Store struct {
	db           *sql.DB
	dataSource   string
	queryTimeout time.Duration
	now          func() time.Time
}

// Open opens (creating if needed) the store at dsn
func Open(ctx context.Context, dsn string) (*Store, error) {
	dataSource, err := parseConnectionString(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dataSource)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps :memory: databases alive across calls
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.ExecContext(pingCtx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{
		db:           db,
		dataSource:   dataSource,
		queryTimeout: 30 * time.Second,
		now:          time.Now,
	}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save inserts or replaces the configuration stored under name. The record
// id survives updates.
func (s *Store) Save(ctx context.Context, name string, settings karma.RunSettings) (Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Record{}, fmt.Errorf("configuration name is required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	payload := workspace.NewConfigurationElement(name, settings).String()
	updatedAt := s.now().UTC().Truncate(time.Second)

	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO run_configurations (id, name, xml, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET xml = excluded.xml, updated_at = excluded.updated_at
		RETURNING id`,
		uuid.NewString(), name, payload, updatedAt).Scan(&id)
	if err != nil {
		return Record{}, fmt.Errorf("saving %q: %w", name, err)
	}

	return Record{ID: id, Name: name, Settings: settings, UpdatedAt: updatedAt}, nil
}

// Get loads the configuration stored under name
func (s *Store) Get(ctx context.Context, name string) (Record, error) {
	name = strings.TrimSpace(name)
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, xml, updated_at FROM run_configurations WHERE name = ?`, name)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return Record{}, fmt.Errorf("loading %q: %w", name, err)
	}
	return rec, nil
}

// List returns every stored configuration ordered by name
func (s *Store) List(ctx context.Context) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, xml, updated_at FROM run_configurations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return records, nil
}

// Delete removes the configuration stored under name
func (s *Store) Delete(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM run_configurations WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec     Record
		payload string
	)
	if err := row.Scan(&rec.ID, &rec.Name, &payload, &rec.UpdatedAt); err != nil {
		return Record{}, err
	}

	el, err := xmlnode.ParseString(payload)
	if err != nil {
		return Record{}, fmt.Errorf("stored configuration %q: %w", rec.Name, err)
	}
	rec.Settings = karma.ReadXML(el)
	return rec, nil
}

// parseConnectionString turns a store location into a sqlite3 DSN.
// Supported formats:
// - sqlite://path/to/store.db
// - sqlite:./store.db
// - path/to/store.db
// - :memory:
func parseConnectionString(connStr string) (string, error) {
	connStr = strings.TrimSpace(connStr)

	switch {
	case strings.HasPrefix(connStr, "sqlite://"):
		connStr = strings.TrimPrefix(connStr, "sqlite://")
	case strings.HasPrefix(connStr, "sqlite:"):
		connStr = strings.TrimPrefix(connStr, "sqlite:")
	case strings.Contains(connStr, "://"):
		scheme, _, _ := strings.Cut(connStr, "://")
		return "", fmt.Errorf("unsupported database scheme: %s", scheme)
	}

	if connStr == "" {
		return "", fmt.Errorf("empty store location")
	}
	return connStr, nil
}
