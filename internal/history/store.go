// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists assessment reports and the per-location
// resource and pollution time series in SQLite.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/coalseam/pkg/types"
)

const (
	historyDir = "history"
	dbFile     = "coalseam.db"
)

// ErrNotFound is returned when no report has the requested ID.
var ErrNotFound = errors.New("history record not found")

// Store manages the assessment history database.
type Store struct {
	db  *sql.DB
	dir string
}

// Open opens or creates the history database at dataDir/history/coalseam.db
// and creates the schema if it does not exist.
func Open(cfg types.HistoryConfig) (*Store, error) {
	dir := filepath.Join(cfg.DataDir, historyDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the directory holding the database and exports.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			location TEXT NOT NULL,
			filename TEXT,
			notes TEXT,
			timestamp TEXT NOT NULL,
			body TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS resource_history (
			id TEXT PRIMARY KEY REFERENCES reports(id) ON DELETE CASCADE,
			location TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			total_resources REAL NOT NULL,
			layers_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS pollution_history (
			id TEXT PRIMARY KEY REFERENCES reports(id) ON DELETE CASCADE,
			location TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			overall_score REAL NOT NULL,
			pollution_grade TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_resource_location ON resource_history(location, timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_pollution_location ON pollution_history(location, timestamp)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Append stores a report and its resource and pollution history rows in
// one transaction. Appending the same report ID twice fails.
func (s *Store) Append(ctx context.Context, r *types.AssessmentReport) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	ts := formatTime(r.Timestamp)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO reports (id, location, filename, notes, timestamp, body) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Location, r.Source, r.Notes, ts, string(body),
	); err != nil {
		return fmt.Errorf("inserting report %s: %w", r.ID, err)
	}

	res := r.HistoryRecord()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO resource_history (id, location, timestamp, total_resources, layers_count) VALUES (?, ?, ?, ?, ?)`,
		res.ID, res.Location, ts, res.TotalResources, res.LayersCount,
	); err != nil {
		return fmt.Errorf("inserting resource history: %w", err)
	}

	pol := r.PollutionRecord()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO pollution_history (id, location, timestamp, overall_score, pollution_grade) VALUES (?, ?, ?, ?, ?)`,
		pol.ID, pol.Location, ts, pol.OverallScore, string(pol.Grade),
	); err != nil {
		return fmt.Errorf("inserting pollution history: %w", err)
	}

	return tx.Commit()
}

// Report returns the full stored report with the given ID.
func (s *Store) Report(ctx context.Context, id string) (*types.AssessmentReport, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM reports WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying report %s: %w", id, err)
	}

	var r types.AssessmentReport
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return nil, fmt.Errorf("decoding report %s: %w", id, err)
	}
	return &r, nil
}

// Delete removes a report and its history rows.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting report %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting report %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Timestamps are stored as fixed-width UTC text so they sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
