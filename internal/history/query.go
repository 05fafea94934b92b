// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pdiddy/coalseam/pkg/types"
)

// QueryOptions filters history queries. Zero values mean no filter.
type QueryOptions struct {
	Location string
	Since    time.Time
	Until    time.Time

	// MaxResults keeps the most recent records. Zero returns all.
	MaxResults int
}

// where appends the option filters to qb and returns their arguments.
func (q QueryOptions) where(qb *strings.Builder) []any {
	var args []any
	if q.Location != "" {
		qb.WriteString(" AND location = ?")
		args = append(args, q.Location)
	}
	if !q.Since.IsZero() {
		qb.WriteString(" AND timestamp >= ?")
		args = append(args, formatTime(q.Since))
	}
	if !q.Until.IsZero() {
		qb.WriteString(" AND timestamp <= ?")
		args = append(args, formatTime(q.Until))
	}
	return args
}

// Resources returns the resource time series in timestamp order. With
// MaxResults set, only the most recent records are kept.
func (s *Store) Resources(ctx context.Context, opts QueryOptions) ([]types.HistoryRecord, error) {
	var qb strings.Builder
	qb.WriteString(`SELECT id, location, timestamp, total_resources, layers_count
		FROM resource_history WHERE 1=1`)
	args := opts.where(&qb)
	args = limitRecent(&qb, args, opts.MaxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying resource history: %w", err)
	}
	defer rows.Close()

	var out []types.HistoryRecord
	for rows.Next() {
		var (
			r  types.HistoryRecord
			ts string
		)
		if err := rows.Scan(&r.ID, &r.Location, &ts, &r.TotalResources, &r.LayersCount); err != nil {
			return nil, fmt.Errorf("scanning resource history: %w", err)
		}
		if r.Timestamp, err = parseTime(ts); err != nil {
			return nil, fmt.Errorf("parsing timestamp of %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating resource history: %w", err)
	}
	if opts.MaxResults > 0 {
		slices.Reverse(out)
	}
	return out, nil
}

// Pollution returns the pollution time series in timestamp order.
func (s *Store) Pollution(ctx context.Context, opts QueryOptions) ([]types.PollutionRecord, error) {
	var qb strings.Builder
	qb.WriteString(`SELECT id, location, timestamp, overall_score, pollution_grade
		FROM pollution_history WHERE 1=1`)
	args := opts.where(&qb)
	args = limitRecent(&qb, args, opts.MaxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying pollution history: %w", err)
	}
	defer rows.Close()

	var out []types.PollutionRecord
	for rows.Next() {
		var (
			r     types.PollutionRecord
			ts    string
			grade string
		)
		if err := rows.Scan(&r.ID, &r.Location, &ts, &r.OverallScore, &grade); err != nil {
			return nil, fmt.Errorf("scanning pollution history: %w", err)
		}
		r.Grade = types.PollutionGrade(grade)
		if r.Timestamp, err = parseTime(ts); err != nil {
			return nil, fmt.Errorf("parsing timestamp of %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pollution history: %w", err)
	}
	if opts.MaxResults > 0 {
		slices.Reverse(out)
	}
	return out, nil
}

// Latest returns the most recent resource record of every location,
// ordered by location.
func (s *Store) Latest(ctx context.Context) ([]types.HistoryRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT h.id, h.location, h.timestamp, h.total_resources, h.layers_count
		FROM resource_history h
		WHERE h.id = (
			SELECT id FROM resource_history
			WHERE location = h.location
			ORDER BY timestamp DESC, id DESC LIMIT 1
		)
		ORDER BY h.location`)
	if err != nil {
		return nil, fmt.Errorf("querying latest records: %w", err)
	}
	defer rows.Close()

	var out []types.HistoryRecord
	for rows.Next() {
		var (
			r  types.HistoryRecord
			ts string
		)
		if err := rows.Scan(&r.ID, &r.Location, &ts, &r.TotalResources, &r.LayersCount); err != nil {
			return nil, fmt.Errorf("scanning latest records: %w", err)
		}
		if r.Timestamp, err = parseTime(ts); err != nil {
			return nil, fmt.Errorf("parsing timestamp of %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Locations returns every location with at least one record.
func (s *Store) Locations(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT location FROM reports ORDER BY location`)
	if err != nil {
		return nil, fmt.Errorf("querying locations: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

// limitRecent orders newest first when a limit is set, so the limit keeps
// the most recent rows. Callers restore chronological order.
func limitRecent(qb *strings.Builder, args []any, max int) []any {
	if max <= 0 {
		qb.WriteString(" ORDER BY timestamp, id")
		return args
	}
	qb.WriteString(" ORDER BY timestamp DESC, id DESC LIMIT ?")
	return append(args, max)
}
