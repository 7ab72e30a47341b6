package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/fstvl/internal/db"
)

// Store provides persistence for render runs.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record inserts a run. If run.ID is empty a UUID is generated.
func (s *Store) Record(ctx context.Context, run Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.Trigger == "" {
		run.Trigger = TriggerCLI
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO render_runs (
			id, section, content_type, triggered_by, status, items, error, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Section,
		run.ContentType,
		string(run.Trigger),
		string(run.Status),
		run.Items,
		run.Error,
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("inserting render run: %w", err)
	}
	return nil
}

// GetByID retrieves a single run.
func (s *Store) GetByID(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, selectRuns+" WHERE id = ?", id)
	return scanInto(row)
}

// QueryFilter controls which runs are returned by Query.
type QueryFilter struct {
	Section string
	Status  Status
	Trigger Trigger
	Since   *time.Time
	Limit   int
	Offset  int
}

const selectRuns = "SELECT id, timestamp, section, content_type, triggered_by, status, items, error, duration_ms FROM render_runs"

// Query returns runs matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Run, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.Section != "" {
		clauses = append(clauses, "section = ?")
		args = append(args, filter.Section)
	}
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.Trigger != "" {
		clauses = append(clauses, "triggered_by = ?")
		args = append(args, string(filter.Trigger))
	}
	if filter.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}

	query := selectRuns
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	} else if filter.Offset > 0 {
		query += fmt.Sprintf(" LIMIT -1 OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying render runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// DeleteBefore removes all runs older than the given time and returns the
// number of deleted rows.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM render_runs WHERE timestamp < ?",
		before.UTC().Format(time.DateTime),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old render runs: %w", err)
	}
	return res.RowsAffected()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

var timestampLayouts = []string{time.DateTime, time.RFC3339Nano, "2006-01-02T15:04:05Z"}

func scanInto(sc scanner) (*Run, error) {
	var (
		r               Run
		ts              string
		trigger, status string
		durationMS      int64
	)

	err := sc.Scan(&r.ID, &ts, &r.Section, &r.ContentType, &trigger, &status, &r.Items, &r.Error, &durationMS)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("render run not found")
	}
	if err != nil {
		return nil, err
	}

	r.Trigger = Trigger(trigger)
	r.Status = Status(status)
	r.Duration = time.Duration(durationMS) * time.Millisecond
	for _, layout := range timestampLayouts {
		if t, parseErr := time.Parse(layout, ts); parseErr == nil {
			r.Timestamp = t
			break
		}
	}
	return &r, nil
}
