package progress

import (
	"context"
	"database/sql"
	"time"

	"khatamflow/internal/adapters/storage"
	domaingoal "khatamflow/internal/domain/goal"
	domain "khatamflow/internal/domain/progress"
)

// RFC3339Nano keeps the sub-second ordering of range-append logs.
const timeLayout = time.RFC3339Nano

// LogSQLiteStore implements LogStore using SQLite.
type LogSQLiteStore struct {
	db storage.SQLDB
}

// NewLogSQLiteStore creates a new LogSQLiteStore.
func NewLogSQLiteStore(db storage.SQLDB) *LogSQLiteStore {
	return &LogSQLiteStore{db: db}
}

// List retrieves all reading logs ordered by occurrence time.
// PRE: none
// POST: Returns all logs, oldest first
func (s *LogSQLiteStore) List(ctx context.Context) ([]domain.Log, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, page_number, occurred_at, pages_read, notes
		 FROM progress_log ORDER BY occurred_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLogs(rows)
}

// Save persists a reading log (insert or update for edits).
// PRE: l has been validated
// POST: l is persisted
func (s *LogSQLiteStore) Save(ctx context.Context, l domain.Log) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO progress_log (id, page_number, occurred_at, pages_read, notes)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   page_number=excluded.page_number, occurred_at=excluded.occurred_at,
		   pages_read=excluded.pages_read, notes=excluded.notes`,
		l.ID, l.PageNumber, l.OccurredAt.Format(timeLayout), l.PagesRead, l.Notes)
	return err
}

// Delete removes a reading log by ID.
// PRE: id is non-empty
// POST: log with given id is removed
func (s *LogSQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM progress_log WHERE id = ?`, id)
	return err
}

// DeleteAll clears the log collection.
// PRE: none
// POST: no logs remain
func (s *LogSQLiteStore) DeleteAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM progress_log`)
	return err
}

func scanLogs(rows *sql.Rows) ([]domain.Log, error) {
	var logs []domain.Log
	for rows.Next() {
		var l domain.Log
		var occurredAt string
		if err := rows.Scan(&l.ID, &l.PageNumber, &occurredAt, &l.PagesRead, &l.Notes); err != nil {
			return nil, err
		}
		l.OccurredAt, _ = time.Parse(timeLayout, occurredAt)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// Ensure interface compliance at compile time.
var _ LogStore = (*LogSQLiteStore)(nil)

// SummarySQLiteStore implements SummaryStore using SQLite. The table
// holds a single row; the aggregate is one value, not a history.
type SummarySQLiteStore struct {
	db storage.SQLDB
}

// NewSummarySQLiteStore creates a new SummarySQLiteStore.
func NewSummarySQLiteStore(db storage.SQLDB) *SummarySQLiteStore {
	return &SummarySQLiteStore{db: db}
}

// Get retrieves the aggregate position.
// PRE: none
// POST: Returns the summary or sql.ErrNoRows when never computed
func (s *SummarySQLiteStore) Get(ctx context.Context) (domain.Summary, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT current_page, last_updated, total_pages_read FROM progress_summary WHERE id = 1`)

	var sum domain.Summary
	var lastUpdated string
	if err := row.Scan(&sum.CurrentPage, &lastUpdated, &sum.TotalPagesRead); err != nil {
		return domain.Summary{}, err
	}
	sum.LastUpdated, _ = time.Parse(timeLayout, lastUpdated)
	return sum, nil
}

// Save overwrites the aggregate position.
// PRE: sum came from the authoritative log fold
// POST: sum is the stored aggregate
func (s *SummarySQLiteStore) Save(ctx context.Context, sum domain.Summary) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO progress_summary (id, current_page, last_updated, total_pages_read)
		 VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   current_page=excluded.current_page, last_updated=excluded.last_updated,
		   total_pages_read=excluded.total_pages_read`,
		sum.CurrentPage, sum.LastUpdated.Format(timeLayout), sum.TotalPagesRead)
	return err
}

// Clear removes the aggregate position.
// PRE: none
// POST: no summary remains
func (s *SummarySQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM progress_summary`)
	return err
}

// Ensure interface compliance at compile time.
var _ SummaryStore = (*SummarySQLiteStore)(nil)

// TargetSQLiteStore implements TargetStore using SQLite.
type TargetSQLiteStore struct {
	db storage.SQLDB
}

// NewTargetSQLiteStore creates a new TargetSQLiteStore.
func NewTargetSQLiteStore(db storage.SQLDB) *TargetSQLiteStore {
	return &TargetSQLiteStore{db: db}
}

// Get retrieves the daily target.
// PRE: none
// POST: Returns the target or sql.ErrNoRows when never computed
func (s *TargetSQLiteStore) Get(ctx context.Context) (domaingoal.DailyTarget, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT pages_needed, pages_remaining, days_remaining, is_impossible, computed_at
		 FROM daily_target WHERE id = 1`)

	var t domaingoal.DailyTarget
	var impossible int
	var computedAt string
	if err := row.Scan(&t.PagesNeeded, &t.PagesRemaining, &t.DaysRemaining, &impossible, &computedAt); err != nil {
		return domaingoal.DailyTarget{}, err
	}
	t.IsImpossible = impossible != 0
	t.ComputedAt, _ = time.Parse(timeLayout, computedAt)
	return t, nil
}

// Save overwrites the daily target.
// PRE: t was just computed from the goal and aggregate position
// POST: t is the stored target
func (s *TargetSQLiteStore) Save(ctx context.Context, t domaingoal.DailyTarget) error {
	impossible := 0
	if t.IsImpossible {
		impossible = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO daily_target (id, pages_needed, pages_remaining, days_remaining, is_impossible, computed_at)
		 VALUES (1, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   pages_needed=excluded.pages_needed, pages_remaining=excluded.pages_remaining,
		   days_remaining=excluded.days_remaining, is_impossible=excluded.is_impossible,
		   computed_at=excluded.computed_at`,
		t.PagesNeeded, t.PagesRemaining, t.DaysRemaining, impossible, t.ComputedAt.Format(timeLayout))
	return err
}

// Clear removes the daily target.
// PRE: none
// POST: no target remains
func (s *TargetSQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM daily_target`)
	return err
}

// Ensure interface compliance at compile time.
var _ TargetStore = (*TargetSQLiteStore)(nil)
