package goal

import (
	"context"
	"time"

	"khatamflow/internal/adapters/storage"
	domain "khatamflow/internal/domain/goal"
)

const timeLayout = time.RFC3339Nano

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves the active goal.
// PRE: none
// POST: Returns the goal or sql.ErrNoRows when none is set
func (s *SQLiteStore) Get(ctx context.Context) (domain.Goal, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, mushaf_type, mushaf_name, total_pages, start_page, start_date, target_date, created_at
		 FROM goal LIMIT 1`)

	var g domain.Goal
	var startDate, targetDate, createdAt string
	err := row.Scan(&g.ID, &g.Mushaf.Type, &g.Mushaf.Name, &g.Mushaf.TotalPages,
		&g.StartPage, &startDate, &targetDate, &createdAt)
	if err != nil {
		return domain.Goal{}, err
	}
	g.StartDate, _ = time.Parse(timeLayout, startDate)
	g.TargetDate, _ = time.Parse(timeLayout, targetDate)
	g.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	return g, nil
}

// Save persists the goal, replacing any previous one. The goal is
// immutable once set; replacement only happens on onboarding or a
// full reset.
// PRE: g has been validated
// POST: g is the only stored goal
func (s *SQLiteStore) Save(ctx context.Context, g domain.Goal) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM goal`); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO goal (id, mushaf_type, mushaf_name, total_pages, start_page, start_date, target_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Mushaf.Type, g.Mushaf.Name, g.Mushaf.TotalPages, g.StartPage,
		g.StartDate.Format(timeLayout), g.TargetDate.Format(timeLayout), g.CreatedAt.Format(timeLayout))
	return err
}

// Clear removes the stored goal.
// PRE: none
// POST: no goal remains
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM goal`)
	return err
}

// Ensure interface compliance at compile time.
var _ Store = (*SQLiteStore)(nil)
