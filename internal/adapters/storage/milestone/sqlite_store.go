package milestone

import (
	"context"
	"time"

	"khatamflow/internal/adapters/storage"
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

// MarkSent records a celebrated threshold for a goal.
// PRE: goalID is non-empty; threshold is a percentage
// POST: Returns true if the pair was newly inserted, false if it was
// already celebrated (ON CONFLICT DO NOTHING leaves zero rows changed)
func (s *SQLiteStore) MarkSent(ctx context.Context, goalID string, threshold int, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO milestone_sent (goal_id, threshold, sent_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(goal_id, threshold) DO NOTHING`,
		goalID, threshold, at.Format(timeLayout))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListSent retrieves celebrated thresholds for a goal, ascending.
// PRE: goalID is non-empty
// POST: Returns thresholds or empty slice
func (s *SQLiteStore) ListSent(ctx context.Context, goalID string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT threshold FROM milestone_sent WHERE goal_id = ? ORDER BY threshold ASC`, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var thresholds []int
	for rows.Next() {
		var t int
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		thresholds = append(thresholds, t)
	}
	return thresholds, rows.Err()
}

// Clear wipes all celebrated thresholds. Called when a new goal
// begins a fresh milestone lifetime.
// PRE: none
// POST: no celebrated thresholds remain
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM milestone_sent`)
	return err
}

// Ensure interface compliance at compile time.
var _ Store = (*SQLiteStore)(nil)
