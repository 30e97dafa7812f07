package milestone

import (
	"context"
	"time"
)

// Store tracks which completion thresholds have already been
// celebrated for a goal, so each one fires exactly once per goal
// lifetime even across restarts.
type Store interface {
	// MarkSent records a threshold as celebrated. Returns true only
	// the first time the (goal, threshold) pair is recorded.
	MarkSent(ctx context.Context, goalID string, threshold int, at time.Time) (bool, error)
	ListSent(ctx context.Context, goalID string) ([]int, error)
	Clear(ctx context.Context) error
}
