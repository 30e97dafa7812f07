package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"khatamflow/internal/domain/goal"
	"khatamflow/internal/domain/pacing"
	"khatamflow/internal/domain/progress"
	"khatamflow/internal/domain/settings"
)

// ErrNoGoal is returned by orchestrators that require an active goal.
var ErrNoGoal = errors.New("no active goal")

// GoalStoreForOrchestrator defines the goal store interface needed by orchestrators.
type GoalStoreForOrchestrator interface {
	Get(ctx context.Context) (goal.Goal, error)
	Save(ctx context.Context, g goal.Goal) error
	Clear(ctx context.Context) error
}

// LogStoreForOrchestrator defines the reading-log store interface needed by orchestrators.
type LogStoreForOrchestrator interface {
	List(ctx context.Context) ([]progress.Log, error)
	Save(ctx context.Context, l progress.Log) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// SummaryStoreForOrchestrator defines the aggregate-position store interface.
type SummaryStoreForOrchestrator interface {
	Get(ctx context.Context) (progress.Summary, error)
	Save(ctx context.Context, s progress.Summary) error
	Clear(ctx context.Context) error
}

// TargetStoreForOrchestrator defines the daily-target store interface.
type TargetStoreForOrchestrator interface {
	Get(ctx context.Context) (goal.DailyTarget, error)
	Save(ctx context.Context, t goal.DailyTarget) error
	Clear(ctx context.Context) error
}

// SettingsStoreForOrchestrator defines the settings store interface.
type SettingsStoreForOrchestrator interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
}

// MilestoneStoreForOrchestrator defines the celebrated-milestone store interface.
type MilestoneStoreForOrchestrator interface {
	MarkSent(ctx context.Context, goalID string, threshold int, at time.Time) (bool, error)
	ListSent(ctx context.Context, goalID string) ([]int, error)
	Clear(ctx context.Context) error
}

// NotifierForOrchestrator announces milestones; delivery is best-effort.
type NotifierForOrchestrator interface {
	MilestoneReached(ctx context.Context, percent, currentPage, totalPages int) error
	GoalCompleted(ctx context.Context, totalPages int) error
}

// loadGoal fetches the active goal, mapping the missing-row case to ErrNoGoal.
func loadGoal(ctx context.Context, store GoalStoreForOrchestrator) (goal.Goal, error) {
	g, err := store.Get(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return goal.Goal{}, ErrNoGoal
	}
	return g, err
}

// maghribCutoff reads the configured logical-day boundary, falling back
// to the default when settings are unreadable.
func maghribCutoff(ctx context.Context, store SettingsStoreForOrchestrator) string {
	if store == nil {
		return pacing.DefaultMaghribTime
	}
	v, err := store.Get(ctx, settings.KeyMaghribTime)
	if err != nil || v == "" {
		return pacing.DefaultMaghribTime
	}
	return v
}

// refreshDerived rebuilds the aggregate position and daily target from
// the full log collection and persists both. This is the only write
// path for derived state: every mutation of the log collection funnels
// through here so the caches can never drift from the fold.
func refreshDerived(ctx context.Context, g goal.Goal, logs []progress.Log, now time.Time, cutoff string,
	summaries SummaryStoreForOrchestrator, targets TargetStoreForOrchestrator) (progress.Summary, goal.DailyTarget, error) {

	summary := progress.Recompute(logs, g.StartPage, now)
	if err := summaries.Save(ctx, summary); err != nil {
		return progress.Summary{}, goal.DailyTarget{}, err
	}

	target := pacing.ComputeDailyTarget(g.Mushaf.TotalPages, summary.CurrentPage, now, g.TargetDate, cutoff)
	if err := targets.Save(ctx, target); err != nil {
		return progress.Summary{}, goal.DailyTarget{}, err
	}

	return summary, target, nil
}
