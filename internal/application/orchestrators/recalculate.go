package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"khatamflow/internal/domain/goal"
	"khatamflow/internal/domain/pacing"
	"khatamflow/internal/domain/progress"
)

// RecalculateDeps holds dependencies for RecalculateTarget.
type RecalculateDeps struct {
	GoalStore     GoalStoreForOrchestrator
	LogStore      LogStoreForOrchestrator
	SummaryStore  SummaryStoreForOrchestrator
	TargetStore   TargetStoreForOrchestrator
	SettingsStore SettingsStoreForOrchestrator
	Now           func() time.Time
}

// RecalculateResult bundles the refreshed target and its prayer split.
type RecalculateResult struct {
	Summary progress.Summary
	Target  goal.DailyTarget
	Split   []pacing.PrayerShare
}

// ExecuteRecalculateTarget rebuilds the daily target from scratch.
// Nothing has to change for this to matter: the same position on a
// later logical day yields a different target, so callers run this on
// every read of the target, not just after mutations.
// PRE: an active goal exists
// POST: derived state refreshed and persisted
func ExecuteRecalculateTarget(ctx context.Context, deps RecalculateDeps) (RecalculateResult, error) {
	g, err := loadGoal(ctx, deps.GoalStore)
	if err != nil {
		return RecalculateResult{}, err
	}

	logs, err := deps.LogStore.List(ctx)
	if err != nil {
		return RecalculateResult{}, err
	}

	cutoff := maghribCutoff(ctx, deps.SettingsStore)
	summary, target, err := refreshDerived(ctx, g, logs, deps.Now(), cutoff, deps.SummaryStore, deps.TargetStore)
	if err != nil {
		return RecalculateResult{}, err
	}

	slog.Debug("pacing_event", "event", "target_recalculated",
		"pages_needed", target.PagesNeeded, "days_remaining", target.DaysRemaining, "impossible", target.IsImpossible)
	return RecalculateResult{
		Summary: summary,
		Target:  target,
		Split:   pacing.SplitByPrayers(target.PagesNeeded),
	}, nil
}
