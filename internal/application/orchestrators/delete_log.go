package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"khatamflow/internal/domain/goal"
	"khatamflow/internal/domain/progress"
)

// DeleteLogInput carries input for the delete log orchestrator.
type DeleteLogInput struct {
	LogID string
}

// DeleteLogDeps holds dependencies for DeleteLog.
type DeleteLogDeps struct {
	GoalStore     GoalStoreForOrchestrator
	LogStore      LogStoreForOrchestrator
	SummaryStore  SummaryStoreForOrchestrator
	TargetStore   TargetStoreForOrchestrator
	SettingsStore SettingsStoreForOrchestrator
	Now           func() time.Time
}

// DeleteLogResult bundles the surviving logs and refreshed derived state.
type DeleteLogResult struct {
	Deleted int
	Logs    []progress.Log
	Summary progress.Summary
	Target  goal.DailyTarget
}

// ExecuteDeleteLog removes a log and cascades to every log at or past
// its page. Deleting "read up to page N" retracts the claim of having
// reached N, so any entry that built on that position goes with it;
// the aggregate position then falls back to the furthest surviving
// page.
// PRE: an active goal exists; the log exists
// POST: cascade applied; derived state refreshed from survivors
func ExecuteDeleteLog(ctx context.Context, input DeleteLogInput, deps DeleteLogDeps) (DeleteLogResult, error) {
	g, err := loadGoal(ctx, deps.GoalStore)
	if err != nil {
		return DeleteLogResult{}, err
	}

	logs, err := deps.LogStore.List(ctx)
	if err != nil {
		return DeleteLogResult{}, err
	}

	var anchor *progress.Log
	for i := range logs {
		if logs[i].ID == input.LogID {
			anchor = &logs[i]
			break
		}
	}
	if anchor == nil {
		return DeleteLogResult{}, progress.ErrLogNotFound
	}

	var survivors []progress.Log
	deleted := 0
	for _, l := range logs {
		if l.PageNumber >= anchor.PageNumber {
			if err := deps.LogStore.Delete(ctx, l.ID); err != nil {
				return DeleteLogResult{}, err
			}
			deleted++
			continue
		}
		survivors = append(survivors, l)
	}

	cutoff := maghribCutoff(ctx, deps.SettingsStore)
	summary, target, err := refreshDerived(ctx, g, survivors, deps.Now(), cutoff, deps.SummaryStore, deps.TargetStore)
	if err != nil {
		return DeleteLogResult{}, err
	}

	slog.Info("progress_event", "event", "log_deleted", "log_id", input.LogID,
		"cascade_count", deleted, "current_page", summary.CurrentPage)
	return DeleteLogResult{Deleted: deleted, Logs: progress.SortedByTime(survivors), Summary: summary, Target: target}, nil
}
