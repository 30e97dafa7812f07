package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"khatamflow/internal/domain/goal"
)

// MilestoneThresholds are the celebrated completion percentages, in
// the order they are checked. Completion itself is tracked separately
// under CompletionThreshold.
var MilestoneThresholds = []int{25, 50, 75}

// CompletionThreshold marks the khatam-complete celebration in the
// milestone store.
const CompletionThreshold = 100

// AnnounceProgressInput carries the post-mutation position.
type AnnounceProgressInput struct {
	Goal        goal.Goal
	CurrentPage int
}

// AnnounceProgressDeps holds dependencies for AnnounceProgress.
type AnnounceProgressDeps struct {
	MilestoneStore MilestoneStoreForOrchestrator
	Notifier       NotifierForOrchestrator
	Now            func() time.Time
}

// ExecuteAnnounceProgress fires at most one celebration per mutation.
// Reaching the final page wins over any percentage threshold; below
// that, the lowest newly crossed threshold is announced and the rest
// wait for the next mutation. Each celebration fires once per goal
// lifetime, enforced by the milestone store.
// PRE: input.Goal is the active goal
// POST: at most one notification sent; the sent threshold is recorded
func ExecuteAnnounceProgress(ctx context.Context, input AnnounceProgressInput, deps AnnounceProgressDeps) error {
	if deps.Notifier == nil {
		return nil
	}
	total := input.Goal.Mushaf.TotalPages

	if input.CurrentPage >= total {
		fresh, err := deps.MilestoneStore.MarkSent(ctx, input.Goal.ID, CompletionThreshold, deps.Now())
		if err != nil {
			return err
		}
		if fresh {
			if err := deps.Notifier.GoalCompleted(ctx, total); err != nil {
				slog.Warn("completion_notify_failed", "error", err)
			}
			slog.Info("milestone_event", "event", "goal_completed", "goal_id", input.Goal.ID)
		}
		return nil
	}

	percent := input.Goal.PercentComplete(input.CurrentPage)
	for _, threshold := range MilestoneThresholds {
		if percent < threshold {
			continue
		}
		fresh, err := deps.MilestoneStore.MarkSent(ctx, input.Goal.ID, threshold, deps.Now())
		if err != nil {
			return err
		}
		if !fresh {
			continue
		}
		if err := deps.Notifier.MilestoneReached(ctx, threshold, input.CurrentPage, total); err != nil {
			slog.Warn("milestone_notify_failed", "threshold", threshold, "error", err)
		}
		slog.Info("milestone_event", "event", "milestone_reached", "goal_id", input.Goal.ID, "threshold", threshold)
		// One celebration per mutation; further thresholds wait.
		break
	}
	return nil
}
