package orchestrators

import (
	"context"
	"log/slog"
)

// ResetDeps holds dependencies for Reset.
type ResetDeps struct {
	GoalStore      GoalStoreForOrchestrator
	LogStore       LogStoreForOrchestrator
	SummaryStore   SummaryStoreForOrchestrator
	TargetStore    TargetStoreForOrchestrator
	MilestoneStore MilestoneStoreForOrchestrator
}

// ExecuteReset wipes the goal, the log history, all derived state, and
// the celebrated milestones. Settings survive: the app returns to
// onboarding with the reader's preferences intact.
// PRE: none (resetting without a goal is a no-op)
// POST: no goal, no logs, no derived state, fresh milestone lifetime
func ExecuteReset(ctx context.Context, deps ResetDeps) error {
	if err := deps.LogStore.DeleteAll(ctx); err != nil {
		return err
	}
	if err := deps.SummaryStore.Clear(ctx); err != nil {
		return err
	}
	if err := deps.TargetStore.Clear(ctx); err != nil {
		return err
	}
	if err := deps.MilestoneStore.Clear(ctx); err != nil {
		return err
	}
	if err := deps.GoalStore.Clear(ctx); err != nil {
		return err
	}

	slog.Info("goal_event", "event", "reset")
	return nil
}
