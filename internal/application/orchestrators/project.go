package orchestrators

import (
	"context"
	"time"

	"khatamflow/internal/domain/goal"
	"khatamflow/internal/domain/pacing"
	"khatamflow/internal/domain/progress"
)

// ProjectDeps holds dependencies for Project.
type ProjectDeps struct {
	GoalStore GoalStoreForOrchestrator
	LogStore  LogStoreForOrchestrator
	Now       func() time.Time
}

// ExecuteProject estimates the completion date at the recorded pace.
// The projection is computed on demand and never persisted.
// PRE: an active goal exists
// POST: none (read-only)
func ExecuteProject(ctx context.Context, deps ProjectDeps) (goal.Projection, error) {
	g, err := loadGoal(ctx, deps.GoalStore)
	if err != nil {
		return goal.Projection{}, err
	}

	logs, err := deps.LogStore.List(ctx)
	if err != nil {
		return goal.Projection{}, err
	}

	now := deps.Now()
	position := progress.Recompute(logs, g.StartPage, now)
	return pacing.Project(position.CurrentPage, g.Mushaf.TotalPages, g.TargetDate, logs, g.StartDate, now), nil
}
