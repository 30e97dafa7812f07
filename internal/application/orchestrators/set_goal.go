package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"khatamflow/internal/domain/goal"
	"khatamflow/internal/domain/mushaf"
)

// SetGoalInput carries input for the set goal orchestrator.
type SetGoalInput struct {
	MushafType  string // one of the mushaf.Type* constants
	CustomPages int    // page count when MushafType is custom
	StartPage   int
	StartDate   time.Time
	TargetDate  time.Time
}

// SetGoalDeps holds dependencies for SetGoal.
type SetGoalDeps struct {
	GoalStore      GoalStoreForOrchestrator
	LogStore       LogStoreForOrchestrator
	SummaryStore   SummaryStoreForOrchestrator
	TargetStore    TargetStoreForOrchestrator
	SettingsStore  SettingsStoreForOrchestrator
	MilestoneStore MilestoneStoreForOrchestrator
	GenerateID     func() string
	Now            func() time.Time
}

// SetGoalResult bundles the created goal and its first daily target.
type SetGoalResult struct {
	Goal   goal.Goal
	Target goal.DailyTarget
}

// ExecuteSetGoal creates (or replaces) the single active reading goal.
// Replacing a goal starts a fresh history: all logs, derived state, and
// celebrated milestones are wiped before the new goal is stored.
// PRE: input names a known mushaf type; TargetDate is after StartDate
// POST: Goal saved; log history empty; first daily target computed
func ExecuteSetGoal(ctx context.Context, input SetGoalInput, deps SetGoalDeps) (SetGoalResult, error) {
	var edition mushaf.Edition
	var err error
	if input.MushafType == mushaf.TypeCustom {
		edition, err = mushaf.Custom(input.CustomPages)
	} else {
		edition, err = mushaf.ByType(input.MushafType)
	}
	if err != nil {
		return SetGoalResult{}, err
	}

	now := deps.Now()
	startDate := input.StartDate
	if startDate.IsZero() {
		startDate = now
	}
	startPage := input.StartPage
	if startPage == 0 {
		startPage = 1
	}

	g := goal.Goal{
		ID:         deps.GenerateID(),
		Mushaf:     edition,
		StartPage:  startPage,
		StartDate:  startDate,
		TargetDate: input.TargetDate,
		CreatedAt:  now,
	}
	if err := g.Validate(); err != nil {
		return SetGoalResult{}, err
	}

	// New goal, fresh lifetime.
	if err := deps.LogStore.DeleteAll(ctx); err != nil {
		return SetGoalResult{}, err
	}
	if err := deps.MilestoneStore.Clear(ctx); err != nil {
		return SetGoalResult{}, err
	}
	if err := deps.GoalStore.Save(ctx, g); err != nil {
		return SetGoalResult{}, err
	}

	cutoff := maghribCutoff(ctx, deps.SettingsStore)
	_, target, err := refreshDerived(ctx, g, nil, now, cutoff, deps.SummaryStore, deps.TargetStore)
	if err != nil {
		return SetGoalResult{}, err
	}

	slog.Info("goal_event", "event", "goal_set", "goal_id", g.ID, "mushaf", edition.Type,
		"total_pages", edition.TotalPages, "start_page", g.StartPage, "target_date", g.TargetDate.Format("2006-01-02"))
	return SetGoalResult{Goal: g, Target: target}, nil
}
