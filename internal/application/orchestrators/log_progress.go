package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"khatamflow/internal/domain/goal"
	"khatamflow/internal/domain/progress"
)

// LogProgressInput carries input for the log progress orchestrator.
type LogProgressInput struct {
	PageNumber int
	Notes      string
}

// LogProgressDeps holds dependencies for LogProgress.
type LogProgressDeps struct {
	GoalStore      GoalStoreForOrchestrator
	LogStore       LogStoreForOrchestrator
	SummaryStore   SummaryStoreForOrchestrator
	TargetStore    TargetStoreForOrchestrator
	SettingsStore  SettingsStoreForOrchestrator
	MilestoneStore MilestoneStoreForOrchestrator
	Notifier       NotifierForOrchestrator
	GenerateID     func() string
	Now            func() time.Time
}

// LogProgressResult bundles the created log and the refreshed derived state.
type LogProgressResult struct {
	Logs    []progress.Log
	Summary progress.Summary
	Target  goal.DailyTarget
}

// ExecuteLogProgress records reading up to a page.
// Pages-read is derived from the aggregate position at logging time
// and floored at 1, so re-reading an earlier page still counts as one
// page of work. The aggregate position and daily target are rebuilt
// from the full log collection afterwards.
// PRE: an active goal exists; PageNumber is inside the mushaf
// POST: log appended; derived state refreshed; milestones announced
func ExecuteLogProgress(ctx context.Context, input LogProgressInput, deps LogProgressDeps) (LogProgressResult, error) {
	g, err := loadGoal(ctx, deps.GoalStore)
	if err != nil {
		return LogProgressResult{}, err
	}
	if err := progress.ValidatePage(input.PageNumber, g.Mushaf.TotalPages); err != nil {
		return LogProgressResult{}, err
	}

	existing, err := deps.LogStore.List(ctx)
	if err != nil {
		return LogProgressResult{}, err
	}
	now := deps.Now()
	position := progress.Recompute(existing, g.StartPage, now)

	entry := progress.Log{
		ID:         deps.GenerateID(),
		PageNumber: input.PageNumber,
		OccurredAt: now,
		PagesRead:  progress.PagesReadFrom(position.CurrentPage, input.PageNumber),
		Notes:      input.Notes,
	}
	if err := deps.LogStore.Save(ctx, entry); err != nil {
		return LogProgressResult{}, err
	}

	return finishMutation(ctx, g, append(existing, entry), now, deps, "progress_logged", entry.ID)
}

// LogProgressRangeInput carries input for the ranged log orchestrator.
type LogProgressRangeInput struct {
	StartPage int
	EndPage   int
	Notes     string
}

// ExecuteLogProgressRange records a contiguous run of pages as one log
// per page. Entries get synthetic timestamps one millisecond apart so
// the fold keeps them in page order; the notes land on the final entry
// only, mirroring how a reader annotates the end of a session.
// PRE: an active goal exists; 1 <= StartPage <= EndPage <= TotalPages
// POST: one log per page appended; derived state refreshed
func ExecuteLogProgressRange(ctx context.Context, input LogProgressRangeInput, deps LogProgressDeps) (LogProgressResult, error) {
	g, err := loadGoal(ctx, deps.GoalStore)
	if err != nil {
		return LogProgressResult{}, err
	}
	if err := progress.ValidateRange(input.StartPage, input.EndPage, g.Mushaf.TotalPages); err != nil {
		return LogProgressResult{}, err
	}

	existing, err := deps.LogStore.List(ctx)
	if err != nil {
		return LogProgressResult{}, err
	}
	now := deps.Now()
	position := progress.Recompute(existing, g.StartPage, now)

	logs := existing
	prev := position.CurrentPage
	for page := input.StartPage; page <= input.EndPage; page++ {
		entry := progress.Log{
			ID:         deps.GenerateID(),
			PageNumber: page,
			OccurredAt: now.Add(time.Duration(page-input.StartPage) * time.Millisecond),
			PagesRead:  progress.PagesReadFrom(prev, page),
		}
		if page == input.EndPage {
			entry.Notes = input.Notes
		}
		if err := deps.LogStore.Save(ctx, entry); err != nil {
			return LogProgressResult{}, err
		}
		logs = append(logs, entry)
		prev = page
	}

	return finishMutation(ctx, g, logs, now, deps, "progress_range_logged", "")
}

// finishMutation refreshes derived state after a log mutation and
// fires milestone announcements best-effort.
func finishMutation(ctx context.Context, g goal.Goal, logs []progress.Log, now time.Time,
	deps LogProgressDeps, event, logID string) (LogProgressResult, error) {

	cutoff := maghribCutoff(ctx, deps.SettingsStore)
	summary, target, err := refreshDerived(ctx, g, logs, now, cutoff, deps.SummaryStore, deps.TargetStore)
	if err != nil {
		return LogProgressResult{}, err
	}

	// Announcements never fail the mutation.
	if err := ExecuteAnnounceProgress(ctx, AnnounceProgressInput{Goal: g, CurrentPage: summary.CurrentPage},
		AnnounceProgressDeps{MilestoneStore: deps.MilestoneStore, Notifier: deps.Notifier, Now: func() time.Time { return now }}); err != nil {
		slog.Warn("announce_failed", "error", err)
	}

	slog.Info("progress_event", "event", event, "log_id", logID,
		"current_page", summary.CurrentPage, "pages_needed", target.PagesNeeded)
	return LogProgressResult{Logs: progress.SortedByTime(logs), Summary: summary, Target: target}, nil
}
