package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"khatamflow/internal/domain/goal"
	"khatamflow/internal/domain/progress"
)

// EditLogInput carries input for the edit log orchestrator. Nil fields
// are left unchanged.
type EditLogInput struct {
	LogID      string
	PageNumber *int
	Notes      *string
}

// EditLogDeps holds dependencies for EditLog.
type EditLogDeps struct {
	GoalStore     GoalStoreForOrchestrator
	LogStore      LogStoreForOrchestrator
	SummaryStore  SummaryStoreForOrchestrator
	TargetStore   TargetStoreForOrchestrator
	SettingsStore SettingsStoreForOrchestrator
	Now           func() time.Time
}

// EditLogResult bundles the edited log and the refreshed derived state.
type EditLogResult struct {
	Log     progress.Log
	Summary progress.Summary
	Target  goal.DailyTarget
}

// ExecuteEditLog updates a log's page number and/or notes. A page
// change re-derives the entry's pages-read against its temporal
// predecessor, then the aggregate position and daily target are
// rebuilt from the full collection.
// PRE: an active goal exists; the log exists; a new page is inside the mushaf
// POST: log updated; derived state refreshed
func ExecuteEditLog(ctx context.Context, input EditLogInput, deps EditLogDeps) (EditLogResult, error) {
	g, err := loadGoal(ctx, deps.GoalStore)
	if err != nil {
		return EditLogResult{}, err
	}

	logs, err := deps.LogStore.List(ctx)
	if err != nil {
		return EditLogResult{}, err
	}

	idx := -1
	for i := range logs {
		if logs[i].ID == input.LogID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return EditLogResult{}, progress.ErrLogNotFound
	}
	entry := logs[idx]

	if input.PageNumber != nil {
		if err := progress.ValidatePage(*input.PageNumber, g.Mushaf.TotalPages); err != nil {
			return EditLogResult{}, err
		}
		entry.PageNumber = *input.PageNumber
		entry.PagesRead = progress.PagesReadFrom(predecessorPage(logs, idx, g.StartPage), entry.PageNumber)
	}
	if input.Notes != nil {
		entry.Notes = *input.Notes
	}

	logs[idx] = entry
	if err := deps.LogStore.Save(ctx, entry); err != nil {
		return EditLogResult{}, err
	}

	cutoff := maghribCutoff(ctx, deps.SettingsStore)
	summary, target, err := refreshDerived(ctx, g, logs, deps.Now(), cutoff, deps.SummaryStore, deps.TargetStore)
	if err != nil {
		return EditLogResult{}, err
	}

	slog.Info("progress_event", "event", "log_edited", "log_id", entry.ID, "current_page", summary.CurrentPage)
	return EditLogResult{Log: entry, Summary: summary, Target: target}, nil
}

// predecessorPage returns the page of the log immediately before
// logs[idx] in time, or startPage-1 when it is the earliest entry.
func predecessorPage(logs []progress.Log, idx int, startPage int) int {
	target := logs[idx]
	page := startPage - 1
	var best time.Time
	for i := range logs {
		if i == idx {
			continue
		}
		if logs[i].OccurredAt.After(target.OccurredAt) {
			continue
		}
		if best.IsZero() || logs[i].OccurredAt.After(best) {
			best = logs[i].OccurredAt
			page = logs[i].PageNumber
		}
	}
	return page
}
