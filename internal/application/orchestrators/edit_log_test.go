package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"khatamflow/internal/domain/progress"
)

func editEnv() (*logEnv, EditLogDeps) {
	env := newLogEnv()
	deps := EditLogDeps{
		GoalStore:     env.goals,
		LogStore:      env.logs,
		SummaryStore:  env.summaries,
		TargetStore:   env.targets,
		SettingsStore: newMockSettingsStore(),
		Now:           fixedNow,
	}
	return env, deps
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// seedLogs inserts logs at the given pages, one minute apart.
func seedLogs(env *logEnv, pages ...int) {
	base := time.Date(2026, 3, 9, 20, 0, 0, 0, time.UTC)
	prev := 0
	for i, page := range pages {
		env.logs.logs = append(env.logs.logs, progress.Log{
			ID:         env.deps.GenerateID(),
			PageNumber: page,
			OccurredAt: base.Add(time.Duration(i) * time.Minute),
			PagesRead:  progress.PagesReadFrom(prev, page),
		})
		prev = page
	}
}

// TestExecuteEditLog_PageChange verifies pages-read is re-derived from
// the temporal predecessor.
func TestExecuteEditLog_PageChange(t *testing.T) {
	env, deps := editEnv()
	seedLogs(env, 10, 20, 30) // ids test-id-001..003

	res, err := ExecuteEditLog(context.Background(), EditLogInput{
		LogID:      "test-id-002",
		PageNumber: intPtr(25),
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Predecessor is the page-10 log: 25 - 10 = 15.
	if res.Log.PagesRead != 15 {
		t.Errorf("PagesRead = %d, want 15", res.Log.PagesRead)
	}
	if res.Log.PageNumber != 25 {
		t.Errorf("PageNumber = %d, want 25", res.Log.PageNumber)
	}
	// Position still comes from the latest log.
	if res.Summary.CurrentPage != 30 {
		t.Errorf("CurrentPage = %d, want 30", res.Summary.CurrentPage)
	}
}

// TestExecuteEditLog_EarliestLog verifies the predecessor of the first
// log is the position before any reading.
func TestExecuteEditLog_EarliestLog(t *testing.T) {
	env, deps := editEnv()
	seedLogs(env, 10, 20)

	res, err := ExecuteEditLog(context.Background(), EditLogInput{
		LogID:      "test-id-001",
		PageNumber: intPtr(4),
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Start page 1 means the pre-reading position is 0: 4 - 0 = 4.
	if res.Log.PagesRead != 4 {
		t.Errorf("PagesRead = %d, want 4", res.Log.PagesRead)
	}
}

// TestExecuteEditLog_NotesOnly verifies a notes edit leaves pacing data alone.
func TestExecuteEditLog_NotesOnly(t *testing.T) {
	env, deps := editEnv()
	seedLogs(env, 10, 20)

	res, err := ExecuteEditLog(context.Background(), EditLogInput{
		LogID: "test-id-002",
		Notes: strPtr("corrected note"),
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Log.Notes != "corrected note" {
		t.Errorf("Notes = %q, want %q", res.Log.Notes, "corrected note")
	}
	if res.Log.PageNumber != 20 || res.Log.PagesRead != 10 {
		t.Errorf("page data changed on a notes-only edit: page=%d read=%d", res.Log.PageNumber, res.Log.PagesRead)
	}
}

// TestExecuteEditLog_NotFound tests the unknown-log guard.
func TestExecuteEditLog_NotFound(t *testing.T) {
	_, deps := editEnv()
	_, err := ExecuteEditLog(context.Background(), EditLogInput{LogID: "nope", Notes: strPtr("x")}, deps)
	if !errors.Is(err, progress.ErrLogNotFound) {
		t.Errorf("expected ErrLogNotFound, got %v", err)
	}
}

// TestExecuteEditLog_PageOutOfRange tests page validation on edit.
func TestExecuteEditLog_PageOutOfRange(t *testing.T) {
	env, deps := editEnv()
	seedLogs(env, 10)
	_, err := ExecuteEditLog(context.Background(), EditLogInput{LogID: "test-id-001", PageNumber: intPtr(700)}, deps)
	if !errors.Is(err, progress.ErrPageOutOfRange) {
		t.Errorf("expected ErrPageOutOfRange, got %v", err)
	}
}
