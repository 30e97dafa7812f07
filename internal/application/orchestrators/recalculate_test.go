package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"khatamflow/internal/domain/settings"
)

func recalcEnv() (*logEnv, RecalculateDeps, *mockSettingsStore) {
	env := newLogEnv()
	s := newMockSettingsStore()
	deps := RecalculateDeps{
		GoalStore:     env.goals,
		LogStore:      env.logs,
		SummaryStore:  env.summaries,
		TargetStore:   env.targets,
		SettingsStore: s,
		Now:           fixedNow,
	}
	return env, deps, s
}

// TestExecuteRecalculateTarget_NoLogs verifies the first-run target.
func TestExecuteRecalculateTarget_NoLogs(t *testing.T) {
	_, deps, _ := recalcEnv()
	res, err := ExecuteRecalculateTarget(context.Background(), deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 604 pages over 10 logical days: ceil = 61.
	if res.Target.PagesNeeded != 61 {
		t.Errorf("PagesNeeded = %d, want 61", res.Target.PagesNeeded)
	}
	if res.Target.DaysRemaining != 10 {
		t.Errorf("DaysRemaining = %d, want 10", res.Target.DaysRemaining)
	}
}

// TestExecuteRecalculateTarget_SplitSumsToTarget verifies the prayer split.
func TestExecuteRecalculateTarget_SplitSumsToTarget(t *testing.T) {
	_, deps, _ := recalcEnv()
	res, err := ExecuteRecalculateTarget(context.Background(), deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Split) != 5 {
		t.Fatalf("split has %d slots, want 5", len(res.Split))
	}
	sum := 0
	for _, share := range res.Split {
		sum += share.Pages
	}
	if sum != res.Target.PagesNeeded {
		t.Errorf("split sums to %d, want %d", sum, res.Target.PagesNeeded)
	}
	// 61 over 5 slots front-loads the remainder: 13,12,12,12,12.
	if res.Split[0].Prayer != "Fajr" || res.Split[0].Pages != 13 {
		t.Errorf("first slot = %+v, want Fajr with 13 pages", res.Split[0])
	}
}

// TestExecuteRecalculateTarget_MaghribCutoff verifies a custom cutoff
// changes the logical day. At 10:00 with a 09:30 cutoff the logical day
// has already rolled over, so one fewer day remains.
func TestExecuteRecalculateTarget_MaghribCutoff(t *testing.T) {
	_, deps, s := recalcEnv()
	if err := s.Put(context.Background(), settings.KeyMaghribTime, "09:30"); err != nil {
		t.Fatal(err)
	}
	res, err := ExecuteRecalculateTarget(context.Background(), deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Target.DaysRemaining != 9 {
		t.Errorf("DaysRemaining = %d, want 9 after the cutoff rolled the day", res.Target.DaysRemaining)
	}
}

// TestExecuteRecalculateTarget_Impossible verifies the past-deadline case.
func TestExecuteRecalculateTarget_Impossible(t *testing.T) {
	env, deps, _ := recalcEnv()
	g := testGoal()
	g.TargetDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC) // today
	env.goals.goal = &g

	res, err := ExecuteRecalculateTarget(context.Background(), deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Target.IsImpossible {
		t.Error("expected IsImpossible with the deadline today")
	}
	// The whole remainder is due now.
	if res.Target.PagesNeeded != 604 {
		t.Errorf("PagesNeeded = %d, want 604", res.Target.PagesNeeded)
	}
}

// TestExecuteRecalculateTarget_NoGoal tests the missing-goal guard.
func TestExecuteRecalculateTarget_NoGoal(t *testing.T) {
	env, deps, _ := recalcEnv()
	env.goals.goal = nil
	_, err := ExecuteRecalculateTarget(context.Background(), deps)
	if !errors.Is(err, ErrNoGoal) {
		t.Errorf("expected ErrNoGoal, got %v", err)
	}
}
