package pacing_test

import (
	"testing"
	"time"

	"khatamflow/internal/domain/pacing"
	"khatamflow/internal/domain/progress"
)

func projLog(page, read int, at time.Time) progress.Log {
	return progress.Log{ID: "l", PageNumber: page, PagesRead: read, OccurredAt: at}
}

// TestProject_WithLogs tests pace from recorded history.
func TestProject_WithLogs(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := start.AddDate(0, 0, 4) // four full days elapsed
	target := start.AddDate(0, 0, 30)

	// 80 pages over 4 days: 20 pages/day.
	logs := []progress.Log{
		projLog(20, 20, start.AddDate(0, 0, 1)),
		projLog(40, 20, start.AddDate(0, 0, 2)),
		projLog(60, 20, start.AddDate(0, 0, 3)),
		projLog(80, 20, start.AddDate(0, 0, 4)),
	}

	p := pacing.Project(80, 604, target, logs, start, now)
	if p.AveragePagesPerDay != 20.0 {
		t.Errorf("AveragePagesPerDay = %v, want 20.0", p.AveragePagesPerDay)
	}
	// 524 remaining at 20/day: 27 days needed, 26 days left to target.
	wantEst := now.AddDate(0, 0, 27)
	if !p.EstimatedCompletion.Equal(wantEst) {
		t.Errorf("EstimatedCompletion = %v, want %v", p.EstimatedCompletion, wantEst)
	}
	if p.DaysAheadOrBehind != -1 {
		t.Errorf("DaysAheadOrBehind = %d, want -1", p.DaysAheadOrBehind)
	}
	if p.IsOnTrack {
		t.Error("one day behind should not be on track")
	}
}

// TestProject_NoLogsUsesIdealPace tests the first-run fallback.
func TestProject_NoLogsUsesIdealPace(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	target := start.AddDate(0, 0, 10)

	p := pacing.Project(0, 604, target, nil, start, start)
	// Ideal pace 604/10 = 60.4 pages/day; ceil(604/60.4) = 10 days.
	if p.AveragePagesPerDay != 60.4 {
		t.Errorf("AveragePagesPerDay = %v, want 60.4", p.AveragePagesPerDay)
	}
	wantEst := start.AddDate(0, 0, 10)
	if !p.EstimatedCompletion.Equal(wantEst) {
		t.Errorf("EstimatedCompletion = %v, want %v", p.EstimatedCompletion, wantEst)
	}
	if !p.IsOnTrack {
		t.Error("ideal pace should be on track")
	}
	if p.DaysAheadOrBehind != 0 {
		t.Errorf("DaysAheadOrBehind = %d, want 0", p.DaysAheadOrBehind)
	}
}

// TestProject_AheadOfSchedule tests a reader beating the ideal pace.
func TestProject_AheadOfSchedule(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := start.AddDate(0, 0, 2)
	target := start.AddDate(0, 0, 60)

	// 100 pages in 2 days: 50/day; 504 left needs 11 days, 58 remain.
	logs := []progress.Log{projLog(100, 100, start.AddDate(0, 0, 2))}
	p := pacing.Project(100, 604, target, logs, start, now)
	if !p.IsOnTrack {
		t.Error("should be on track")
	}
	if p.DaysAheadOrBehind != 47 {
		t.Errorf("DaysAheadOrBehind = %d, want 47", p.DaysAheadOrBehind)
	}
}

// TestProject_ZeroPaceClampsToOne tests the divide-by-zero guard.
func TestProject_ZeroPaceClampsToOne(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := start.AddDate(0, 0, 5)
	target := start.AddDate(0, 0, 30)

	logs := []progress.Log{projLog(10, 0, start.AddDate(0, 0, 1))}
	p := pacing.Project(10, 604, target, logs, start, now)
	if p.AveragePagesPerDay != 1.0 {
		t.Errorf("AveragePagesPerDay = %v, want clamp to 1.0", p.AveragePagesPerDay)
	}
	wantEst := now.AddDate(0, 0, 594)
	if !p.EstimatedCompletion.Equal(wantEst) {
		t.Errorf("EstimatedCompletion = %v, want %v", p.EstimatedCompletion, wantEst)
	}
}

// TestProject_Overshoot tests that a finished goal projects as
// trivially reached rather than clamping.
func TestProject_Overshoot(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := start.AddDate(0, 0, 3)
	target := start.AddDate(0, 0, 30)

	logs := []progress.Log{projLog(604, 604, start.AddDate(0, 0, 3))}
	p := pacing.Project(610, 604, target, logs, start, now)
	if p.EstimatedCompletion.After(now) {
		t.Errorf("EstimatedCompletion = %v, want at or before now", p.EstimatedCompletion)
	}
	if !p.IsOnTrack {
		t.Error("a finished goal is on track")
	}
}

// TestProject_AverageRounding tests one-decimal display rounding with
// full-precision internal division.
func TestProject_AverageRounding(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := start.AddDate(0, 0, 3)
	target := start.AddDate(0, 0, 30)

	// 10 pages over 3 days = 3.333... -> 3.3 displayed.
	logs := []progress.Log{projLog(10, 10, start.AddDate(0, 0, 1))}
	p := pacing.Project(10, 604, target, logs, start, now)
	if p.AveragePagesPerDay != 3.3 {
		t.Errorf("AveragePagesPerDay = %v, want 3.3", p.AveragePagesPerDay)
	}
	// days needed uses the unrounded pace: ceil(594 / (10/3)) = 179,
	// not ceil(594/3.3) = 180.
	wantEst := now.AddDate(0, 0, 179)
	if !p.EstimatedCompletion.Equal(wantEst) {
		t.Errorf("EstimatedCompletion = %v, want %v (full-precision pace)", p.EstimatedCompletion, wantEst)
	}
}
