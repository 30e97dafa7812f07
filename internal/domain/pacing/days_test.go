package pacing_test

import (
	"testing"
	"time"

	"khatamflow/internal/domain/pacing"
)

// TestParseCutoff tests HH:MM validation.
func TestParseCutoff(t *testing.T) {
	tests := []struct {
		in       string
		wantHour int
		wantMin  int
		wantErr  bool
	}{
		{in: "18:00", wantHour: 18, wantMin: 0},
		{in: "05:45", wantHour: 5, wantMin: 45},
		{in: "23:59", wantHour: 23, wantMin: 59},
		{in: "24:00", wantErr: true},
		{in: "18:60", wantErr: true},
		{in: "maghrib", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		h, m, err := pacing.ParseCutoff(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCutoff(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && (h != tt.wantHour || m != tt.wantMin) {
			t.Errorf("ParseCutoff(%q) = %d:%d, want %d:%d", tt.in, h, m, tt.wantHour, tt.wantMin)
		}
	}
}

// TestDaysRemaining tests the maghrib-bounded day count.
func TestDaysRemaining(t *testing.T) {
	target := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{
			name: "ten days out before maghrib",
			now:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			want: 10,
		},
		{
			name: "after maghrib the logical day advances",
			now:  time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC),
			want: 9,
		},
		{
			name: "exactly at maghrib counts as the next day",
			now:  time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC),
			want: 9,
		},
		{
			name: "one minute before maghrib still today",
			now:  time.Date(2026, 3, 1, 17, 59, 0, 0, time.UTC),
			want: 10,
		},
		{
			name: "target day itself",
			now:  time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "past deadline clamps to zero",
			now:  time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pacing.DaysRemaining(tt.now, target, "18:00")
			if got != tt.want {
				t.Errorf("DaysRemaining = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestDaysRemaining_MonotonicAcrossCutoffs tests that the count never
// increases as wall-clock time advances and drops by exactly 1 at
// each cutoff crossing.
func TestDaysRemaining_MonotonicAcrossCutoffs(t *testing.T) {
	target := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	prev := pacing.DaysRemaining(now, target, "18:00")
	for i := 0; i < 24*12; i++ { // hourly steps over twelve days
		next := now.Add(time.Hour)
		cur := pacing.DaysRemaining(next, target, "18:00")
		if cur > prev {
			t.Fatalf("days remaining increased from %d to %d at %v", prev, cur, next)
		}
		crossedCutoff := now.Hour() < 18 && next.Hour() >= 18
		if crossedCutoff && prev > 0 && cur != prev-1 {
			t.Fatalf("expected drop by 1 at cutoff crossing %v: %d -> %d", next, prev, cur)
		}
		if !crossedCutoff && cur != prev {
			t.Fatalf("unexpected change away from cutoff at %v: %d -> %d", next, prev, cur)
		}
		now, prev = next, cur
	}
}

// TestDaysRemaining_CustomCutoff tests a non-default maghrib time.
func TestDaysRemaining_CustomCutoff(t *testing.T) {
	target := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	before := time.Date(2026, 6, 1, 20, 59, 0, 0, time.UTC)
	after := time.Date(2026, 6, 1, 21, 0, 0, 0, time.UTC)

	if got := pacing.DaysRemaining(before, target, "21:00"); got != 9 {
		t.Errorf("before 21:00 cutoff: got %d, want 9", got)
	}
	if got := pacing.DaysRemaining(after, target, "21:00"); got != 8 {
		t.Errorf("at 21:00 cutoff: got %d, want 8", got)
	}
}

// TestDaysRemaining_MalformedCutoffFallsBack tests the 18:00 fallback.
func TestDaysRemaining_MalformedCutoffFallsBack(t *testing.T) {
	target := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)

	if got, want := pacing.DaysRemaining(now, target, "not-a-time"), 9; got != want {
		t.Errorf("malformed cutoff: got %d, want %d (18:00 fallback)", got, want)
	}
}

// TestSameLogicalDay tests logical-day membership.
func TestSameLogicalDay(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if !pacing.SameLogicalDay(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC), now, "18:00") {
		t.Error("same morning should be the same logical day")
	}
	if pacing.SameLogicalDay(time.Date(2026, 2, 28, 8, 0, 0, 0, time.UTC), now, "18:00") {
		t.Error("yesterday should not be the same logical day")
	}

	// After maghrib, "today" is tomorrow's calendar date.
	evening := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	if !pacing.SameLogicalDay(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), evening, "18:00") {
		t.Error("post-maghrib evening should share the logical day with tomorrow morning")
	}
}
