package goal_test

import (
	"testing"
	"time"

	"khatamflow/internal/domain/goal"
	"khatamflow/internal/domain/mushaf"
)

var madinah = mushaf.Edition{Type: mushaf.TypeMadinah, Name: "Madinah Mushaf", TotalPages: 604}

// TestGoal_Validate tests validation of Goal.
func TestGoal_Validate(t *testing.T) {
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	target := start.AddDate(0, 0, 30)

	tests := []struct {
		name    string
		g       goal.Goal
		wantErr error
	}{
		{
			name: "valid",
			g:    goal.Goal{ID: "g1", Mushaf: madinah, StartPage: 1, StartDate: start, TargetDate: target},
		},
		{
			name: "valid mid-mushaf start",
			g:    goal.Goal{ID: "g2", Mushaf: madinah, StartPage: 302, StartDate: start, TargetDate: target},
		},
		{
			name:    "zero start page",
			g:       goal.Goal{ID: "g3", Mushaf: madinah, StartPage: 0, StartDate: start, TargetDate: target},
			wantErr: goal.ErrZeroStartPage,
		},
		{
			name:    "start page beyond mushaf",
			g:       goal.Goal{ID: "g4", Mushaf: madinah, StartPage: 605, StartDate: start, TargetDate: target},
			wantErr: goal.ErrStartBeyondMushaf,
		},
		{
			name:    "target before start",
			g:       goal.Goal{ID: "g5", Mushaf: madinah, StartPage: 1, StartDate: target, TargetDate: start},
			wantErr: goal.ErrTargetNotAfter,
		},
		{
			name:    "target equals start",
			g:       goal.Goal{ID: "g6", Mushaf: madinah, StartPage: 1, StartDate: start, TargetDate: start},
			wantErr: goal.ErrTargetNotAfter,
		},
		{
			name:    "invalid mushaf",
			g:       goal.Goal{ID: "g7", Mushaf: mushaf.Edition{Type: mushaf.TypeCustom}, StartPage: 1, StartDate: start, TargetDate: target},
			wantErr: mushaf.ErrZeroPages,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			if err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestGoal_PercentComplete tests floored percentage calculation.
func TestGoal_PercentComplete(t *testing.T) {
	g := goal.Goal{Mushaf: madinah}

	tests := []struct {
		page int
		want int
	}{
		{page: 0, want: 0},
		{page: 150, want: 24},  // 150/604 = 24.8% floors to 24
		{page: 151, want: 25},  // first page at or past the quarter
		{page: 302, want: 50},
		{page: 604, want: 100},
		{page: -3, want: 0},
	}

	for _, tt := range tests {
		if got := g.PercentComplete(tt.page); got != tt.want {
			t.Errorf("PercentComplete(%d) = %d, want %d", tt.page, got, tt.want)
		}
	}
}
