package goal

import (
	"errors"
	"time"

	"khatamflow/internal/domain/mushaf"
)

// Domain errors
var (
	ErrZeroStartPage     = errors.New("start page must be at least 1")
	ErrStartBeyondMushaf = errors.New("start page is beyond the last page of the mushaf")
	ErrTargetNotAfter    = errors.New("target date must be after the start date")
)

// Goal is the immutable-once-set reading goal. It is created during
// onboarding and replaced wholesale only by a full reset.
type Goal struct {
	ID         string
	Mushaf     mushaf.Edition
	StartPage  int       // first page the reader intends to read
	StartDate  time.Time // when reading begins
	TargetDate time.Time // deadline for finishing the mushaf
	CreatedAt  time.Time
}

// Validate checks if the Goal has valid data.
// PRE: Goal struct is populated
// POST: Returns nil if valid, error otherwise
func (g *Goal) Validate() error {
	if err := g.Mushaf.Validate(); err != nil {
		return err
	}
	if g.StartPage < 1 {
		return ErrZeroStartPage
	}
	if g.StartPage > g.Mushaf.TotalPages {
		return ErrStartBeyondMushaf
	}
	if !g.TargetDate.After(g.StartDate) {
		return ErrTargetNotAfter
	}
	return nil
}

// PercentComplete returns the whole-number completion percentage for a
// given current page, floored.
// PRE: Mushaf.TotalPages > 0
// POST: returns percentage in 0..100 (not capped below 100 for overshoot)
func (g *Goal) PercentComplete(currentPage int) int {
	if g.Mushaf.TotalPages <= 0 {
		return 0
	}
	if currentPage < 0 {
		currentPage = 0
	}
	return (currentPage * 100) / g.Mushaf.TotalPages
}

// DailyTarget is the adaptively recomputed amount of reading required
// today to stay on schedule. Derived state: always overwritten from
// Goal plus the aggregate position, never edited directly.
type DailyTarget struct {
	PagesNeeded    int
	PagesRemaining int
	DaysRemaining  int
	IsImpossible   bool // deadline is today or past with pages still left
	ComputedAt     time.Time
}

// Projection estimates when the mushaf will be finished at the current
// pace. Computed on demand and never persisted.
type Projection struct {
	EstimatedCompletion time.Time
	AveragePagesPerDay  float64 // reported to one decimal place
	IsOnTrack           bool
	DaysAheadOrBehind   int
}
