package pacing

import (
	"math"
	"time"

	"khatamflow/internal/domain/goal"
	"khatamflow/internal/domain/progress"
)

// Project estimates the completion date from the pace recorded in the
// log history. With no logs yet it falls back to the ideal pace the
// goal itself implies, so a first-run projection exists before any
// reading happens. Pages remaining is deliberately not clamped: an
// overshot goal projects as trivially reached.
// PRE: totalPages > 0; start is the goal's start date
// POST: AveragePagesPerDay is rounded to one decimal for display;
// the days-needed division ran at full precision
func Project(currentPage, totalPages int, target time.Time, logs []progress.Log, start, now time.Time) goal.Projection {
	pagesRemaining := totalPages - currentPage

	var averagePagesPerDay float64
	if len(logs) > 0 {
		totalRead := 0
		for _, l := range logs {
			totalRead += l.PagesRead
		}
		daysElapsed := fullDaysBetween(start, now)
		if daysElapsed < 1 {
			daysElapsed = 1
		}
		averagePagesPerDay = float64(totalRead) / float64(daysElapsed)
	} else {
		totalDays := fullDaysBetween(start, target)
		if totalDays < 1 {
			totalDays = 1
		}
		averagePagesPerDay = float64(totalPages) / float64(totalDays)
	}

	// All logged entries recorded zero net progress: clamp so the
	// division below stays finite.
	if averagePagesPerDay == 0 {
		averagePagesPerDay = 1
	}

	daysNeeded := int(math.Ceil(float64(pagesRemaining) / averagePagesPerDay))
	estimatedCompletion := now.AddDate(0, 0, daysNeeded)

	targetDaysRemaining := fullDaysBetween(now, target)
	if targetDaysRemaining < 0 {
		targetDaysRemaining = 0
	}
	daysAheadOrBehind := targetDaysRemaining - daysNeeded

	return goal.Projection{
		EstimatedCompletion: estimatedCompletion,
		AveragePagesPerDay:  math.Round(averagePagesPerDay*10) / 10,
		IsOnTrack:           daysAheadOrBehind >= 0,
		DaysAheadOrBehind:   daysAheadOrBehind,
	}
}
