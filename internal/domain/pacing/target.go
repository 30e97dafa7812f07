package pacing

import (
	"time"

	"khatamflow/internal/domain/goal"
)

// ComputeDailyTarget derives how many pages must be read today.
// Formula: ceil(pages remaining / days remaining). Ceiling division
// never under-allocates: hitting the target every remaining day always
// meets or beats the deadline.
// PRE: totalPages > 0; currentPage >= 0
// POST: PagesNeeded*DaysRemaining >= PagesRemaining whenever DaysRemaining >= 1
func ComputeDailyTarget(totalPages, currentPage int, now, target time.Time, maghribTime string) goal.DailyTarget {
	pagesRemaining := totalPages - currentPage
	if pagesRemaining < 0 {
		pagesRemaining = 0
	}
	daysRemaining := DaysRemaining(now, target, maghribTime)

	// Already finished: nothing needed regardless of the deadline.
	if pagesRemaining == 0 {
		return goal.DailyTarget{
			DaysRemaining: daysRemaining,
			ComputedAt:    now,
		}
	}

	// Deadline is today or past: the whole remainder is due now.
	if daysRemaining == 0 {
		return goal.DailyTarget{
			PagesNeeded:    pagesRemaining,
			PagesRemaining: pagesRemaining,
			IsImpossible:   true,
			ComputedAt:     now,
		}
	}

	pagesNeeded := (pagesRemaining + daysRemaining - 1) / daysRemaining

	return goal.DailyTarget{
		PagesNeeded:    pagesNeeded,
		PagesRemaining: pagesRemaining,
		DaysRemaining:  daysRemaining,
		ComputedAt:     now,
	}
}
