package progress

import (
	"errors"
	"sort"
	"time"
)

// Domain errors
var (
	ErrPageOutOfRange = errors.New("page number is outside the mushaf")
	ErrInvertedRange  = errors.New("start page must not be greater than end page")
	ErrLogNotFound    = errors.New("reading log not found")
)

// Log is one recorded act of reading up to a page. Immutable once
// created except through an explicit edit.
type Log struct {
	ID         string
	PageNumber int       // page reached, 1..TotalPages
	OccurredAt time.Time
	PagesRead  int       // derived at creation: page reached minus previous position, floored at 1
	Notes      string
}

// Summary is the single aggregate position derived from the full log
// history. It is a cache: any value here can be discarded and rebuilt
// by Recompute without loss of information.
type Summary struct {
	CurrentPage    int
	LastUpdated    time.Time
	TotalPagesRead int
}

// Recompute derives the Summary from the complete log collection.
// This fold is the only authority for the aggregate position: logs are
// sorted by OccurredAt ascending, the last log's page wins, and
// PagesRead values are summed as recorded. With no logs the position
// is startPage-1.
// PRE: startPage >= 1
// POST: returned Summary satisfies the aggregate-position invariant
func Recompute(logs []Log, startPage int, now time.Time) Summary {
	sorted := SortedByTime(logs)

	currentPage := startPage - 1
	totalRead := 0
	for _, l := range sorted {
		currentPage = l.PageNumber
		totalRead += l.PagesRead
	}

	return Summary{
		CurrentPage:    currentPage,
		LastUpdated:    now,
		TotalPagesRead: totalRead,
	}
}

// SortedByTime returns a copy of logs ordered by OccurredAt ascending.
// The sort is stable so same-instant entries keep insertion order.
func SortedByTime(logs []Log) []Log {
	sorted := make([]Log, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OccurredAt.Before(sorted[j].OccurredAt)
	})
	return sorted
}

// PagesReadFrom returns the derived pages-read for reaching page from
// a previous position, floored at 1. Re-reading an earlier page still
// counts as one page of work.
func PagesReadFrom(previousPage, page int) int {
	read := page - previousPage
	if read < 1 {
		read = 1
	}
	return read
}

// ValidatePage checks that a page number is inside the mushaf.
// PRE: totalPages > 0
// POST: Returns nil if 1 <= page <= totalPages
func ValidatePage(page, totalPages int) error {
	if page < 1 || page > totalPages {
		return ErrPageOutOfRange
	}
	return nil
}

// ValidateRange checks an inclusive page range against the mushaf.
// POST: Returns nil if 1 <= startPage <= endPage <= totalPages
func ValidateRange(startPage, endPage, totalPages int) error {
	if startPage > endPage {
		return ErrInvertedRange
	}
	if startPage < 1 || endPage > totalPages {
		return ErrPageOutOfRange
	}
	return nil
}
