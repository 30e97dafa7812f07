package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"khatamflow/internal/domain/goal"
	"khatamflow/internal/domain/progress"
)

// Domain errors.
var ErrNoLogs = errors.New("no reading logs to export")

// Data bundles everything the CSV export includes.
type Data struct {
	Goal *goal.Goal
	Logs []progress.Log
}

// Summary holds headline statistics for the export preview.
type Summary struct {
	TotalLogs  int
	TotalPages int
	FirstLog   time.Time
	LastLog    time.Time
}

// Summarize computes the preview statistics for a log collection.
// PRE: none
// POST: zero Summary for an empty collection
func Summarize(logs []progress.Log) Summary {
	if len(logs) == 0 {
		return Summary{}
	}
	sorted := progress.SortedByTime(logs)
	total := 0
	for _, l := range logs {
		total += l.PagesRead
	}
	return Summary{
		TotalLogs:  len(logs),
		TotalPages: total,
		FirstLog:   sorted[0].OccurredAt,
		LastLog:    sorted[len(sorted)-1].OccurredAt,
	}
}

// ToCSV serializes the reading history. A comment block with the goal
// metadata precedes the header row; logs are ordered by timestamp.
// PRE: none
// POST: Returns the CSV document or ErrNoLogs for an empty history
func ToCSV(d Data, now time.Time) (string, error) {
	if len(d.Logs) == 0 {
		return "", ErrNoLogs
	}

	var b strings.Builder
	if d.Goal != nil {
		fmt.Fprintf(&b, "# KhatamFlow Export\n")
		fmt.Fprintf(&b, "# Mushaf: %s (%d pages)\n", d.Goal.Mushaf.Name, d.Goal.Mushaf.TotalPages)
		fmt.Fprintf(&b, "# Target Date: %s\n", d.Goal.TargetDate.Format("2006-01-02"))
		fmt.Fprintf(&b, "# Start Page: %d\n", d.Goal.StartPage)
		fmt.Fprintf(&b, "# Export Date: %s\n", now.Format("2006-01-02 15:04:05"))
		b.WriteString("\n")
	}

	w := csv.NewWriter(&b)
	if err := w.Write([]string{"Date", "Time", "Page Number", "Pages Read", "Notes", "Timestamp"}); err != nil {
		return "", err
	}
	for _, l := range progress.SortedByTime(d.Logs) {
		row := []string{
			l.OccurredAt.Format("2006-01-02"),
			l.OccurredAt.Format("15:04:05"),
			strconv.Itoa(l.PageNumber),
			strconv.Itoa(l.PagesRead),
			l.Notes,
			strconv.FormatInt(l.OccurredAt.UnixMilli(), 10),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return b.String(), nil
}

// Filename returns the dated download filename for an export.
func Filename(now time.Time) string {
	return "khatamflow-export-" + now.Format("2006-01-02") + ".csv"
}
