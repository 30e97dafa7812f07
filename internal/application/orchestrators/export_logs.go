package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"khatamflow/internal/domain/export"
)

// ExportLogsDeps holds dependencies for ExportLogs.
type ExportLogsDeps struct {
	GoalStore GoalStoreForOrchestrator
	LogStore  LogStoreForOrchestrator
	Now       func() time.Time
}

// ExportLogsResult bundles the CSV document with its download metadata.
type ExportLogsResult struct {
	CSV      string
	Filename string
	Summary  export.Summary
}

// ExecuteExportLogs serializes the full reading history to CSV.
// PRE: an active goal exists; at least one log recorded
// POST: none (read-only)
func ExecuteExportLogs(ctx context.Context, deps ExportLogsDeps) (ExportLogsResult, error) {
	g, err := loadGoal(ctx, deps.GoalStore)
	if err != nil {
		return ExportLogsResult{}, err
	}

	logs, err := deps.LogStore.List(ctx)
	if err != nil {
		return ExportLogsResult{}, err
	}

	now := deps.Now()
	csvDoc, err := export.ToCSV(export.Data{Goal: &g, Logs: logs}, now)
	if err != nil {
		return ExportLogsResult{}, err
	}

	slog.Info("export_event", "event", "logs_exported", "log_count", len(logs))
	return ExportLogsResult{
		CSV:      csvDoc,
		Filename: export.Filename(now),
		Summary:  export.Summarize(logs),
	}, nil
}
