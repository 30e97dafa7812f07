package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"khatamflow/internal/adapters/http/middleware"
	"khatamflow/internal/application/orchestrators"
	"khatamflow/internal/domain/access"
	"khatamflow/internal/domain/export"
	goalDomain "khatamflow/internal/domain/goal"
	"khatamflow/internal/domain/mushaf"
	"khatamflow/internal/domain/pacing"
	progressDomain "khatamflow/internal/domain/progress"
	settingsDomain "khatamflow/internal/domain/settings"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	writeJSONError(w, http.StatusInternalServerError, "internal server error")
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps domain errors to HTTP statuses. Unknown errors
// are treated as internal.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orchestrators.ErrNoGoal),
		errors.Is(err, progressDomain.ErrLogNotFound),
		errors.Is(err, export.ErrNoLogs):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, mushaf.ErrUnknownType),
		errors.Is(err, mushaf.ErrZeroPages),
		errors.Is(err, goalDomain.ErrZeroStartPage),
		errors.Is(err, goalDomain.ErrStartBeyondMushaf),
		errors.Is(err, goalDomain.ErrTargetNotAfter),
		errors.Is(err, progressDomain.ErrPageOutOfRange),
		errors.Is(err, progressDomain.ErrInvertedRange),
		errors.Is(err, pacing.ErrBadCutoff),
		errors.Is(err, settingsDomain.ErrUnknownKey),
		errors.Is(err, settingsDomain.ErrInvalidTheme),
		errors.Is(err, settingsDomain.ErrInvalidBool):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		internalError(w, err)
	}
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// renderNotes converts a log's markdown notes to sanitized HTML.
// Empty notes stay empty rather than becoming an empty paragraph.
func renderNotes(md string) string {
	if md == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return ""
	}
	return strings.TrimSpace(buf.String())
}

// protected requires a session when a passphrase is configured. With
// no passphrase set the app is open, matching a private single-user
// deployment on a trusted network.
func protected(h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hash, err := stores.SettingsStore.Get(r.Context(), access.HashKey)
		if err != nil {
			internalError(w, err)
			return
		}
		if hash != "" {
			if _, ok := middleware.GetSessionFromContext(r.Context()); !ok {
				writeJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}
		}
		h(w, r)
	})
}

// registerRoutes wires all API routes onto the mux.
func registerRoutes(mux *http.ServeMux) {
	mux.Handle("/api/session", http.HandlerFunc(handleSession))
	mux.Handle("/api/goal", protected(handleGoal))
	mux.Handle("/api/logs", protected(handleLogs))
	mux.Handle("/api/logs/", protected(handleLogByID))
	mux.Handle("/api/daily-target", protected(handleDailyTarget))
	mux.Handle("/api/projection", protected(handleProjection))
	mux.Handle("/api/settings", protected(handleSettings))
	mux.Handle("/api/export", protected(handleExport))
	mux.Handle("/api/stats", protected(handleStats))
	mux.Handle("/api/perf", protected(handlePerf))
}

// --- JSON shapes ---

type goalJSON struct {
	ID         string `json:"id"`
	MushafType string `json:"mushaf_type"`
	MushafName string `json:"mushaf_name"`
	TotalPages int    `json:"total_pages"`
	StartPage  int    `json:"start_page"`
	StartDate  string `json:"start_date"`
	TargetDate string `json:"target_date"`
	CreatedAt  string `json:"created_at"`
}

func toGoalJSON(g goalDomain.Goal) goalJSON {
	return goalJSON{
		ID:         g.ID,
		MushafType: g.Mushaf.Type,
		MushafName: g.Mushaf.Name,
		TotalPages: g.Mushaf.TotalPages,
		StartPage:  g.StartPage,
		StartDate:  g.StartDate.Format(time.RFC3339),
		TargetDate: g.TargetDate.Format(time.RFC3339),
		CreatedAt:  g.CreatedAt.Format(time.RFC3339),
	}
}

type logJSON struct {
	ID         string `json:"id"`
	PageNumber int    `json:"page_number"`
	OccurredAt string `json:"occurred_at"`
	PagesRead  int    `json:"pages_read"`
	Notes      string `json:"notes"`
	NotesHTML  string `json:"notes_html,omitempty"`
}

func toLogJSON(l progressDomain.Log) logJSON {
	return logJSON{
		ID:         l.ID,
		PageNumber: l.PageNumber,
		OccurredAt: l.OccurredAt.Format(time.RFC3339Nano),
		PagesRead:  l.PagesRead,
		Notes:      l.Notes,
		NotesHTML:  renderNotes(l.Notes),
	}
}

func toLogListJSON(logs []progressDomain.Log) []logJSON {
	out := make([]logJSON, len(logs))
	for i, l := range logs {
		out[i] = toLogJSON(l)
	}
	return out
}

type summaryJSON struct {
	CurrentPage     int    `json:"current_page"`
	TotalPagesRead  int    `json:"total_pages_read"`
	LastUpdated     string `json:"last_updated"`
	PercentComplete int    `json:"percent_complete"`
}

func toSummaryJSON(s progressDomain.Summary, g goalDomain.Goal) summaryJSON {
	return summaryJSON{
		CurrentPage:     s.CurrentPage,
		TotalPagesRead:  s.TotalPagesRead,
		LastUpdated:     s.LastUpdated.Format(time.RFC3339),
		PercentComplete: g.PercentComplete(s.CurrentPage),
	}
}

type targetJSON struct {
	PagesNeeded    int                  `json:"pages_needed"`
	PagesRemaining int                  `json:"pages_remaining"`
	DaysRemaining  int                  `json:"days_remaining"`
	IsImpossible   bool                 `json:"is_impossible"`
	ComputedAt     string               `json:"computed_at"`
	PrayerSplit    []pacing.PrayerShare `json:"prayer_split"`
}

func toTargetJSON(t goalDomain.DailyTarget, split []pacing.PrayerShare) targetJSON {
	return targetJSON{
		PagesNeeded:    t.PagesNeeded,
		PagesRemaining: t.PagesRemaining,
		DaysRemaining:  t.DaysRemaining,
		IsImpossible:   t.IsImpossible,
		ComputedAt:     t.ComputedAt.Format(time.RFC3339),
		PrayerSplit:    split,
	}
}

// --- session ---

// handleSession handles login (POST) and logout (DELETE).
// With no passphrase configured, POST still issues a session so clients
// can use one code path.
func handleSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodPost:
		var input struct {
			Passphrase string `json:"passphrase"`
		}
		if err := strictDecode(r, &input); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request")
			return
		}
		hash, err := stores.SettingsStore.Get(ctx, access.HashKey)
		if err != nil {
			internalError(w, err)
			return
		}
		if hash != "" {
			if err := access.CheckPassphrase(hash, input.Passphrase); err != nil {
				slog.Warn("login_failed", "ip", r.RemoteAddr)
				writeJSONError(w, http.StatusUnauthorized, "incorrect passphrase")
				return
			}
		}
		token, err := sessions.Create()
		if err != nil {
			internalError(w, err)
			return
		}
		middleware.SetSessionCookie(w, token)
		slog.Info("session_event", "event", "login")
		writeJSON(w, http.StatusCreated, map[string]bool{"ok": true})

	case http.MethodDelete:
		if cookie, err := r.Cookie("khatam_session"); err == nil {
			sessions.Delete(cookie.Value)
		}
		middleware.ClearSessionCookie(w)
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// --- goal ---

// handleGoal handles GET (status), POST (set goal) and DELETE (reset).
func handleGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		res, err := orchestrators.ExecuteRecalculateTarget(ctx, recalcDeps())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		g, err := stores.GoalStore.Get(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"goal":    toGoalJSON(g),
			"summary": toSummaryJSON(res.Summary, g),
			"target":  toTargetJSON(res.Target, res.Split),
		})

	case http.MethodPost:
		var input struct {
			MushafType  string `json:"mushaf_type"`
			CustomPages int    `json:"custom_pages"`
			StartPage   int    `json:"start_page"`
			StartDate   string `json:"start_date"`
			TargetDate  string `json:"target_date"`
		}
		if err := strictDecode(r, &input); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request")
			return
		}
		targetDate, err := parseDate(input.TargetDate)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "target_date must be YYYY-MM-DD or RFC 3339")
			return
		}
		var startDate time.Time
		if input.StartDate != "" {
			if startDate, err = parseDate(input.StartDate); err != nil {
				writeJSONError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD or RFC 3339")
				return
			}
		}
		res, err := orchestrators.ExecuteSetGoal(ctx, orchestrators.SetGoalInput{
			MushafType:  input.MushafType,
			CustomPages: input.CustomPages,
			StartPage:   input.StartPage,
			StartDate:   startDate,
			TargetDate:  targetDate,
		}, orchestrators.SetGoalDeps{
			GoalStore:      stores.GoalStore,
			LogStore:       stores.LogStore,
			SummaryStore:   stores.SummaryStore,
			TargetStore:    stores.TargetStore,
			SettingsStore:  stores.SettingsStore,
			MilestoneStore: stores.MilestoneStore,
			GenerateID:     generateID,
			Now:            timeNow,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"goal":   toGoalJSON(res.Goal),
			"target": toTargetJSON(res.Target, pacing.SplitByPrayers(res.Target.PagesNeeded)),
		})

	case http.MethodDelete:
		err := orchestrators.ExecuteReset(ctx, orchestrators.ResetDeps{
			GoalStore:      stores.GoalStore,
			LogStore:       stores.LogStore,
			SummaryStore:   stores.SummaryStore,
			TargetStore:    stores.TargetStore,
			MilestoneStore: stores.MilestoneStore,
		})
		if err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// --- logs ---

func logDeps() orchestrators.LogProgressDeps {
	return orchestrators.LogProgressDeps{
		GoalStore:      stores.GoalStore,
		LogStore:       stores.LogStore,
		SummaryStore:   stores.SummaryStore,
		TargetStore:    stores.TargetStore,
		SettingsStore:  stores.SettingsStore,
		MilestoneStore: stores.MilestoneStore,
		Notifier:       notifier,
		GenerateID:     generateID,
		Now:            timeNow,
	}
}

// handleLogs handles GET (history) and POST (log a page or a range).
func handleLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		logs, err := stores.LogStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"logs": toLogListJSON(progressDomain.SortedByTime(logs)),
		})

	case http.MethodPost:
		var input struct {
			Page      int    `json:"page"`
			StartPage int    `json:"start_page"`
			EndPage   int    `json:"end_page"`
			Notes     string `json:"notes"`
		}
		if err := strictDecode(r, &input); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request")
			return
		}

		var res orchestrators.LogProgressResult
		var err error
		if input.StartPage != 0 || input.EndPage != 0 {
			res, err = orchestrators.ExecuteLogProgressRange(ctx, orchestrators.LogProgressRangeInput{
				StartPage: input.StartPage,
				EndPage:   input.EndPage,
				Notes:     input.Notes,
			}, logDeps())
		} else {
			res, err = orchestrators.ExecuteLogProgress(ctx, orchestrators.LogProgressInput{
				PageNumber: input.Page,
				Notes:      input.Notes,
			}, logDeps())
		}
		if err != nil {
			writeDomainError(w, err)
			return
		}
		g, err := stores.GoalStore.Get(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"logs":    toLogListJSON(res.Logs),
			"summary": toSummaryJSON(res.Summary, g),
			"target":  toTargetJSON(res.Target, pacing.SplitByPrayers(res.Target.PagesNeeded)),
		})

	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// handleLogByID handles PATCH (edit) and DELETE (cascade delete) on /api/logs/{id}.
func handleLogByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := strings.TrimPrefix(r.URL.Path, "/api/logs/")
	if id == "" || strings.Contains(id, "/") {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodPatch:
		var input struct {
			Page  *int    `json:"page"`
			Notes *string `json:"notes"`
		}
		if err := strictDecode(r, &input); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request")
			return
		}
		res, err := orchestrators.ExecuteEditLog(ctx, orchestrators.EditLogInput{
			LogID:      id,
			PageNumber: input.Page,
			Notes:      input.Notes,
		}, orchestrators.EditLogDeps{
			GoalStore:     stores.GoalStore,
			LogStore:      stores.LogStore,
			SummaryStore:  stores.SummaryStore,
			TargetStore:   stores.TargetStore,
			SettingsStore: stores.SettingsStore,
			Now:           timeNow,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"log": toLogJSON(res.Log),
		})

	case http.MethodDelete:
		res, err := orchestrators.ExecuteDeleteLog(ctx, orchestrators.DeleteLogInput{LogID: id}, orchestrators.DeleteLogDeps{
			GoalStore:     stores.GoalStore,
			LogStore:      stores.LogStore,
			SummaryStore:  stores.SummaryStore,
			TargetStore:   stores.TargetStore,
			SettingsStore: stores.SettingsStore,
			Now:           timeNow,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"deleted": res.Deleted,
			"logs":    toLogListJSON(res.Logs),
		})

	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// --- pacing ---

func recalcDeps() orchestrators.RecalculateDeps {
	return orchestrators.RecalculateDeps{
		GoalStore:     stores.GoalStore,
		LogStore:      stores.LogStore,
		SummaryStore:  stores.SummaryStore,
		TargetStore:   stores.TargetStore,
		SettingsStore: stores.SettingsStore,
		Now:           timeNow,
	}
}

// handleDailyTarget recomputes and returns today's reading target.
// Recomputation happens on every read: the same position on a later
// logical day must yield a fresh target.
func handleDailyTarget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	res, err := orchestrators.ExecuteRecalculateTarget(r.Context(), recalcDeps())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTargetJSON(res.Target, res.Split))
}

// handleProjection returns the estimated completion at the current pace.
func handleProjection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	p, err := orchestrators.ExecuteProject(r.Context(), orchestrators.ProjectDeps{
		GoalStore: stores.GoalStore,
		LogStore:  stores.LogStore,
		Now:       timeNow,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"estimated_completion":  p.EstimatedCompletion.Format("2006-01-02"),
		"average_pages_per_day": p.AveragePagesPerDay,
		"is_on_track":           p.IsOnTrack,
		"days_ahead_or_behind":  p.DaysAheadOrBehind,
	})
}

// --- settings ---

// settingsKeys are the keys exposed over the API, with their defaults
// applied when unset. The passphrase hash is deliberately absent.
var settingsKeys = []string{
	settingsDomain.KeyTheme,
	settingsDomain.KeyMaghribTime,
	settingsDomain.KeyNotificationsEnabled,
	settingsDomain.KeyNotifyEmail,
}

// handleSettings handles GET (all settings) and PUT (update one).
func handleSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		out := make(map[string]string, len(settingsKeys))
		for _, key := range settingsKeys {
			v, err := stores.SettingsStore.Get(ctx, key)
			if err != nil {
				internalError(w, err)
				return
			}
			out[key] = v
		}
		writeJSON(w, http.StatusOK, out)

	case http.MethodPut:
		var input struct {
			Key   string `json:"key"`
			Value string `json:"value"`
		}
		if err := strictDecode(r, &input); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request")
			return
		}
		err := orchestrators.ExecuteUpdateSetting(ctx, orchestrators.UpdateSettingInput{
			Key:   input.Key,
			Value: input.Value,
		}, orchestrators.UpdateSettingDeps{SettingsStore: stores.SettingsStore})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})

	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// --- export ---

// handleExport streams the reading history as a CSV download.
func handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	res, err := orchestrators.ExecuteExportLogs(r.Context(), orchestrators.ExportLogsDeps{
		GoalStore: stores.GoalStore,
		LogStore:  stores.LogStore,
		Now:       timeNow,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
	w.Write([]byte(res.CSV))
}

// --- stats ---

// handleStats returns the reading-history preview: log count, pages
// read, and the date range covered.
func handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	logs, err := stores.LogStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	s := export.Summarize(logs)
	out := map[string]any{
		"total_logs":  s.TotalLogs,
		"total_pages": s.TotalPages,
	}
	if s.TotalLogs > 0 {
		out["first_log"] = s.FirstLog.Format(time.RFC3339)
		out["last_log"] = s.LastLog.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, out)
}

// handlePerf returns aggregated request and query timings for the
// last hour.
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	if perfCollector == nil {
		writeJSONError(w, http.StatusNotFound, "timing collection disabled")
		return
	}
	snap := perfCollector.Snapshot(timeNow().Add(-time.Hour), 10)
	writeJSON(w, http.StatusOK, snap)
}
