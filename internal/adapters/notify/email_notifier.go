package notify

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"khatamflow/internal/adapters/email"
	settingsStore "khatamflow/internal/adapters/storage/settings"
	settingsDomain "khatamflow/internal/domain/settings"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// EmailNotifier delivers milestone celebrations by email.
// Announcements are suppressed when notifications are disabled in
// settings or no recipient address is configured.
type EmailNotifier struct {
	Sender   email.Sender
	Settings settingsStore.Store
}

// NewEmailNotifier creates an EmailNotifier.
func NewEmailNotifier(sender email.Sender, settings settingsStore.Store) *EmailNotifier {
	return &EmailNotifier{Sender: sender, Settings: settings}
}

// recipient returns the configured notify address, or "" when
// announcements should be suppressed.
func (n *EmailNotifier) recipient(ctx context.Context) (string, error) {
	enabled, err := n.Settings.Get(ctx, settingsDomain.KeyNotificationsEnabled)
	if err != nil {
		return "", err
	}
	if enabled != "true" {
		return "", nil
	}
	return n.Settings.Get(ctx, settingsDomain.KeyNotifyEmail)
}

// MilestoneReached sends a celebration email for a crossed threshold.
// PRE: 0 < percent < 100; currentPage <= totalPages
// POST: Email sent when notifications are enabled and an address is set
func (n *EmailNotifier) MilestoneReached(ctx context.Context, percent, currentPage, totalPages int) error {
	to, err := n.recipient(ctx)
	if err != nil {
		return err
	}
	if to == "" {
		slog.Debug("milestone_notify_skipped", "percent", percent)
		return nil
	}

	md := fmt.Sprintf("# %d%% of the way there\n\nYou have read up to page **%d** of %d. Keep going, the khatam is within reach.",
		percent, currentPage, totalPages)
	html, err := renderMarkdown(md)
	if err != nil {
		return err
	}

	_, err = n.Sender.Send(ctx, email.SendRequest{
		To:      []string{to},
		Subject: fmt.Sprintf("KhatamFlow: %d%% milestone reached", percent),
		HTML:    html,
	})
	if err != nil {
		return err
	}
	slog.Info("milestone_notified", "percent", percent, "current_page", currentPage)
	return nil
}

// GoalCompleted sends the khatam completion email.
// PRE: the reader has reached the final page
// POST: Email sent when notifications are enabled and an address is set
func (n *EmailNotifier) GoalCompleted(ctx context.Context, totalPages int) error {
	to, err := n.recipient(ctx)
	if err != nil {
		return err
	}
	if to == "" {
		slog.Debug("completion_notify_skipped")
		return nil
	}

	md := fmt.Sprintf("# Khatam complete\n\nAll **%d pages** read. May it be accepted.", totalPages)
	html, err := renderMarkdown(md)
	if err != nil {
		return err
	}

	_, err = n.Sender.Send(ctx, email.SendRequest{
		To:      []string{to},
		Subject: "KhatamFlow: khatam complete",
		HTML:    html,
	})
	if err != nil {
		return err
	}
	slog.Info("completion_notified", "total_pages", totalPages)
	return nil
}

// renderMarkdown converts markdown to sanitized HTML.
func renderMarkdown(md string) (string, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

var _ Notifier = (*EmailNotifier)(nil)
