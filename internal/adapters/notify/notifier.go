package notify

import "context"

// Notifier announces reading milestones to the user.
// Delivery is best-effort: callers treat errors as advisory and never
// fail a progress mutation because an announcement could not be sent.
type Notifier interface {
	MilestoneReached(ctx context.Context, percent, currentPage, totalPages int) error
	GoalCompleted(ctx context.Context, totalPages int) error
}
