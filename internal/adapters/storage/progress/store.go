package progress

import (
	"context"

	domaingoal "khatamflow/internal/domain/goal"
	domain "khatamflow/internal/domain/progress"
)

// LogStore persists the reading-log collection, the source of truth
// for all derived progress state.
type LogStore interface {
	List(ctx context.Context) ([]domain.Log, error)
	Save(ctx context.Context, l domain.Log) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// SummaryStore persists the derived aggregate position. Values here
// are a cache of the log fold and are always overwritten wholesale.
type SummaryStore interface {
	Get(ctx context.Context) (domain.Summary, error)
	Save(ctx context.Context, s domain.Summary) error
	Clear(ctx context.Context) error
}

// TargetStore persists the derived daily target.
type TargetStore interface {
	Get(ctx context.Context) (domaingoal.DailyTarget, error)
	Save(ctx context.Context, t domaingoal.DailyTarget) error
	Clear(ctx context.Context) error
}
