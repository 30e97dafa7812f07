package goal

import (
	"context"

	domain "khatamflow/internal/domain/goal"
)

// Store persists the single active Goal.
type Store interface {
	Get(ctx context.Context) (domain.Goal, error)
	Save(ctx context.Context, g domain.Goal) error
	Clear(ctx context.Context) error
}
