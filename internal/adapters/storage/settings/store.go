package settings

import "context"

// Store persists user settings as key/value pairs.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
}
