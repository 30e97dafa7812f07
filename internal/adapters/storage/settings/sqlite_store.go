package settings

import (
	"context"
	"database/sql"
	"errors"

	"khatamflow/internal/adapters/storage"
	domain "khatamflow/internal/domain/settings"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves a setting value, falling back to the key's default
// when it has never been written.
// PRE: key is non-empty
// POST: Returns the stored or default value
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM setting WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Default(key), nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Put stores a setting value.
// PRE: value has been validated for the key
// POST: value is persisted under key
func (s *SQLiteStore) Put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO setting (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value)
	return err
}

// All retrieves every stored setting.
// PRE: none
// POST: Returns stored pairs; absent keys are not filled with defaults
func (s *SQLiteStore) All(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM setting`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

// Ensure interface compliance at compile time.
var _ Store = (*SQLiteStore)(nil)
