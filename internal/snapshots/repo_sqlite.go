package snapshots

import (
	"context"
	"database/sql"
	"errors"
)

// SQLiteRepo implements Repo on the single-device SQLite database.
type SQLiteRepo struct {
	DB *sql.DB
}

func (r *SQLiteRepo) Get(ctx context.Context, ownerID, key string) ([]byte, error) {
	if err := checkKey(ownerID, key); err != nil {
		return nil, err
	}
	var value []byte
	err := r.DB.QueryRowContext(ctx,
		`SELECT value FROM kv_entries WHERE owner_id = ? AND key = ?`, ownerID, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *SQLiteRepo) Put(ctx context.Context, ownerID, key string, value []byte) error {
	if err := checkKey(ownerID, key); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx, `
INSERT INTO kv_entries (owner_id, key, value, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (owner_id, key) DO UPDATE
SET value = excluded.value, updated_at = excluded.updated_at`, ownerID, key, value)
	return err
}

var _ Repo = (*SQLiteRepo)(nil)
