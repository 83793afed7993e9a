package snapshots

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Get returns the stored value for ownerID and key.
func (r *PGRepo) Get(ctx context.Context, ownerID, key string) ([]byte, error) {
	if err := checkKey(ownerID, key); err != nil {
		return nil, err
	}
	const query = `
SELECT value
FROM kv_entries
WHERE owner_id = $1 AND key = $2
LIMIT 1`
	var value []byte
	if err := r.DB.QueryRowContext(ctx, query, ownerID, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

// Put upserts the value; the last write wins.
func (r *PGRepo) Put(ctx context.Context, ownerID, key string, value []byte) error {
	if err := checkKey(ownerID, key); err != nil {
		return err
	}
	const query = `
INSERT INTO kv_entries (owner_id, key, value, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (owner_id, key) DO UPDATE
SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	_, err := r.DB.ExecContext(ctx, query, ownerID, key, value)
	return err
}

var _ Repo = (*PGRepo)(nil)
