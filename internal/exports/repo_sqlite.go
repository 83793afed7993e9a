package exports

import (
	"context"
	"database/sql"
)

// SQLiteRepo implements Repo on the single-device SQLite database.
type SQLiteRepo struct {
	DB *sql.DB
}

// Create inserts a record.
func (r *SQLiteRepo) Create(ctx context.Context, rec Record) error {
	const query = `INSERT INTO exports (` + recordColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.DB.ExecContext(ctx, query, recordArgs(rec)...)
	return err
}

// GetByID returns a record by ID for an owner.
func (r *SQLiteRepo) GetByID(ctx context.Context, ownerID, id string) (Record, error) {
	const query = `SELECT ` + recordColumns + ` FROM exports WHERE id = ? LIMIT 1`
	return getRecord(r.DB.QueryRowContext(ctx, query, id), ownerID)
}

// ListByOwner lists records ordered newest first.
func (r *SQLiteRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Record, error) {
	limit, offset = clampPage(limit, offset)
	const query = `SELECT ` + recordColumns + ` FROM exports WHERE owner_id = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`
	rows, err := r.DB.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

var _ Repo = (*SQLiteRepo)(nil)
