package exports

import (
	"context"
	"database/sql"
	"errors"
)

const recordColumns = `id, owner_id, kind, file_name, storage_key, mime_type, size_bytes, created_at`

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a record.
func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO exports (` + recordColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query, recordArgs(rec)...)
	return err
}

// GetByID returns a record by ID for an owner.
func (r *PGRepo) GetByID(ctx context.Context, ownerID, id string) (Record, error) {
	const query = `
SELECT ` + recordColumns + `
FROM exports
WHERE id = $1
LIMIT 1`
	return getRecord(r.DB.QueryRowContext(ctx, query, id), ownerID)
}

// ListByOwner lists records ordered newest first.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Record, error) {
	limit, offset = clampPage(limit, offset)
	const query = `
SELECT ` + recordColumns + `
FROM exports
WHERE owner_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

func recordArgs(rec Record) []any {
	return []any{rec.ID, rec.OwnerID, rec.Kind, rec.FileName, rec.StorageKey, rec.MimeType, rec.SizeBytes, rec.CreatedAt}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var rec Record
	err := s.Scan(&rec.ID, &rec.OwnerID, &rec.Kind, &rec.FileName, &rec.StorageKey, &rec.MimeType, &rec.SizeBytes, &rec.CreatedAt)
	return rec, err
}

func getRecord(row *sql.Row, ownerID string) (Record, error) {
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	if rec.OwnerID != ownerID {
		return Record{}, ErrForbidden
	}
	return rec, nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()
	out := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
