package exports

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores export records in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu      sync.RWMutex
	byID    map[string]Record
	byOwner map[string][]Record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:    make(map[string]Record),
		byOwner: make(map[string][]Record),
	}
}

// Create stores the record.
func (r *MemoryRepo) Create(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rec.ID] = rec
	r.byOwner[rec.OwnerID] = append(r.byOwner[rec.OwnerID], rec)
	return nil
}

// GetByID returns a record by ID for an owner.
func (r *MemoryRepo) GetByID(ctx context.Context, ownerID, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	if rec.OwnerID != ownerID {
		return Record{}, ErrForbidden
	}
	return rec, nil
}

// ListByOwner returns records newest first.
func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit, offset = clampPage(limit, offset)

	r.mu.RLock()
	recs := make([]Record, len(r.byOwner[ownerID]))
	copy(recs, r.byOwner[ownerID])
	r.mu.RUnlock()

	if offset >= len(recs) {
		return []Record{}, nil
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	end := len(recs)
	if offset+limit < end {
		end = offset + limit
	}
	return recs[offset:end], nil
}

var _ Repo = (*MemoryRepo)(nil)
