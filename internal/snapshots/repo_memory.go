package snapshots

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Repo for tests and ephemeral deployments.
type MemoryRepo struct {
	mu      sync.RWMutex
	entries map[string]map[string][]byte
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{entries: make(map[string]map[string][]byte)}
}

func (r *MemoryRepo) Get(ctx context.Context, ownerID, key string) ([]byte, error) {
	_ = ctx
	if err := checkKey(ownerID, key); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.entries[ownerID][key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (r *MemoryRepo) Put(ctx context.Context, ownerID, key string, value []byte) error {
	_ = ctx
	if err := checkKey(ownerID, key); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	owner, ok := r.entries[ownerID]
	if !ok {
		owner = make(map[string][]byte)
		r.entries[ownerID] = owner
	}
	owner[key] = append([]byte(nil), value...)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
