// Package snapshots persists per-owner key/value entries: the résumé snapshot and
// the export unlock flag.
package snapshots

import (
	"context"
	"errors"
)

const (
	// KeyResume holds the JSON snapshot of the whole aggregate.
	KeyResume = "resume-data-v4"
	// KeyUnlocked holds "true" once exports have been unlocked.
	KeyUnlocked = "has-paid"
)

var (
	// ErrNotFound indicates the key has never been written for the owner.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates an empty owner or key.
	ErrInvalidInput = errors.New("invalid input")
)

// Repo stores opaque values per owner. Put replaces any previous value.
type Repo interface {
	Get(ctx context.Context, ownerID, key string) ([]byte, error)
	Put(ctx context.Context, ownerID, key string, value []byte) error
}

func checkKey(ownerID, key string) error {
	if ownerID == "" || key == "" {
		return ErrInvalidInput
	}
	return nil
}
