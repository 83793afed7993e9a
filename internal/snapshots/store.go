package snapshots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/model"
)

// Store reads and writes typed values on top of a Repo.
type Store struct {
	repo Repo
}

// NewStore wraps repo.
func NewStore(repo Repo) *Store {
	return &Store{repo: repo}
}

// LoadResume returns the saved aggregate. Absent, unreadable or invalid
// snapshots yield model.Default(); only storage failures are returned.
func (s *Store) LoadResume(ctx context.Context, ownerID string) (model.ResumeData, error) {
	raw, err := s.repo.Get(ctx, ownerID, KeyResume)
	if errors.Is(err, ErrNotFound) {
		return model.Default(), nil
	}
	if err != nil {
		return model.ResumeData{}, fmt.Errorf("load resume: %w", err)
	}
	data, err := model.Decode(raw)
	if err != nil {
		telemetry.Warn("snapshot.corrupt", map[string]any{"owner_id": ownerID, "err": err})
		return model.Default(), nil
	}
	return data, nil
}

// SaveResume writes a full snapshot; there are no partial updates.
func (s *Store) SaveResume(ctx context.Context, ownerID string, data model.ResumeData) error {
	raw, err := json.Marshal(data.Normalize())
	if err != nil {
		return fmt.Errorf("encode resume: %w", err)
	}
	if err := s.repo.Put(ctx, ownerID, KeyResume, raw); err != nil {
		return fmt.Errorf("save resume: %w", err)
	}
	return nil
}

// Unlocked reports whether exports were unlocked for the owner.
func (s *Store) Unlocked(ctx context.Context, ownerID string) (bool, error) {
	raw, err := s.repo.Get(ctx, ownerID, KeyUnlocked)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load unlock flag: %w", err)
	}
	return string(raw) == "true", nil
}

// SetUnlocked persists the unlock flag. It is never cleared.
func (s *Store) SetUnlocked(ctx context.Context, ownerID string) error {
	if err := s.repo.Put(ctx, ownerID, KeyUnlocked, []byte("true")); err != nil {
		return fmt.Errorf("save unlock flag: %w", err)
	}
	return nil
}
