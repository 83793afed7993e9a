// Package exports archives generated PDF and DOCX artifacts per owner.
package exports

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/shared/storage/object"
)

// Archive stores artifacts in an object store and records them in Repo.
type Archive struct {
	Repo  Repo
	Store object.Store
	Now   func() time.Time
}

// Enabled reports whether artifacts can be archived.
func (a *Archive) Enabled() bool {
	return a != nil && a.Repo != nil && a.Store != nil
}

// Save uploads data and records it.
func (a *Archive) Save(ctx context.Context, ownerID, kind, fileName, mimeType string, data []byte) (Record, error) {
	if !a.Enabled() {
		return Record{}, ErrArchiveDisabled
	}
	if strings.TrimSpace(ownerID) == "" || kind == "" || fileName == "" {
		return Record{}, ErrInvalidInput
	}
	obj, err := a.Store.Put(ctx, ownerID, fileName, mimeType, bytes.NewReader(data))
	if err != nil {
		return Record{}, err
	}
	rec := Record{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Kind:       kind,
		FileName:   fileName,
		StorageKey: obj.Key,
		MimeType:   obj.ContentType,
		SizeBytes:  obj.Size,
		CreatedAt:  a.now(),
	}
	if err := a.Repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// List returns the owner's records newest first.
func (a *Archive) List(ctx context.Context, ownerID string, limit, offset int) ([]Record, error) {
	if !a.Enabled() {
		return []Record{}, nil
	}
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrInvalidInput
	}
	return a.Repo.ListByOwner(ctx, ownerID, limit, offset)
}

// Open returns the record and a reader for its artifact. Records of other
// owners are reported as not found.
func (a *Archive) Open(ctx context.Context, ownerID, id string) (Record, io.ReadCloser, error) {
	if !a.Enabled() {
		return Record{}, nil, ErrArchiveDisabled
	}
	if strings.TrimSpace(ownerID) == "" || strings.TrimSpace(id) == "" {
		return Record{}, nil, ErrInvalidInput
	}
	rec, err := a.Repo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			return Record{}, nil, ErrNotFound
		}
		return Record{}, nil, err
	}
	rc, err := a.Store.Open(ctx, rec.StorageKey)
	if err != nil {
		return Record{}, nil, err
	}
	return rec, rc, nil
}

func (a *Archive) now() time.Time {
	if a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}
