// Package object stores generated export artifacts.
package object

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"time"

	"resume-builder/internal/shared/util"
)

// Object describes a stored artifact.
type Object struct {
	Key         string
	Size        int64
	ContentType string
}

// Store saves and retrieves binary objects namespaced per owner.
type Store interface {
	Put(ctx context.Context, ownerID, fileName, contentType string, r io.Reader) (Object, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// NewKey builds "<owner hash>/<random>_<file name>". The owner id never appears in clear.
func NewKey(ownerID, fileName string) (string, error) {
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	return path.Join(util.OwnerKey(ownerID), randomID()+"_"+sanitized), nil
}

func randomID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
