package exports

import "time"

// Record describes one archived export artifact.
type Record struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"ownerId"`
	Kind       string    `json:"kind"`
	FileName   string    `json:"fileName"`
	StorageKey string    `json:"-"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	CreatedAt  time.Time `json:"createdAt"`
}
