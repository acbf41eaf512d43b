package link

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Link types: one-shot capability for a download or an upload.
const (
	TypeDownload = "D"
	TypeUpload   = "U"
)

type (
	Link struct {
		ID      uuid.UUID
		FileID  uuid.UUID
		Type    string
		Created time.Time
		Expired time.Time
	}
	Links []*Link
)

var ErrNotFound = errors.New("link not found")

func New(fileID uuid.UUID, linkType string, ttl time.Duration) *Link {
	now := time.Now()
	return &Link{
		ID:      uuid.New(),
		FileID:  fileID,
		Type:    linkType,
		Created: now,
		Expired: now.Add(ttl),
	}
}
