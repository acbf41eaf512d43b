package ports

import (
	"context"
	"io"

	"github.com/google/uuid"
)

type PeerFile struct {
	ID   uuid.UUID
	Name string
	Size int64
	Link string
}

// PeerClient talks to sibling nodes during the clone protocol.
type PeerClient interface {
	// FetchFile asks one peer whether it has the file and returns its
	// metadata with a ready download link.
	FetchFile(ctx context.Context, host string, authToken uuid.UUID, fileID uuid.UUID) (*PeerFile, error)
	// Download streams the bytes behind a link returned by FetchFile.
	Download(ctx context.Context, link string) (io.ReadCloser, error)
}
