package file

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// Repository persists file rows and proxies the byte-storage backend
// for the streaming operations, so handlers deal with one surface.
type Repository interface {
	Add(ctx context.Context, f *File) error
	// Fetch returns the file only when it is stored and not deleted;
	// callers on the read path never see half-uploaded or deleted rows.
	Fetch(ctx context.Context, id uuid.UUID) (*File, error)
	FetchNotStored(ctx context.Context, id uuid.UUID) (*File, error)
	// FetchDeleted returns the file only when it is deleted and not yet
	// erased, the sole state the erase path may act on.
	FetchDeleted(ctx context.Context, id uuid.UUID) (*File, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	MarkAsStored(ctx context.Context, id uuid.UUID, name string, size int64) (*File, error)
	Delete(ctx context.Context, accountName string, id uuid.UUID) (*File, error)
	MarkAsErased(ctx context.Context, id uuid.UUID) error
	FetchStoredNotDeleted(ctx context.Context, limit, offset int) (Files, error)
	FetchDeletedNotErased(ctx context.Context, olderThan time.Time, limit int) (Files, error)
	AccountUsage(ctx context.Context) ([]Usage, error)

	Bytes(ctx context.Context, id uuid.UUID) (io.ReadCloser, error)
	Store(ctx context.Context, id uuid.UUID, src io.Reader) (int64, error)
	EraseBytes(ctx context.Context, id uuid.UUID) error
}

type Usage struct {
	AccountName string
	Size        int64
}
