package ports

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// ByteStorage is the content backend. Keys are stored-content ids,
// decoupled from file business ids.
type ByteStorage interface {
	Get(ctx context.Context, id uuid.UUID) (io.ReadCloser, error)
	// Save drains src fully and returns the number of bytes written.
	Save(ctx context.Context, id uuid.UUID, src io.Reader) (int64, error)
	Erase(ctx context.Context, id uuid.UUID) error
}
