package link

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	AddDownload(ctx context.Context, fileID uuid.UUID, ttl time.Duration) (*Link, error)
	AddUpload(ctx context.Context, fileID uuid.UUID, ttl time.Duration) (*Link, error)
	FetchDownload(ctx context.Context, id uuid.UUID) (*Link, error)
	FetchUpload(ctx context.Context, id uuid.UUID) (*Link, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByFileID(ctx context.Context, fileID uuid.UUID) error
	DeleteExpired(ctx context.Context) error
}
