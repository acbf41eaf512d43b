package account

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	FetchByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FetchByName(ctx context.Context, name string) (*Account, error)
	FetchByToken(ctx context.Context, authToken uuid.UUID) (*Account, error)
	FetchAll(ctx context.Context) (Accounts, error)
	UpdateActualSize(ctx context.Context, name string, size int64) error
	ResetActualSizeExcept(ctx context.Context, names []string) error
}
