package handlers

import (
	"context"

	"filestore-api/internal/application/uow"
	"filestore-api/internal/domain/command"
)

func (h *CommandHandlers) DeleteExpiredLinks(ctx context.Context, u *uow.UnitOfWork, _ command.DeleteExpiredLinks) error {
	if err := u.Enter(ctx); err != nil {
		return err
	}
	defer u.Close(ctx)

	if err := u.Links.DeleteExpired(ctx); err != nil {
		return err
	}

	return u.Commit(ctx)
}
