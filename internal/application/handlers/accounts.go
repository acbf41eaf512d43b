package handlers

import (
	"context"
	"errors"

	"filestore-api/internal/application/uow"
	"filestore-api/internal/domain/account"
	"filestore-api/internal/domain/command"
)

func (h *CommandHandlers) GetAccounts(ctx context.Context, u *uow.UnitOfWork, _ command.GetAccounts) (account.Accounts, error) {
	if err := u.Enter(ctx); err != nil {
		return nil, err
	}
	defer u.Close(ctx)

	return u.Accounts.FetchAll(ctx)
}

// GetAccountByAuthToken resolves the caller behind a bearer token. An
// unknown or inactive token yields a nil account, not an error.
func (h *CommandHandlers) GetAccountByAuthToken(ctx context.Context, u *uow.UnitOfWork, c command.GetAccountByAuthToken) (*account.Account, error) {
	if err := u.Enter(ctx); err != nil {
		return nil, err
	}
	defer u.Close(ctx)

	a, err := u.Accounts.FetchByToken(ctx, c.AuthToken)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !a.IsActive {
		return nil, nil
	}

	return a, nil
}

// UpdateAccountsActualSizes reconciles per-account usage from the
// files table. Accounts with no stored files are reset to zero.
func (h *CommandHandlers) UpdateAccountsActualSizes(ctx context.Context, u *uow.UnitOfWork, _ command.UpdateAccountsActualSizes) error {
	if err := u.Enter(ctx); err != nil {
		return err
	}
	defer u.Close(ctx)

	usage, err := u.Files.AccountUsage(ctx)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(usage))
	for _, us := range usage {
		if err = u.Accounts.UpdateActualSize(ctx, us.AccountName, us.Size); err != nil {
			return err
		}
		names = append(names, us.AccountName)
	}

	if err = u.Accounts.ResetActualSizeExcept(ctx, names); err != nil {
		return err
	}

	return u.Commit(ctx)
}
