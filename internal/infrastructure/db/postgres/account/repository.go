package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domain "filestore-api/internal/domain/account"
	"filestore-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return r.fetchOne(ctx, SelectAccountByID, id)
}

func (r *Repository) FetchByName(ctx context.Context, name string) (*domain.Account, error) {
	return r.fetchOne(ctx, SelectAccountByName, name)
}

func (r *Repository) FetchByToken(ctx context.Context, authToken uuid.UUID) (*domain.Account, error) {
	return r.fetchOne(ctx, SelectAccountByToken, authToken)
}

func (r *Repository) fetchOne(ctx context.Context, query string, arg any) (*domain.Account, error) {
	a := new(Account)
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&a.ID,
		&a.Name,
		&a.AuthToken,
		&a.IsActive,

		&a.ActualSize,
		&a.TotalSize,
		&a.Tags,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return fromDBModel(a), nil
}

func (r *Repository) FetchAll(ctx context.Context) (domain.Accounts, error) {
	rows, err := r.db.Query(ctx, SelectAccounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var as Accounts
	for rows.Next() {
		a := new(Account)

		if err = rows.Scan(
			&a.ID,
			&a.Name,
			&a.AuthToken,
			&a.IsActive,

			&a.ActualSize,
			&a.TotalSize,
			&a.Tags,
		); err != nil {
			return nil, err
		}

		as = append(as, a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&as), nil
}

func (r *Repository) UpdateActualSize(ctx context.Context, name string, size int64) error {
	_, err := r.db.Exec(ctx, UpdateAccountActualSize, name, size)
	return err
}

// ResetActualSizeExcept zeroes accounts absent from the latest usage
// aggregate, so accounts whose last file was deleted converge to zero.
func (r *Repository) ResetActualSizeExcept(ctx context.Context, names []string) error {
	if names == nil {
		names = []string{}
	}
	_, err := r.db.Exec(ctx, ResetAccountActualSizes, names)
	return err
}
