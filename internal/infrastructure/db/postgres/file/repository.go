package file

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"filestore-api/internal/application/ports"
	domain "filestore-api/internal/domain/file"
	"filestore-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db      postgres.Querier
	storage ports.ByteStorage
}

func NewRepository(db postgres.Querier, storage ports.ByteStorage) domain.Repository {
	return &Repository{db: db, storage: storage}
}

func (r *Repository) Add(ctx context.Context, f *domain.File) error {
	_, err := r.db.Exec(
		ctx,
		InsertFile,
		f.ID, f.StoredID, f.Name, f.Size, f.Tag, f.AccountName, f.Created,
		f.HasStored, f.Stored,
		f.HasDeleted, f.Deleted,
		f.HasErased, f.Erased,
	)
	return err
}

func (r *Repository) Fetch(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	return r.scanOne(r.db.QueryRow(ctx, SelectStoredFileByID, id))
}

func (r *Repository) FetchNotStored(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	return r.scanOne(r.db.QueryRow(ctx, SelectNotStoredFileByID, id))
}

func (r *Repository) FetchDeleted(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	return r.scanOne(r.db.QueryRow(ctx, SelectDeletedFileByID, id))
}

func (r *Repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, SelectFileExists, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *Repository) MarkAsStored(ctx context.Context, id uuid.UUID, name string, size int64) (*domain.File, error) {
	return r.scanOne(r.db.QueryRow(ctx, MarkFileAsStored, id, name, size, time.Now()))
}

func (r *Repository) Delete(ctx context.Context, accountName string, id uuid.UUID) (*domain.File, error) {
	return r.scanOne(r.db.QueryRow(ctx, SoftDeleteFile, accountName, id, time.Now()))
}

func (r *Repository) MarkAsErased(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, MarkFileAsErased, id, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) FetchStoredNotDeleted(ctx context.Context, limit, offset int) (domain.Files, error) {
	return r.fetchMany(ctx, SelectStoredNotDeletedFiles, limit, offset)
}

func (r *Repository) FetchDeletedNotErased(ctx context.Context, olderThan time.Time, limit int) (domain.Files, error) {
	return r.fetchMany(ctx, SelectDeletedNotErasedFiles, olderThan, limit)
}

func (r *Repository) AccountUsage(ctx context.Context) ([]domain.Usage, error) {
	rows, err := r.db.Query(ctx, SelectAccountUsage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usage []domain.Usage
	for rows.Next() {
		var u domain.Usage
		if err = rows.Scan(&u.AccountName, &u.Size); err != nil {
			return nil, err
		}
		usage = append(usage, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return usage, nil
}

func (r *Repository) Bytes(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	storedID, err := r.storedID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.storage.Get(ctx, storedID)
}

func (r *Repository) Store(ctx context.Context, id uuid.UUID, src io.Reader) (int64, error) {
	storedID, err := r.storedID(ctx, id)
	if err != nil {
		return 0, err
	}
	return r.storage.Save(ctx, storedID, src)
}

func (r *Repository) EraseBytes(ctx context.Context, id uuid.UUID) error {
	storedID, err := r.storedID(ctx, id)
	if err != nil {
		return err
	}
	return r.storage.Erase(ctx, storedID)
}

func (r *Repository) storedID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var storedID uuid.UUID
	if err := r.db.QueryRow(ctx, SelectFileStoredID, id).Scan(&storedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, domain.ErrNotFound
		}
		return uuid.Nil, err
	}
	return storedID, nil
}

func (r *Repository) scanOne(row pgx.Row) (*domain.File, error) {
	f := new(File)
	err := row.Scan(
		&f.ID,
		&f.StoredID,
		&f.Name,
		&f.Size,
		&f.Tag,
		&f.AccountName,
		&f.Created,

		&f.HasStored,
		&f.Stored,

		&f.HasDeleted,
		&f.Deleted,

		&f.HasErased,
		&f.Erased,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) fetchMany(ctx context.Context, query string, args ...any) (domain.Files, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs Files
	for rows.Next() {
		f := new(File)

		if err = rows.Scan(
			&f.ID,
			&f.StoredID,
			&f.Name,
			&f.Size,
			&f.Tag,
			&f.AccountName,
			&f.Created,

			&f.HasStored,
			&f.Stored,

			&f.HasDeleted,
			&f.Deleted,

			&f.HasErased,
			&f.Erased,
		); err != nil {
			return nil, err
		}

		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&fs), nil
}
