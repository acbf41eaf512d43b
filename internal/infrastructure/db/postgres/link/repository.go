package link

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domain "filestore-api/internal/domain/link"
	"filestore-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) AddDownload(ctx context.Context, fileID uuid.UUID, ttl time.Duration) (*domain.Link, error) {
	return r.add(ctx, fileID, domain.TypeDownload, ttl)
}

func (r *Repository) AddUpload(ctx context.Context, fileID uuid.UUID, ttl time.Duration) (*domain.Link, error) {
	return r.add(ctx, fileID, domain.TypeUpload, ttl)
}

func (r *Repository) add(ctx context.Context, fileID uuid.UUID, linkType string, ttl time.Duration) (*domain.Link, error) {
	l := domain.New(fileID, linkType, ttl)
	_, err := r.db.Exec(ctx, InsertLink, l.ID, l.FileID, l.Type, l.Created, l.Expired)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *Repository) FetchDownload(ctx context.Context, id uuid.UUID) (*domain.Link, error) {
	return r.fetch(ctx, id, domain.TypeDownload)
}

func (r *Repository) FetchUpload(ctx context.Context, id uuid.UUID) (*domain.Link, error) {
	return r.fetch(ctx, id, domain.TypeUpload)
}

func (r *Repository) fetch(ctx context.Context, id uuid.UUID, linkType string) (*domain.Link, error) {
	l := new(Link)
	err := r.db.QueryRow(ctx, SelectLinkByIDAndType, id, linkType, time.Now()).Scan(
		&l.ID,
		&l.FileID,
		&l.Type,
		&l.Created,
		&l.Expired,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return fromDBModel(l), nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, DeleteLink, id)
	return err
}

func (r *Repository) DeleteByFileID(ctx context.Context, fileID uuid.UUID) error {
	_, err := r.db.Exec(ctx, DeleteLinksByFileID, fileID)
	return err
}

func (r *Repository) DeleteExpired(ctx context.Context) error {
	_, err := r.db.Exec(ctx, DeleteExpiredLinks, time.Now())
	return err
}
