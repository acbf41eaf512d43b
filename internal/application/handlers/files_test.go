package handlers

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"filestore-api/internal/application/uow"
	"filestore-api/internal/domain/command"
	"filestore-api/internal/domain/file"
	filedb "filestore-api/internal/infrastructure/db/postgres/file"
)

// FakeByteStorage records erasures; the read and write paths are not
// used by these tests.
type FakeByteStorage struct {
	Erased []uuid.UUID
}

func (f *FakeByteStorage) Get(context.Context, uuid.UUID) (io.ReadCloser, error) {
	return nil, errors.New("not used")
}

func (f *FakeByteStorage) Save(context.Context, uuid.UUID, io.Reader) (int64, error) {
	return 0, errors.New("not used")
}

func (f *FakeByteStorage) Erase(_ context.Context, id uuid.UUID) error {
	f.Erased = append(f.Erased, id)
	return nil
}

func newEraseFixture(t *testing.T) (*CommandHandlers, *uow.UnitOfWork, pgxmock.PgxPoolIface, *FakeByteStorage) {
	t.Helper()

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	store := &FakeByteStorage{}
	u := uow.NewFactory(mock, store, "node1", 100).New()
	h := &CommandHandlers{logger: zap.NewNop()}

	return h, u, mock, store
}

func deletedFileRows(id, storedID uuid.UUID) *pgxmock.Rows {
	now := time.Now()
	deleted := now.Add(-time.Hour)
	return pgxmock.NewRows([]string{
		"id", "stored_id", "name", "size", "tag", "account_name", "created",
		"has_stored", "stored", "has_deleted", "deleted", "has_erased", "erased",
	}).AddRow(
		id, storedID, "doc.txt", int64(42), "docs", "acme", now.Add(-2*time.Hour),
		true, &now, true, &deleted, false, (*time.Time)(nil),
	)
}

func TestEraseFile(t *testing.T) {
	h, u, mock, store := newEraseFixture(t)
	id, storedID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(filedb.SelectDeletedFileByID).
		WithArgs(id).
		WillReturnRows(deletedFileRows(id, storedID))
	mock.ExpectQuery(filedb.SelectFileStoredID).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"stored_id"}).AddRow(storedID))
	mock.ExpectExec(filedb.MarkFileAsErased).
		WithArgs(id, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	require.NoError(t, h.EraseFile(context.Background(), u, command.EraseFile{FileID: id}))

	// content is removed by stored id, once, before the flag flips
	assert.Equal(t, []uuid.UUID{storedID}, store.Erased)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEraseFile_NotDeletedMutatesNothing(t *testing.T) {
	h, u, mock, store := newEraseFixture(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(filedb.SelectDeletedFileByID).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err := h.EraseFile(context.Background(), u, command.EraseFile{FileID: id})
	require.ErrorIs(t, err, file.ErrNotFound)

	// a stored-but-not-deleted file keeps its content
	assert.Empty(t, store.Erased)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEraseFile_AlreadyErasedMutatesNothing(t *testing.T) {
	h, u, mock, store := newEraseFixture(t)
	id := uuid.New()

	// an erased row no longer matches the deleted-not-erased fetch
	mock.ExpectBegin()
	mock.ExpectQuery(filedb.SelectDeletedFileByID).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err := h.EraseFile(context.Background(), u, command.EraseFile{FileID: id})
	require.ErrorIs(t, err, file.ErrNotFound)
	assert.Empty(t, store.Erased)
	require.NoError(t, mock.ExpectationsWereMet())
}
