package uow

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filestore-api/internal/domain/command"
)

func newFactory(t *testing.T) (*Factory, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewFactory(mock, nil, "node1", 100), mock
}

func TestUnitOfWork_EnterCommit(t *testing.T) {
	f, mock := newFactory(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()

	u := f.New()
	require.NoError(t, u.Enter(ctx))
	require.NotNil(t, u.Accounts)
	require.NotNil(t, u.Files)
	require.NotNil(t, u.Links)
	require.NotNil(t, u.BrokerMessages)

	require.NoError(t, u.Commit(ctx))
	u.Close(ctx)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_CloseRollsBackUnfinishedScope(t *testing.T) {
	f, mock := newFactory(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectRollback()

	u := f.New()
	require.NoError(t, u.Enter(ctx))
	u.Close(ctx)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_CloseAfterCommitIsNoOp(t *testing.T) {
	f, mock := newFactory(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()

	u := f.New()
	require.NoError(t, u.Enter(ctx))
	require.NoError(t, u.Commit(ctx))
	u.Close(ctx)
	u.Close(ctx)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_DoubleEnter(t *testing.T) {
	f, mock := newFactory(t)
	ctx := context.Background()

	mock.ExpectBegin()

	u := f.New()
	require.NoError(t, u.Enter(ctx))
	assert.ErrorIs(t, u.Enter(ctx), ErrAlreadyEntered)
}

func TestUnitOfWork_ReEnterAfterClose(t *testing.T) {
	f, mock := newFactory(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	u := f.New()
	require.NoError(t, u.Enter(ctx))
	u.Close(ctx)

	require.NoError(t, u.Enter(ctx))
	require.NoError(t, u.Commit(ctx))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_FinishGuards(t *testing.T) {
	f, mock := newFactory(t)
	ctx := context.Background()

	u := f.New()
	assert.ErrorIs(t, u.Commit(ctx), ErrNotEntered)
	assert.ErrorIs(t, u.Rollback(ctx), ErrNotEntered)

	mock.ExpectBegin()
	mock.ExpectCommit()

	require.NoError(t, u.Enter(ctx))
	require.NoError(t, u.Commit(ctx))
	assert.ErrorIs(t, u.Commit(ctx), ErrAlreadyFinished)
	assert.ErrorIs(t, u.Rollback(ctx), ErrAlreadyFinished)
}

func TestUnitOfWork_MessageQueueSurvivesScopes(t *testing.T) {
	f, _ := newFactory(t)

	u := f.New()
	u.PushMessage(command.DeleteExpiredLinks{})
	u.PushMessage(command.UpdateAccountsActualSizes{})

	msgs := u.CollectNewMessages()
	require.Len(t, msgs, 2)
	assert.Empty(t, u.CollectNewMessages())
}
