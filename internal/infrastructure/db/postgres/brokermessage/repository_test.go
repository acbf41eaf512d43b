package brokermessage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "filestore-api/internal/domain/brokermessage"
)

const testRetryCeiling = 100

func newMockRepo(t *testing.T) (domain.Repository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewRepository(mock, "node1", testRetryCeiling), mock
}

func TestAddOutgoing(t *testing.T) {
	r, mock := newMockRepo(t)
	body := json.RawMessage(`{"id":"x"}`)

	mock.ExpectExec(InsertBrokerMessage).
		WithArgs(
			pgxmock.AnyArg(), domain.DirectionOut, "node1", domain.KeyFileStored, body,
			false, false,
			0, pgxmock.AnyArg(), 1,
			pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	before := time.Now()
	m, err := r.AddOutgoing(context.Background(), domain.KeyFileStored, body, 5*time.Second)
	require.NoError(t, err)

	assert.Equal(t, domain.DirectionOut, m.Direction)
	assert.Equal(t, "node1", m.App)
	assert.Equal(t, 1, m.SecondsToNextRetry)
	assert.Zero(t, m.CountOfRetries)
	// the first attempt is pushed out by the requested delay
	assert.True(t, m.NextRetryAt.After(before.Add(4*time.Second)))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddIncoming_DeduplicatesOnID(t *testing.T) {
	r, mock := newMockRepo(t)
	id := uuid.New()
	body := json.RawMessage(`{}`)

	mock.ExpectExec(InsertBrokerMessageIfAbsent).
		WithArgs(
			id, domain.DirectionIn, "node2", domain.KeyFileDeleted, body,
			false, false,
			0, pgxmock.AnyArg(), 1,
			pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	// redelivery: conflict on id, zero rows affected, still no error
	mock.ExpectExec(InsertBrokerMessageIfAbsent).
		WithArgs(
			id, domain.DirectionIn, "node2", domain.KeyFileDeleted, body,
			false, false,
			0, pgxmock.AnyArg(), 1,
			pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	require.NoError(t, r.AddIncoming(context.Background(), id, "node2", domain.KeyFileDeleted, body))
	require.NoError(t, r.AddIncoming(context.Background(), id, "node2", domain.KeyFileDeleted, body))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchNotExecutedOutgoing(t *testing.T) {
	r, mock := newMockRepo(t)

	id := uuid.New()
	now := time.Now()
	rows := pgxmock.NewRows([]string{
		"id", "direction", "app", "key", "body",
		"has_executed", "has_execution_stopped",
		"count_of_retries", "next_retry_at", "seconds_to_next_retry",
		"created", "updated",
	}).AddRow(
		id, domain.DirectionOut, "node1", domain.KeyFileStored, json.RawMessage(`{}`),
		false, false,
		2, now.Add(-time.Second), 4,
		now, now,
	)

	mock.ExpectQuery(SelectNotExecutedBrokerMessages).
		WithArgs(domain.DirectionOut, pgxmock.AnyArg(), 10).
		WillReturnRows(rows)

	ms, err := r.FetchNotExecutedOutgoing(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, id, ms[0].ID)
	assert.Equal(t, 4, ms[0].SecondsToNextRetry)
	assert.True(t, ms[0].IsEligible(time.Now()))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAsExecuted(t *testing.T) {
	r, mock := newMockRepo(t)
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	mock.ExpectExec(MarkBrokerMessagesExecuted).
		WithArgs(ids, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	require.NoError(t, r.MarkAsExecuted(context.Background(), ids))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAsExecuted_EmptyIDsIsNoOp(t *testing.T) {
	r, mock := newMockRepo(t)

	require.NoError(t, r.MarkAsExecuted(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleNextRetry_SchedulesThenStops(t *testing.T) {
	r, mock := newMockRepo(t)
	ids := []uuid.UUID{uuid.New()}

	mock.ExpectExec(ScheduleBrokerMessagesRetry).
		WithArgs(ids, pgxmock.AnyArg(), maxRetryDelaySeconds).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(StopBrokerMessagesRetry).
		WithArgs(ids, testRetryCeiling, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, r.ScheduleNextRetry(context.Background(), ids))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleNextRetry_EmptyIDsIsNoOp(t *testing.T) {
	r, mock := newMockRepo(t)

	require.NoError(t, r.ScheduleNextRetry(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExecuted(t *testing.T) {
	r, mock := newMockRepo(t)
	cutoff := time.Now().Add(-24 * time.Hour)

	mock.ExpectExec(DeleteExecutedBrokerMessages).
		WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	require.NoError(t, r.DeleteExecuted(context.Background(), cutoff))
	require.NoError(t, mock.ExpectationsWereMet())
}
