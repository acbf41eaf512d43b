package brokermessage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domain "filestore-api/internal/domain/brokermessage"
	"filestore-api/internal/infrastructure/db/postgres"
)

// Doubling stops at one day so a long outage cannot push a message
// months into the future.
const maxRetryDelaySeconds = 86400

type Repository struct {
	db           postgres.Querier
	app          string
	retryCeiling int
}

func NewRepository(db postgres.Querier, app string, retryCeiling int) domain.Repository {
	return &Repository{db: db, app: app, retryCeiling: retryCeiling}
}

func (r *Repository) FetchByID(ctx context.Context, id uuid.UUID) (*domain.BrokerMessage, error) {
	m := new(BrokerMessage)
	err := r.db.QueryRow(ctx, SelectBrokerMessageByID, id).Scan(
		&m.ID,
		&m.Direction,
		&m.App,
		&m.Key,
		&m.Body,

		&m.HasExecuted,
		&m.HasExecutionStopped,
		&m.CountOfRetries,
		&m.NextRetryAt,
		&m.SecondsToNextRetry,

		&m.Created,
		&m.Updated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return fromDBModel(m), nil
}

func (r *Repository) AddOutgoing(ctx context.Context, key string, body json.RawMessage, delay time.Duration) (*domain.BrokerMessage, error) {
	now := time.Now()
	m := &domain.BrokerMessage{
		ID:                 uuid.New(),
		Direction:          domain.DirectionOut,
		App:                r.app,
		Key:                key,
		Body:               body,
		NextRetryAt:        now.Add(delay),
		SecondsToNextRetry: 1,
		Created:            now,
		Updated:            now,
	}

	if _, err := r.db.Exec(
		ctx,
		InsertBrokerMessage,
		m.ID, m.Direction, m.App, m.Key, m.Body,
		m.HasExecuted, m.HasExecutionStopped,
		m.CountOfRetries, m.NextRetryAt, m.SecondsToNextRetry,
		m.Created, m.Updated,
	); err != nil {
		return nil, err
	}

	return m, nil
}

func (r *Repository) AddIncoming(ctx context.Context, id uuid.UUID, app, key string, body json.RawMessage) error {
	now := time.Now()
	_, err := r.db.Exec(
		ctx,
		InsertBrokerMessageIfAbsent,
		id, domain.DirectionIn, app, key, body,
		false, false,
		0, now, 1,
		now, now,
	)
	return err
}

func (r *Repository) FetchNotExecutedOutgoing(ctx context.Context, limit int) (domain.BrokerMessages, error) {
	return r.fetchNotExecuted(ctx, domain.DirectionOut, limit)
}

func (r *Repository) FetchNotExecutedIncoming(ctx context.Context, limit int) (domain.BrokerMessages, error) {
	return r.fetchNotExecuted(ctx, domain.DirectionIn, limit)
}

func (r *Repository) fetchNotExecuted(ctx context.Context, direction string, limit int) (domain.BrokerMessages, error) {
	rows, err := r.db.Query(ctx, SelectNotExecutedBrokerMessages, direction, time.Now(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ms BrokerMessages
	for rows.Next() {
		m := new(BrokerMessage)

		if err = rows.Scan(
			&m.ID,
			&m.Direction,
			&m.App,
			&m.Key,
			&m.Body,

			&m.HasExecuted,
			&m.HasExecutionStopped,
			&m.CountOfRetries,
			&m.NextRetryAt,
			&m.SecondsToNextRetry,

			&m.Created,
			&m.Updated,
		); err != nil {
			return nil, err
		}

		ms = append(ms, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&ms), nil
}

func (r *Repository) MarkAsExecuted(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx, MarkBrokerMessagesExecuted, ids, time.Now())
	return err
}

func (r *Repository) ScheduleNextRetry(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	now := time.Now()
	if _, err := r.db.Exec(ctx, ScheduleBrokerMessagesRetry, ids, now, maxRetryDelaySeconds); err != nil {
		return err
	}
	// Abandon messages that have crossed the ceiling; without this step
	// a poisoned message retries forever.
	_, err := r.db.Exec(ctx, StopBrokerMessagesRetry, ids, r.retryCeiling, now)
	return err
}

func (r *Repository) DeleteExecuted(ctx context.Context, olderThan time.Time) error {
	_, err := r.db.Exec(ctx, DeleteExecutedBrokerMessages, olderThan)
	return err
}
