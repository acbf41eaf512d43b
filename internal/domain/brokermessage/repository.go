package brokermessage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	FetchByID(ctx context.Context, id uuid.UUID) (*BrokerMessage, error)
	// AddOutgoing enqueues an outbox row. The first attempt becomes
	// eligible after delay; the retry step starts at one second.
	AddOutgoing(ctx context.Context, key string, body json.RawMessage, delay time.Duration) (*BrokerMessage, error)
	// AddIncoming records a broker delivery keyed by the broker-assigned
	// message id. Redelivery of an already-known id is a no-op.
	AddIncoming(ctx context.Context, id uuid.UUID, app, key string, body json.RawMessage) error
	FetchNotExecutedOutgoing(ctx context.Context, limit int) (BrokerMessages, error)
	FetchNotExecutedIncoming(ctx context.Context, limit int) (BrokerMessages, error)
	MarkAsExecuted(ctx context.Context, ids []uuid.UUID) error
	// ScheduleNextRetry bumps the retry counter, pushes next_retry_at by
	// the current step, doubles the step, and stops messages that have
	// crossed the retry ceiling.
	ScheduleNextRetry(ctx context.Context, ids []uuid.UUID) error
	DeleteExecuted(ctx context.Context, olderThan time.Time) error
}
