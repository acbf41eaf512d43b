package workers

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"filestore-api/internal/domain/brokermessage"
	"filestore-api/internal/domain/command"
)

type FakeBus struct {
	HandleFunc func(ctx context.Context, msg any) (any, error)
	Handled    []any
}

func (f *FakeBus) Handle(ctx context.Context, msg any) (any, error) {
	f.Handled = append(f.Handled, msg)
	if f.HandleFunc == nil {
		return nil, nil
	}
	return f.HandleFunc(ctx, msg)
}

func (f *FakeBus) commandsOfType(match func(any) bool) []any {
	var out []any
	for _, m := range f.Handled {
		if match(m) {
			out = append(out, m)
		}
	}
	return out
}

func outboxBatch(ids ...uuid.UUID) brokermessage.BrokerMessages {
	var ms brokermessage.BrokerMessages
	for _, id := range ids {
		ms = append(ms, &brokermessage.BrokerMessage{
			ID:        id,
			Direction: brokermessage.DirectionOut,
			App:       "node1",
			Key:       brokermessage.KeyFileStored,
		})
	}
	return ms
}

func TestOutboxSweep_SplitsSuccessesAndFailures(t *testing.T) {
	okID, badID := uuid.New(), uuid.New()

	bus := &FakeBus{
		HandleFunc: func(_ context.Context, msg any) (any, error) {
			switch m := msg.(type) {
			case command.GetOutgoingBrokerMessages:
				return outboxBatch(okID, badID), nil
			case command.PublishBrokerMessage:
				return m.Message.ID == okID, nil
			default:
				return nil, nil
			}
		},
	}
	w := NewOutbox(zap.NewNop(), bus, 10)

	n, err := w.sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	marks := bus.commandsOfType(func(m any) bool { _, ok := m.(command.MarkBrokerMessagesExecuted); return ok })
	require.Len(t, marks, 1)
	assert.Equal(t, []uuid.UUID{okID}, marks[0].(command.MarkBrokerMessagesExecuted).IDs)

	retries := bus.commandsOfType(func(m any) bool { _, ok := m.(command.ScheduleBrokerMessagesRetry); return ok })
	require.Len(t, retries, 1)
	assert.Equal(t, []uuid.UUID{badID}, retries[0].(command.ScheduleBrokerMessagesRetry).IDs)
}

func TestOutboxSweep_EmptyBatch(t *testing.T) {
	bus := &FakeBus{
		HandleFunc: func(_ context.Context, msg any) (any, error) {
			return brokermessage.BrokerMessages{}, nil
		},
	}
	w := NewOutbox(zap.NewNop(), bus, 10)

	n, err := w.sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	// no mark or schedule calls for an empty batch
	assert.Len(t, bus.Handled, 1)
}

func TestInboxSweep_FailedExecutionIsRescheduled(t *testing.T) {
	okID, badID := uuid.New(), uuid.New()

	bus := &FakeBus{
		HandleFunc: func(_ context.Context, msg any) (any, error) {
			switch m := msg.(type) {
			case command.GetIncomingBrokerMessages:
				return outboxBatch(okID, badID), nil
			case command.ExecuteBrokerMessage:
				if m.Message.ID == badID {
					return nil, errors.New("no reachable peer")
				}
				return nil, nil
			default:
				return nil, nil
			}
		},
	}
	w := NewInbox(zap.NewNop(), bus, 10)

	n, err := w.sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	marks := bus.commandsOfType(func(m any) bool { _, ok := m.(command.MarkBrokerMessagesExecuted); return ok })
	require.Len(t, marks, 1)
	assert.Equal(t, []uuid.UUID{okID}, marks[0].(command.MarkBrokerMessagesExecuted).IDs)

	retries := bus.commandsOfType(func(m any) bool { _, ok := m.(command.ScheduleBrokerMessagesRetry); return ok })
	require.Len(t, retries, 1)
	assert.Equal(t, []uuid.UUID{badID}, retries[0].(command.ScheduleBrokerMessagesRetry).IDs)
}

func TestSafeSweep_RecoversPanic(t *testing.T) {
	bus := &FakeBus{
		HandleFunc: func(_ context.Context, msg any) (any, error) {
			panic("poisoned batch")
		},
	}
	w := NewOutbox(zap.NewNop(), bus, 10)

	assert.NotPanics(t, func() { w.safeSweep(context.Background()) })
}
