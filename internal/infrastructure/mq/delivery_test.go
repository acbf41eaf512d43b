package mq

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"filestore-api/internal/domain/brokermessage"
	"filestore-api/internal/domain/command"
)

type FakeBus struct {
	Handled []any
	Err     error
}

func (f *FakeBus) Handle(_ context.Context, msg any) (any, error) {
	f.Handled = append(f.Handled, msg)
	return nil, f.Err
}

func TestDeliveryHandler_RecordsInboxMessage(t *testing.T) {
	bus := &FakeBus{}
	h := NewDeliveryHandler(zap.NewNop(), bus)

	id := uuid.New()
	err := h(context.Background(), amqp091.Delivery{
		MessageId:  id.String(),
		AppId:      "node2",
		RoutingKey: brokermessage.KeyFileStored,
		Body:       []byte(`{"id":"x"}`),
	})
	require.NoError(t, err)

	require.Len(t, bus.Handled, 1)
	in, ok := bus.Handled[0].(command.AddIncomingBrokerMessage)
	require.True(t, ok)
	assert.Equal(t, id, in.ID)
	assert.Equal(t, "node2", in.App)
	assert.Equal(t, brokermessage.KeyFileStored, in.Key)
	assert.JSONEq(t, `{"id":"x"}`, string(in.Body))
}

func TestDeliveryHandler_DropsDeliveryWithoutMessageID(t *testing.T) {
	bus := &FakeBus{}
	h := NewDeliveryHandler(zap.NewNop(), bus)

	err := h(context.Background(), amqp091.Delivery{
		MessageId:  "not-a-uuid",
		RoutingKey: brokermessage.KeyFileStored,
	})
	require.NoError(t, err)
	assert.Empty(t, bus.Handled)
}
