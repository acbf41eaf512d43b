package mq

import (
	"context"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"filestore-api/internal/application/ports"
	"filestore-api/internal/domain/command"
	"filestore-api/pkg/rmqconsumer"
)

// NewDeliveryHandler records each broker delivery in the durable inbox
// and nothing more; execution happens later in the inbox worker. A
// delivery without a usable message id cannot be deduplicated, so it
// is logged and dropped rather than requeued as poison.
func NewDeliveryHandler(logger *zap.Logger, bus ports.Bus) rmqconsumer.Handler {
	return func(ctx context.Context, d amqp091.Delivery) error {
		id, err := uuid.Parse(d.MessageId)
		if err != nil {
			logger.Warn("dropping delivery without message id",
				zap.String("message_id", d.MessageId),
				zap.String("key", d.RoutingKey),
			)
			return nil
		}

		_, err = bus.Handle(ctx, command.AddIncomingBrokerMessage{
			ID:   id,
			App:  d.AppId,
			Key:  d.RoutingKey,
			Body: d.Body,
		})

		return err
	}
}
