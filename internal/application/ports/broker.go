package ports

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// BrokerPublisher delivers one outbox envelope to the broker. A nil
// error means the broker accepted the message; anything else is
// retried by the outbox scheduling.
type BrokerPublisher interface {
	Publish(ctx context.Context, app, key string, body json.RawMessage, id uuid.UUID) error
}
