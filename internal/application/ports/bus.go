package ports

import "context"

// Bus is the message-bus entry point used by controllers, workers and
// the broker consumer. msg must be a command.Command or event.Event.
type Bus interface {
	Handle(ctx context.Context, msg any) (any, error)
}
