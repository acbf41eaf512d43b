// Package bus drains a breadth-first queue of commands and events:
// handling one message may push more onto the shared unit of work, and
// the sweep continues until the queue is quiescent.
package bus

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"filestore-api/internal/application/uow"
	"filestore-api/internal/domain/command"
	"filestore-api/internal/domain/event"
)

// CommandExecutor dispatches one command to its single handler.
// Commands are a closed set resolved by type switch.
type CommandExecutor interface {
	Execute(ctx context.Context, u *uow.UnitOfWork, cmd command.Command) (any, error)
}

// EventHandler is one subscriber in the fan-out table. Errors are
// logged and swallowed so one failing subscriber cannot block its
// siblings or the rest of the sweep.
type EventHandler func(ctx context.Context, u *uow.UnitOfWork, evt event.Event) error

type Bus struct {
	logger   *zap.Logger
	uowf     *uow.Factory
	commands CommandExecutor
	events   map[string][]EventHandler
}

func New(logger *zap.Logger, uowf *uow.Factory, commands CommandExecutor) *Bus {
	return &Bus{
		logger:   logger,
		uowf:     uowf,
		commands: commands,
		events:   make(map[string][]EventHandler),
	}
}

func (b *Bus) Subscribe(kind string, h EventHandler) {
	b.events[kind] = append(b.events[kind], h)
}

// Handle executes msg and every message it transitively pushes, all
// against one borrowed unit of work. The result is the first command's
// result; command errors abort the sweep, event-handler errors do not.
func (b *Bus) Handle(ctx context.Context, msg any) (any, error) {
	u := b.uowf.New()

	queue := []any{msg}
	var result any
	gotResult := false

	for len(queue) > 0 {
		m := queue[0]
		queue = queue[1:]

		switch v := m.(type) {
		case event.Event:
			b.handleEvent(ctx, u, v)
			queue = append(queue, u.CollectNewMessages()...)

		case command.Command:
			res, err := b.commands.Execute(ctx, u, v)
			if err != nil {
				b.logger.Error("command failed",
					zap.String("command", fmt.Sprintf("%T", v)),
					zap.Error(err),
				)
				return nil, err
			}
			if !gotResult {
				result = res
				gotResult = true
			}
			queue = append(queue, u.CollectNewMessages()...)

		default:
			return nil, fmt.Errorf("%T is not a command or an event", m)
		}
	}

	return result, nil
}

func (b *Bus) handleEvent(ctx context.Context, u *uow.UnitOfWork, evt event.Event) {
	for _, h := range b.events[evt.Kind()] {
		if err := h(ctx, u, evt); err != nil {
			b.logger.Error("event handler failed",
				zap.String("event", evt.Kind()),
				zap.Error(err),
			)
		}
	}
}
