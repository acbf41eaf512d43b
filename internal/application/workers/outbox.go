// Package workers hosts the background loops: the outbox pump, the
// inbox executor and the periodic maintenance crons. All of them talk
// to the system only through the message bus.
package workers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"filestore-api/internal/application/ports"
	"filestore-api/internal/domain/brokermessage"
	"filestore-api/internal/domain/command"
	"filestore-api/pkg/backoff"
)

const (
	idleBase  = time.Second
	idleLimit = 30 * time.Second
)

// Outbox drains eligible outgoing rows and publishes them. One bad
// message never blocks the rest of the batch: successes are marked
// executed, failures are rescheduled with a doubled delay.
type Outbox struct {
	log   *zap.Logger
	bus   ports.Bus
	batch int
	idle  *backoff.Backoff
}

func NewOutbox(logger *zap.Logger, bus ports.Bus, batch int) *Outbox {
	return &Outbox{
		log:   logger,
		bus:   bus,
		batch: batch,
		idle:  backoff.New(idleBase, idleLimit),
	}
}

func (w *Outbox) Run(ctx context.Context) error {
	w.log.Info("starting outbox worker")
	defer w.log.Info("outbox worker gracefully stopped")

	for {
		n := w.safeSweep(ctx)

		if n > 0 {
			w.idle.Reset()
			continue
		}

		select {
		case <-time.After(w.idle.Next()):
		case <-ctx.Done():
			return nil
		}
	}
}

// safeSweep keeps a panicking handler from taking the loop down; the
// affected rows stay eligible and the next sweep retries them.
func (w *Outbox) safeSweep(ctx context.Context) (n int) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("outbox sweep panic", zap.Any("panic", r))
		}
	}()

	n, err := w.sweep(ctx)
	if err != nil {
		w.log.Error("outbox sweep error", zap.Error(err))
	}
	return n
}

func (w *Outbox) sweep(ctx context.Context) (int, error) {
	res, err := w.bus.Handle(ctx, command.GetOutgoingBrokerMessages{Limit: w.batch})
	if err != nil {
		return 0, err
	}
	msgs, _ := res.(brokermessage.BrokerMessages)
	if len(msgs) == 0 {
		return 0, nil
	}

	var okIDs, retryIDs []uuid.UUID
	for _, m := range msgs {
		res, err = w.bus.Handle(ctx, command.PublishBrokerMessage{Message: m})
		if err != nil {
			retryIDs = append(retryIDs, m.ID)
			continue
		}
		if ok, _ := res.(bool); ok {
			okIDs = append(okIDs, m.ID)
		} else {
			retryIDs = append(retryIDs, m.ID)
		}
	}

	if len(okIDs) > 0 {
		if _, err = w.bus.Handle(ctx, command.MarkBrokerMessagesExecuted{IDs: okIDs}); err != nil {
			return len(msgs), err
		}
	}
	if len(retryIDs) > 0 {
		if _, err = w.bus.Handle(ctx, command.ScheduleBrokerMessagesRetry{IDs: retryIDs}); err != nil {
			return len(msgs), err
		}
	}

	return len(msgs), nil
}
