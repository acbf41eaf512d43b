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

// Inbox executes recorded broker deliveries. Failed executions are
// rescheduled individually, so a file one peer cannot serve yet does
// not hold back the rest of the inbox.
type Inbox struct {
	log   *zap.Logger
	bus   ports.Bus
	batch int
	idle  *backoff.Backoff
}

func NewInbox(logger *zap.Logger, bus ports.Bus, batch int) *Inbox {
	return &Inbox{
		log:   logger,
		bus:   bus,
		batch: batch,
		idle:  backoff.New(idleBase, idleLimit),
	}
}

func (w *Inbox) Run(ctx context.Context) error {
	w.log.Info("starting inbox worker")
	defer w.log.Info("inbox worker gracefully stopped")

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

func (w *Inbox) safeSweep(ctx context.Context) (n int) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("inbox sweep panic", zap.Any("panic", r))
		}
	}()

	n, err := w.sweep(ctx)
	if err != nil {
		w.log.Error("inbox sweep error", zap.Error(err))
	}
	return n
}

func (w *Inbox) sweep(ctx context.Context) (int, error) {
	res, err := w.bus.Handle(ctx, command.GetIncomingBrokerMessages{Limit: w.batch})
	if err != nil {
		return 0, err
	}
	msgs, _ := res.(brokermessage.BrokerMessages)
	if len(msgs) == 0 {
		return 0, nil
	}

	var okIDs, retryIDs []uuid.UUID
	for _, m := range msgs {
		if _, err = w.bus.Handle(ctx, command.ExecuteBrokerMessage{Message: m}); err != nil {
			w.log.Warn("broker message execution failed",
				zap.String("id", m.ID.String()),
				zap.String("key", m.Key),
				zap.Error(err),
			)
			retryIDs = append(retryIDs, m.ID)
			continue
		}
		okIDs = append(okIDs, m.ID)
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
