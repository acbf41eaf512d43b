package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"filestore-api/internal/application/uow"
	"filestore-api/internal/domain/brokermessage"
	"filestore-api/internal/domain/command"
	"filestore-api/internal/infrastructure/metrics"
)

func (h *CommandHandlers) AddOutgoingBrokerMessage(ctx context.Context, u *uow.UnitOfWork, c command.AddOutgoingBrokerMessage) error {
	body, err := json.Marshal(c.Body)
	if err != nil {
		return fmt.Errorf("marshal broker message body: %w", err)
	}

	if err = u.Enter(ctx); err != nil {
		return err
	}
	defer u.Close(ctx)

	if _, err = u.BrokerMessages.AddOutgoing(ctx, c.Key, body, c.Delay); err != nil {
		return err
	}

	return u.Commit(ctx)
}

func (h *CommandHandlers) AddIncomingBrokerMessage(ctx context.Context, u *uow.UnitOfWork, c command.AddIncomingBrokerMessage) error {
	if err := u.Enter(ctx); err != nil {
		return err
	}
	defer u.Close(ctx)

	if err := u.BrokerMessages.AddIncoming(ctx, c.ID, c.App, c.Key, c.Body); err != nil {
		return err
	}

	return u.Commit(ctx)
}

func (h *CommandHandlers) GetOutgoingBrokerMessages(ctx context.Context, u *uow.UnitOfWork, c command.GetOutgoingBrokerMessages) (brokermessage.BrokerMessages, error) {
	if err := u.Enter(ctx); err != nil {
		return nil, err
	}
	defer u.Close(ctx)

	return u.BrokerMessages.FetchNotExecutedOutgoing(ctx, c.Limit)
}

func (h *CommandHandlers) GetIncomingBrokerMessages(ctx context.Context, u *uow.UnitOfWork, c command.GetIncomingBrokerMessages) (brokermessage.BrokerMessages, error) {
	if err := u.Enter(ctx); err != nil {
		return nil, err
	}
	defer u.Close(ctx)

	return u.BrokerMessages.FetchNotExecutedIncoming(ctx, c.Limit)
}

func (h *CommandHandlers) MarkBrokerMessagesExecuted(ctx context.Context, u *uow.UnitOfWork, c command.MarkBrokerMessagesExecuted) error {
	if err := u.Enter(ctx); err != nil {
		return err
	}
	defer u.Close(ctx)

	if err := u.BrokerMessages.MarkAsExecuted(ctx, c.IDs); err != nil {
		return err
	}

	return u.Commit(ctx)
}

func (h *CommandHandlers) ScheduleBrokerMessagesRetry(ctx context.Context, u *uow.UnitOfWork, c command.ScheduleBrokerMessagesRetry) error {
	if err := u.Enter(ctx); err != nil {
		return err
	}
	defer u.Close(ctx)

	if err := u.BrokerMessages.ScheduleNextRetry(ctx, c.IDs); err != nil {
		return err
	}

	return u.Commit(ctx)
}

// PublishBrokerMessage hands one outbox envelope to the broker and
// reports success as a bool so a batch keeps going past one bad
// publish; the outbox scheduling owns retries.
func (h *CommandHandlers) PublishBrokerMessage(ctx context.Context, _ *uow.UnitOfWork, c command.PublishBrokerMessage) (bool, error) {
	m := c.Message
	if err := h.publisher.Publish(ctx, m.App, m.Key, m.Body, m.ID); err != nil {
		h.logger.Warn("broker publish failed",
			zap.String("id", m.ID.String()),
			zap.String("key", m.Key),
			zap.Error(err),
		)
		return false, nil
	}

	h.count(metrics.BrokerPublished)

	return true, nil
}

// ExecuteBrokerMessage maps an inbox envelope onto follow-up commands.
// Messages this node published itself, and keys it does not understand,
// execute as no-ops so they leave the inbox.
func (h *CommandHandlers) ExecuteBrokerMessage(ctx context.Context, u *uow.UnitOfWork, c command.ExecuteBrokerMessage) error {
	m := c.Message
	if m.App == h.server {
		return nil
	}

	var p filePayload
	if err := json.Unmarshal(m.Body, &p); err != nil {
		return fmt.Errorf("unmarshal broker message %s body: %w", m.ID, err)
	}

	switch m.Key {
	case brokermessage.KeyFileStored:
		u.PushMessage(command.CloneFile{
			AccountName: p.AccountName,
			FileID:      p.ID,
			Name:        p.Name,
			Size:        p.Size,
			Tag:         p.Tag,
		})
	case brokermessage.KeyFileDeleted:
		u.PushMessage(command.DeleteFile{
			AccountName: p.AccountName,
			FileID:      p.ID,
		})
	default:
		h.logger.Warn("unknown broker message key",
			zap.String("id", m.ID.String()),
			zap.String("key", m.Key),
		)
	}

	h.count(metrics.BrokerExecuted)

	return nil
}

func (h *CommandHandlers) DeleteExecutedBrokerMessages(ctx context.Context, u *uow.UnitOfWork, c command.DeleteExecutedBrokerMessages) error {
	if err := u.Enter(ctx); err != nil {
		return err
	}
	defer u.Close(ctx)

	if err := u.BrokerMessages.DeleteExecuted(ctx, time.Now().Add(-c.OlderThan)); err != nil {
		return err
	}

	return u.Commit(ctx)
}

type filePayload struct {
	ID          uuid.UUID `json:"id"`
	AccountName string    `json:"account_name"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	Tag         string    `json:"tag"`
	Server      string    `json:"server"`
}
