package handlers

import (
	"context"
	"fmt"

	"filestore-api/internal/application/uow"
	"filestore-api/internal/domain/brokermessage"
	"filestore-api/internal/domain/command"
	"filestore-api/internal/domain/event"
)

// OnFileStored announces a freshly stored file to sibling nodes
// through the outbox.
func (h *CommandHandlers) OnFileStored(_ context.Context, u *uow.UnitOfWork, e event.Event) error {
	fs, ok := e.(event.FileStored)
	if !ok {
		return fmt.Errorf("unexpected event %T", e)
	}

	u.PushMessage(command.AddOutgoingBrokerMessage{
		Key:  brokermessage.KeyFileStored,
		Body: fs.File.ToBroker(h.server),
	})

	return nil
}

// OnFileDeleted propagates a deletion to sibling nodes through the
// outbox.
func (h *CommandHandlers) OnFileDeleted(_ context.Context, u *uow.UnitOfWork, e event.Event) error {
	fd, ok := e.(event.FileDeleted)
	if !ok {
		return fmt.Errorf("unexpected event %T", e)
	}

	u.PushMessage(command.AddOutgoingBrokerMessage{
		Key:  brokermessage.KeyFileDeleted,
		Body: fd.File.ToBroker(h.server),
	})

	return nil
}
