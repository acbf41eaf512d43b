package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"filestore-api/internal/application/uow"
	"filestore-api/internal/domain/brokermessage"
	"filestore-api/internal/domain/command"
	"filestore-api/internal/domain/event"
	"filestore-api/internal/domain/file"
	"filestore-api/internal/infrastructure/metrics"
)

const eraseChunkSize = 1000

func (h *CommandHandlers) GetFile(ctx context.Context, u *uow.UnitOfWork, c command.GetFile) (*FileWithLink, error) {
	if err := u.Enter(ctx); err != nil {
		return nil, err
	}
	defer u.Close(ctx)

	f, err := u.Files.Fetch(ctx, c.FileID)
	if err != nil {
		return nil, err
	}
	if f.AccountName != c.AccountName {
		return nil, file.ErrNotFound
	}

	l, err := u.Links.AddDownload(ctx, f.ID, h.linkTTL)
	if err != nil {
		return nil, err
	}

	if err = u.Commit(ctx); err != nil {
		return nil, err
	}

	return &FileWithLink{File: f, Link: c.MakeDownloadURL(l.ID)}, nil
}

func (h *CommandHandlers) AddFile(ctx context.Context, u *uow.UnitOfWork, c command.AddFile) (*FileWithLink, error) {
	if err := u.Enter(ctx); err != nil {
		return nil, err
	}
	defer u.Close(ctx)

	a, err := u.Accounts.FetchByName(ctx, c.AccountName)
	if err != nil {
		return nil, err
	}
	if err = a.CanAccept(c.Tag); err != nil {
		return nil, err
	}

	f := file.New(c.AccountName, c.Tag)
	if err = u.Files.Add(ctx, f); err != nil {
		return nil, err
	}

	l, err := u.Links.AddUpload(ctx, f.ID, h.linkTTL)
	if err != nil {
		return nil, err
	}

	if err = u.Commit(ctx); err != nil {
		return nil, err
	}

	return &FileWithLink{File: f, Link: c.MakeUploadURL(l.ID)}, nil
}

func (h *CommandHandlers) DownloadFile(ctx context.Context, u *uow.UnitOfWork, c command.DownloadFile) (*FileDownload, error) {
	if err := u.Enter(ctx); err != nil {
		return nil, err
	}
	defer u.Close(ctx)

	l, err := u.Links.FetchDownload(ctx, c.LinkID)
	if err != nil {
		return nil, err
	}

	f, err := u.Files.Fetch(ctx, l.FileID)
	if err != nil {
		return nil, err
	}

	rc, err := u.Files.Bytes(ctx, f.ID)
	if err != nil {
		return nil, err
	}

	// The link is one-shot: consume it before handing out the stream.
	if err = u.Links.Delete(ctx, l.ID); err != nil {
		rc.Close()
		return nil, err
	}
	if err = u.Commit(ctx); err != nil {
		rc.Close()
		return nil, err
	}

	return &FileDownload{Name: f.Name, Size: f.Size, Bytes: rc}, nil
}

func (h *CommandHandlers) UploadFile(ctx context.Context, u *uow.UnitOfWork, c command.UploadFile) (*file.File, error) {
	if err := u.Enter(ctx); err != nil {
		return nil, err
	}
	defer u.Close(ctx)

	l, err := u.Links.FetchUpload(ctx, c.LinkID)
	if err != nil {
		return nil, err
	}

	f, err := u.Files.FetchNotStored(ctx, l.FileID)
	if err != nil {
		return nil, err
	}

	size, err := u.Files.Store(ctx, f.ID, c.Source)
	if err != nil {
		return nil, fmt.Errorf("store file %s: %w", f.ID, err)
	}

	stored, err := u.Files.MarkAsStored(ctx, f.ID, sanitizeFileName(c.Filename), size)
	if err != nil {
		return nil, err
	}

	if err = u.Links.Delete(ctx, l.ID); err != nil {
		return nil, err
	}
	if err = u.Commit(ctx); err != nil {
		return nil, err
	}

	h.count(metrics.FileStored)
	u.PushMessage(event.FileStored{File: stored})

	return stored, nil
}

func (h *CommandHandlers) DeleteFile(ctx context.Context, u *uow.UnitOfWork, c command.DeleteFile) error {
	if err := u.Enter(ctx); err != nil {
		return err
	}
	defer u.Close(ctx)

	f, err := u.Files.Delete(ctx, c.AccountName, c.FileID)
	if err != nil {
		return err
	}

	if err = u.Links.DeleteByFileID(ctx, f.ID); err != nil {
		return err
	}
	if err = u.Commit(ctx); err != nil {
		return err
	}

	h.count(metrics.FileDeleted)
	u.PushMessage(event.FileDeleted{File: f})

	return nil
}

// EraseFile removes the byte content first and flips the erased flag
// only after the backend confirms; a failed physical delete leaves the
// row for the next sweep. The state check precedes the physical
// removal: a file that is not deleted-and-not-erased must keep its
// content untouched.
func (h *CommandHandlers) EraseFile(ctx context.Context, u *uow.UnitOfWork, c command.EraseFile) error {
	if err := u.Enter(ctx); err != nil {
		return err
	}
	defer u.Close(ctx)

	f, err := u.Files.FetchDeleted(ctx, c.FileID)
	if err != nil {
		return err
	}

	err = u.Files.EraseBytes(ctx, f.ID)
	if err != nil && !errors.Is(err, file.ErrNotFound) {
		return fmt.Errorf("erase file %s: %w", f.ID, err)
	}

	if err = u.Files.MarkAsErased(ctx, f.ID); err != nil {
		return err
	}
	if err = u.Commit(ctx); err != nil {
		return err
	}

	h.count(metrics.FileErased)

	return nil
}

func (h *CommandHandlers) EraseDeletedFiles(ctx context.Context, u *uow.UnitOfWork, c command.EraseDeletedFiles) (int, error) {
	if err := u.Enter(ctx); err != nil {
		return 0, err
	}
	defer u.Close(ctx)

	fs, err := u.Files.FetchDeletedNotErased(ctx, time.Now().Add(-c.Retention), eraseChunkSize)
	if err != nil {
		return 0, err
	}

	for _, f := range fs {
		u.PushMessage(command.EraseFile{FileID: f.ID})
	}

	if len(fs) > 0 {
		h.logger.Info("scheduling file erasure", zap.Int("count", len(fs)))
	}

	return len(fs), nil
}

func (h *CommandHandlers) GetStoredNotDeletedFiles(ctx context.Context, u *uow.UnitOfWork, c command.GetStoredNotDeletedFiles) (file.Files, error) {
	if err := u.Enter(ctx); err != nil {
		return nil, err
	}
	defer u.Close(ctx)

	return u.Files.FetchStoredNotDeleted(ctx, c.Limit, c.Offset)
}

// RepublishStoredFiles re-announces every stored file so nodes that
// joined after the original announcement catch up. Peers that already
// hold a file skip the clone, so the re-announce is idempotent.
func (h *CommandHandlers) RepublishStoredFiles(ctx context.Context, u *uow.UnitOfWork, c command.RepublishStoredFiles) (int, error) {
	if err := u.Enter(ctx); err != nil {
		return 0, err
	}
	defer u.Close(ctx)

	total := 0
	for offset := 0; ; offset += c.Limit {
		fs, err := u.Files.FetchStoredNotDeleted(ctx, c.Limit, offset)
		if err != nil {
			return total, err
		}

		for _, f := range fs {
			u.PushMessage(command.AddOutgoingBrokerMessage{
				Key:  brokermessage.KeyFileStored,
				Body: f.ToBroker(h.server),
			})
		}
		total += len(fs)

		if len(fs) < c.Limit {
			break
		}
	}

	if total > 0 {
		h.logger.Info("republishing stored files", zap.Int("count", total))
	}

	return total, nil
}
