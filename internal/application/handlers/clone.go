package handlers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"filestore-api/internal/application/ports"
	"filestore-api/internal/application/uow"
	"filestore-api/internal/domain/account"
	"filestore-api/internal/domain/command"
	"filestore-api/internal/domain/event"
	"filestore-api/internal/domain/file"
	"filestore-api/internal/infrastructure/db/postgres"
	"filestore-api/internal/infrastructure/metrics"
)

// ErrNoReachablePeer means no sibling node produced the file within
// the clone timeout. The command is retried by the inbox scheduling.
var ErrNoReachablePeer = errors.New("no reachable peer has the file")

// CloneFile replicates a file another node announced. Already-known
// files and files the local account cannot take are skipped silently;
// only transient failures surface as errors so the inbox retries them.
func (h *CommandHandlers) CloneFile(ctx context.Context, u *uow.UnitOfWork, c command.CloneFile) error {
	if err := u.Enter(ctx); err != nil {
		return err
	}

	exists, err := u.Files.Exists(ctx, c.FileID)
	if err != nil {
		u.Close(ctx)
		return err
	}
	if exists {
		u.Close(ctx)
		return nil
	}

	a, err := u.Accounts.FetchByName(ctx, c.AccountName)
	u.Close(ctx)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil
		}
		return err
	}
	if a.CanAccept(c.Tag) != nil {
		h.logger.Info("skipping clone, account cannot take the file",
			zap.String("file_id", c.FileID.String()),
			zap.String("account", c.AccountName),
		)
		return nil
	}

	pf, err := h.askPeers(ctx, a.AuthToken, c.FileID)
	if err != nil {
		return err
	}

	src, err := h.peerClient.Download(ctx, pf.Link)
	if err != nil {
		return fmt.Errorf("download from peer: %w", err)
	}
	defer src.Close()

	if err = u.Enter(ctx); err != nil {
		return err
	}
	defer u.Close(ctx)

	f := file.NewClone(c.FileID, c.AccountName, c.Name, c.Size, c.Tag)
	if err = u.Files.Add(ctx, f); err != nil {
		// lost the race to a concurrent clone of the same file
		if postgres.IsPgUniqueViolation(err) {
			return nil
		}
		return err
	}

	size, err := u.Files.Store(ctx, f.ID, src)
	if err != nil {
		return fmt.Errorf("store clone %s: %w", f.ID, err)
	}
	if size != c.Size {
		return fmt.Errorf("clone %s: %w: want %d, got %d", f.ID, file.ErrSizeMismatch, c.Size, size)
	}

	stored, err := u.Files.MarkAsStored(ctx, f.ID, c.Name, size)
	if err != nil {
		return err
	}
	if err = u.Commit(ctx); err != nil {
		return err
	}

	h.count(metrics.FileCloned)
	u.PushMessage(event.FileStored{File: stored})

	return nil
}

// askPeers queries every configured peer concurrently and takes the
// first positive answer, cancelling the rest. Peers that lack the file
// or are down are ignored.
func (h *CommandHandlers) askPeers(ctx context.Context, authToken, fileID uuid.UUID) (*ports.PeerFile, error) {
	if len(h.peers) == 0 {
		return nil, ErrNoReachablePeer
	}

	raceCtx, cancel := context.WithTimeout(ctx, h.cloneTimeout)
	defer cancel()

	found := make(chan *ports.PeerFile, 1)

	var wg sync.WaitGroup
	for _, host := range h.peers {
		wg.Add(1)
		go func(host string) {
			defer wg.Done()

			pf, err := h.peerClient.FetchFile(raceCtx, host, authToken, fileID)
			if err != nil {
				return
			}

			select {
			case found <- pf:
				cancel()
			default:
			}
		}(host)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case pf := <-found:
		return pf, nil
	case <-done:
		select {
		case pf := <-found:
			return pf, nil
		default:
			return nil, ErrNoReachablePeer
		}
	case <-raceCtx.Done():
		return nil, ErrNoReachablePeer
	}
}
