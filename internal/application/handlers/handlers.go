// Package handlers implements the command and event handlers executed
// by the message bus. Every handler runs inside a unit-of-work scope
// it opens itself and defers follow-up work by pushing messages.
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"filestore-api/config"
	"filestore-api/internal/application/ports"
	"filestore-api/internal/application/uow"
	"filestore-api/internal/domain/command"
)

type CommandHandlers struct {
	logger       *zap.Logger
	server       string
	peers        []string
	linkTTL      time.Duration
	cloneTimeout time.Duration
	peerClient   ports.PeerClient
	publisher    ports.BrokerPublisher
	mCounter     *prometheus.CounterVec
}

func NewCommandHandlers(
	logger *zap.Logger,
	cfg config.Config,
	peerClient ports.PeerClient,
	publisher ports.BrokerPublisher,
	mCounter *prometheus.CounterVec,
) *CommandHandlers {
	return &CommandHandlers{
		logger:       logger,
		server:       cfg.App.Name,
		peers:        cfg.App.Peers,
		linkTTL:      cfg.Storage.LinkTTL,
		cloneTimeout: cfg.Broker.CloneTimeout,
		peerClient:   peerClient,
		publisher:    publisher,
		mCounter:     mCounter,
	}
}

// Execute resolves the single handler for cmd at compile time. An
// unknown command type is a programming error, not a silent no-op.
func (h *CommandHandlers) Execute(ctx context.Context, u *uow.UnitOfWork, cmd command.Command) (any, error) {
	switch c := cmd.(type) {
	case command.GetAccounts:
		return h.GetAccounts(ctx, u, c)
	case command.GetAccountByAuthToken:
		return h.GetAccountByAuthToken(ctx, u, c)
	case command.UpdateAccountsActualSizes:
		return nil, h.UpdateAccountsActualSizes(ctx, u, c)

	case command.GetFile:
		return h.GetFile(ctx, u, c)
	case command.AddFile:
		return h.AddFile(ctx, u, c)
	case command.DownloadFile:
		return h.DownloadFile(ctx, u, c)
	case command.UploadFile:
		return h.UploadFile(ctx, u, c)
	case command.DeleteFile:
		return nil, h.DeleteFile(ctx, u, c)
	case command.EraseFile:
		return nil, h.EraseFile(ctx, u, c)
	case command.EraseDeletedFiles:
		return h.EraseDeletedFiles(ctx, u, c)
	case command.GetStoredNotDeletedFiles:
		return h.GetStoredNotDeletedFiles(ctx, u, c)
	case command.RepublishStoredFiles:
		return h.RepublishStoredFiles(ctx, u, c)
	case command.CloneFile:
		return nil, h.CloneFile(ctx, u, c)

	case command.DeleteExpiredLinks:
		return nil, h.DeleteExpiredLinks(ctx, u, c)

	case command.AddOutgoingBrokerMessage:
		return nil, h.AddOutgoingBrokerMessage(ctx, u, c)
	case command.AddIncomingBrokerMessage:
		return nil, h.AddIncomingBrokerMessage(ctx, u, c)
	case command.GetOutgoingBrokerMessages:
		return h.GetOutgoingBrokerMessages(ctx, u, c)
	case command.GetIncomingBrokerMessages:
		return h.GetIncomingBrokerMessages(ctx, u, c)
	case command.MarkBrokerMessagesExecuted:
		return nil, h.MarkBrokerMessagesExecuted(ctx, u, c)
	case command.ScheduleBrokerMessagesRetry:
		return nil, h.ScheduleBrokerMessagesRetry(ctx, u, c)
	case command.PublishBrokerMessage:
		return h.PublishBrokerMessage(ctx, u, c)
	case command.ExecuteBrokerMessage:
		return nil, h.ExecuteBrokerMessage(ctx, u, c)
	case command.DeleteExecutedBrokerMessages:
		return nil, h.DeleteExecutedBrokerMessages(ctx, u, c)

	default:
		return nil, fmt.Errorf("no handler registered for %T", cmd)
	}
}

func (h *CommandHandlers) count(result string) {
	if h.mCounter != nil {
		h.mCounter.WithLabelValues(result).Inc()
	}
}
