// Package uow binds one storage transaction, the repositories working
// inside it, and the messages a handler defers for the bus to sweep.
package uow

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"filestore-api/internal/application/ports"
	accountDomain "filestore-api/internal/domain/account"
	brokerMessageDomain "filestore-api/internal/domain/brokermessage"
	fileDomain "filestore-api/internal/domain/file"
	linkDomain "filestore-api/internal/domain/link"
	accountDB "filestore-api/internal/infrastructure/db/postgres/account"
	brokerMessageDB "filestore-api/internal/infrastructure/db/postgres/brokermessage"
	fileDB "filestore-api/internal/infrastructure/db/postgres/file"
	linkDB "filestore-api/internal/infrastructure/db/postgres/link"
)

var (
	ErrAlreadyEntered  = errors.New("unit of work already entered")
	ErrAlreadyFinished = errors.New("unit of work already finished")
	ErrNotEntered      = errors.New("unit of work not entered")
)

// DB starts transactions. *pgxpool.Pool satisfies it.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Factory struct {
	db           DB
	storage      ports.ByteStorage
	app          string
	retryCeiling int
}

func NewFactory(db DB, storage ports.ByteStorage, app string, retryCeiling int) *Factory {
	return &Factory{
		db:           db,
		storage:      storage,
		app:          app,
		retryCeiling: retryCeiling,
	}
}

// New returns a fresh unit of work with an empty message queue and no
// open transaction; Enter opens one.
func (f *Factory) New() *UnitOfWork {
	return &UnitOfWork{factory: f}
}

// UnitOfWork is re-enterable: one instance is borrowed by the bus for
// a whole sweep, and each handler runs its own Enter/Commit/Close
// scope on it. The deferred message queue outlives the scopes.
type UnitOfWork struct {
	factory  *Factory
	tx       pgx.Tx
	finished bool
	messages []any

	Accounts       accountDomain.Repository
	Files          fileDomain.Repository
	Links          linkDomain.Repository
	BrokerMessages brokerMessageDomain.Repository
}

// Enter begins a transaction and binds all repositories to it.
func (u *UnitOfWork) Enter(ctx context.Context) error {
	if u.tx != nil && !u.finished {
		return ErrAlreadyEntered
	}

	tx, err := u.factory.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	u.tx = tx
	u.finished = false
	u.Accounts = accountDB.NewRepository(tx)
	u.Files = fileDB.NewRepository(tx, u.factory.storage)
	u.Links = linkDB.NewRepository(tx)
	u.BrokerMessages = brokerMessageDB.NewRepository(tx, u.factory.app, u.factory.retryCeiling)

	return nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return ErrNotEntered
	}
	if u.finished {
		return ErrAlreadyFinished
	}

	u.finished = true
	return u.tx.Commit(ctx)
}

func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return ErrNotEntered
	}
	if u.finished {
		return ErrAlreadyFinished
	}

	u.finished = true
	return u.tx.Rollback(ctx)
}

// Close rolls back unless the scope was finished explicitly, so an
// early return on error can never leak an open transaction.
func (u *UnitOfWork) Close(ctx context.Context) {
	if u.tx == nil || u.finished {
		return
	}
	u.finished = true
	_ = u.tx.Rollback(ctx)
}

// PushMessage defers an event or command for the bus to pick up after
// the current handler returns.
func (u *UnitOfWork) PushMessage(msg any) {
	u.messages = append(u.messages, msg)
}

// CollectNewMessages drains and clears the pending queue.
func (u *UnitOfWork) CollectNewMessages() []any {
	msgs := u.messages
	u.messages = nil
	return msgs
}
