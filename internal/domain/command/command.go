// Package command declares the closed set of operations the message
// bus can execute. One struct per operation, dispatched by type.
package command

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"filestore-api/internal/domain/brokermessage"
)

type Command interface{ isCommand() }

// ***** ACCOUNTS *****

type GetAccounts struct{}

type GetAccountByAuthToken struct {
	AuthToken uuid.UUID
}

type UpdateAccountsActualSizes struct{}

// ***** FILES *****

type GetFile struct {
	AccountName     string
	FileID          uuid.UUID
	MakeDownloadURL func(linkID uuid.UUID) string
}

type AddFile struct {
	AccountName   string
	Tag           string
	MakeUploadURL func(linkID uuid.UUID) string
}

type DownloadFile struct {
	LinkID uuid.UUID
}

type UploadFile struct {
	LinkID   uuid.UUID
	Filename string
	Source   io.Reader
}

type DeleteFile struct {
	AccountName string
	FileID      uuid.UUID
}

type EraseFile struct {
	FileID uuid.UUID
}

type EraseDeletedFiles struct {
	Retention time.Duration
}

type GetStoredNotDeletedFiles struct {
	Limit  int
	Offset int
}

type RepublishStoredFiles struct {
	Limit int
}

type CloneFile struct {
	AccountName string
	FileID      uuid.UUID
	Name        string
	Size        int64
	Tag         string
}

// ***** LINKS *****

type DeleteExpiredLinks struct{}

// ***** BROKER MESSAGES *****

type AddOutgoingBrokerMessage struct {
	Key   string
	Body  any
	Delay time.Duration
}

type AddIncomingBrokerMessage struct {
	ID   uuid.UUID
	App  string
	Key  string
	Body json.RawMessage
}

type GetOutgoingBrokerMessages struct {
	Limit int
}

type GetIncomingBrokerMessages struct {
	Limit int
}

type MarkBrokerMessagesExecuted struct {
	IDs []uuid.UUID
}

type ScheduleBrokerMessagesRetry struct {
	IDs []uuid.UUID
}

type PublishBrokerMessage struct {
	Message *brokermessage.BrokerMessage
}

type ExecuteBrokerMessage struct {
	Message *brokermessage.BrokerMessage
}

type DeleteExecutedBrokerMessages struct {
	OlderThan time.Duration
}

func (GetAccounts) isCommand()                  {}
func (GetAccountByAuthToken) isCommand()        {}
func (UpdateAccountsActualSizes) isCommand()    {}
func (GetFile) isCommand()                      {}
func (AddFile) isCommand()                      {}
func (DownloadFile) isCommand()                 {}
func (UploadFile) isCommand()                   {}
func (DeleteFile) isCommand()                   {}
func (EraseFile) isCommand()                    {}
func (EraseDeletedFiles) isCommand()            {}
func (GetStoredNotDeletedFiles) isCommand()     {}
func (RepublishStoredFiles) isCommand()         {}
func (CloneFile) isCommand()                    {}
func (DeleteExpiredLinks) isCommand()           {}
func (AddOutgoingBrokerMessage) isCommand()     {}
func (AddIncomingBrokerMessage) isCommand()     {}
func (GetOutgoingBrokerMessages) isCommand()    {}
func (GetIncomingBrokerMessages) isCommand()    {}
func (MarkBrokerMessagesExecuted) isCommand()   {}
func (ScheduleBrokerMessagesRetry) isCommand()  {}
func (PublishBrokerMessage) isCommand()         {}
func (ExecuteBrokerMessage) isCommand()         {}
func (DeleteExecutedBrokerMessages) isCommand() {}
