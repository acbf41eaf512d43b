package file

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		ID          uuid.UUID
		StoredID    uuid.UUID
		Name        string
		Size        int64
		Tag         string
		AccountName string
		Created     time.Time

		HasStored bool
		Stored    *time.Time

		HasDeleted bool
		Deleted    *time.Time

		HasErased bool
		Erased    *time.Time
	}
	Files []*File
)

var (
	ErrNotFound     = errors.New("file not found")
	ErrSizeMismatch = errors.New("file size mismatch")
)

// New creates a not-yet-stored file owned by the account. The stored
// id is minted separately from the business id so content can be
// re-keyed without changing the identity peers know the file by.
func New(accountName, tag string) *File {
	return &File{
		ID:          uuid.New(),
		StoredID:    uuid.New(),
		Tag:         tag,
		AccountName: accountName,
		Created:     time.Now(),
	}
}

// NewClone creates a not-yet-stored replica row keeping the business
// id advertised by the originating node.
func NewClone(id uuid.UUID, accountName, name string, size int64, tag string) *File {
	f := New(accountName, tag)
	f.ID = id
	f.Name = name
	f.Size = size
	return f
}

// BrokerPayload is the event body sent to sibling nodes.
type BrokerPayload struct {
	ID          uuid.UUID  `json:"id"`
	AccountName string     `json:"account_name"`
	Name        string     `json:"name"`
	Size        int64      `json:"size"`
	Tag         string     `json:"tag"`
	Stored      *time.Time `json:"stored"`
	Deleted     *time.Time `json:"deleted"`
	Server      string     `json:"server"`
}

func (f *File) ToBroker(server string) BrokerPayload {
	return BrokerPayload{
		ID:          f.ID,
		AccountName: f.AccountName,
		Name:        f.Name,
		Size:        f.Size,
		Tag:         f.Tag,
		Stored:      f.Stored,
		Deleted:     f.Deleted,
		Server:      server,
	}
}
