package file

import (
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
