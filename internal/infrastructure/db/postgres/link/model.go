package link

import (
	"time"

	"github.com/google/uuid"
)

type (
	Link struct {
		ID      uuid.UUID
		FileID  uuid.UUID
		Type    string
		Created time.Time
		Expired time.Time
	}
	Links []*Link
)
