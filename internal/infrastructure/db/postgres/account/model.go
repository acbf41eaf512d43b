package account

import (
	"github.com/google/uuid"
)

type (
	Account struct {
		ID        uuid.UUID
		Name      string
		AuthToken uuid.UUID
		IsActive  bool

		ActualSize int64
		TotalSize  int64
		Tags       []string
	}
	Accounts []*Account
)
