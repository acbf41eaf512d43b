package account

import (
	"errors"

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

var (
	ErrNotFound        = errors.New("account not found")
	ErrInactive        = errors.New("account is not active")
	ErrTagNotPermitted = errors.New("tag is not permitted for account")
	ErrQuotaExceeded   = errors.New("account quota exceeded")
)

func (a *Account) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CanAccept reports whether the account may take one more file under
// the given tag. Quota is checked against the last reconciled size,
// so enforcement is eventually consistent.
func (a *Account) CanAccept(tag string) error {
	if !a.IsActive {
		return ErrInactive
	}
	if !a.HasTag(tag) {
		return ErrTagNotPermitted
	}
	if a.ActualSize >= a.TotalSize {
		return ErrQuotaExceeded
	}
	return nil
}
