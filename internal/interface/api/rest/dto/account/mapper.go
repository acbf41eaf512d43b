package account

import (
	"filestore-api/internal/domain/account"
)

// ToResponseAccount never exposes the auth token.
func ToResponseAccount(aDomain *account.Account) Account {
	return Account{
		ID:         aDomain.ID,
		Name:       aDomain.Name,
		IsActive:   aDomain.IsActive,
		ActualSize: aDomain.ActualSize,
		TotalSize:  aDomain.TotalSize,
		Tags:       aDomain.Tags,
	}
}

func ToResponseAccounts(asDomain account.Accounts) Accounts {
	as := make(Accounts, len(asDomain))
	for idx, a := range asDomain {
		as[idx] = ToResponseAccount(a)
	}

	return as
}
