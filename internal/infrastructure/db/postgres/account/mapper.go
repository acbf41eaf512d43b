package account

import (
	domain "filestore-api/internal/domain/account"
)

func fromDBModel(model *Account) *domain.Account {
	return &domain.Account{
		ID:        model.ID,
		Name:      model.Name,
		AuthToken: model.AuthToken,
		IsActive:  model.IsActive,

		ActualSize: model.ActualSize,
		TotalSize:  model.TotalSize,
		Tags:       model.Tags,
	}
}

func fromDBModels(models *Accounts) domain.Accounts {
	as := make(domain.Accounts, len(*models))
	for idx, a := range *models {
		as[idx] = fromDBModel(a)
	}

	return as
}
