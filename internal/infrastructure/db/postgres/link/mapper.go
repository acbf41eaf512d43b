package link

import (
	domain "filestore-api/internal/domain/link"
)

func fromDBModel(model *Link) *domain.Link {
	return &domain.Link{
		ID:      model.ID,
		FileID:  model.FileID,
		Type:    model.Type,
		Created: model.Created,
		Expired: model.Expired,
	}
}
