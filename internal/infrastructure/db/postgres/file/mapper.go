package file

import (
	domain "filestore-api/internal/domain/file"
)

func fromDBModel(model *File) *domain.File {
	return &domain.File{
		ID:          model.ID,
		StoredID:    model.StoredID,
		Name:        model.Name,
		Size:        model.Size,
		Tag:         model.Tag,
		AccountName: model.AccountName,
		Created:     model.Created,

		HasStored: model.HasStored,
		Stored:    model.Stored,

		HasDeleted: model.HasDeleted,
		Deleted:    model.Deleted,

		HasErased: model.HasErased,
		Erased:    model.Erased,
	}
}

func fromDBModels(models *Files) domain.Files {
	fs := make(domain.Files, len(*models))
	for idx, f := range *models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}
