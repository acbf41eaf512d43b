package file

import (
	"filestore-api/internal/domain/file"
)

func ToResponseFile(fDomain *file.File, link string) File {
	return File{
		ID:          fDomain.ID,
		Name:        fDomain.Name,
		Size:        fDomain.Size,
		Tag:         fDomain.Tag,
		AccountName: fDomain.AccountName,
		Created:     fDomain.Created,
		Stored:      fDomain.Stored,
		Link:        link,
	}
}

func ToResponseFiles(fsDomain file.Files) Files {
	fs := make(Files, len(fsDomain))
	for idx, f := range fsDomain {
		fs[idx] = ToResponseFile(f, "")
	}

	return fs
}
