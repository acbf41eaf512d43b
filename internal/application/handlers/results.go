package handlers

import (
	"io"

	"filestore-api/internal/domain/file"
)

// FileWithLink is returned by read and add operations that mint a
// one-shot link for the caller.
type FileWithLink struct {
	File *file.File
	Link string
}

// FileDownload carries the content stream; the caller owns Bytes and
// must close it.
type FileDownload struct {
	Name  string
	Size  int64
	Bytes io.ReadCloser
}
