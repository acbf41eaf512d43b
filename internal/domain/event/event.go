// Package event declares domain events. Events fan out to zero or
// more subscribers; failures there never abort the triggering command.
package event

import "filestore-api/internal/domain/file"

type Event interface {
	// Kind keys the bus fan-out registry.
	Kind() string
}

const (
	KindFileStored  = "file.stored"
	KindFileDeleted = "file.deleted"
)

type FileStored struct {
	File *file.File
}

type FileDeleted struct {
	File *file.File
}

func (FileStored) Kind() string  { return KindFileStored }
func (FileDeleted) Kind() string { return KindFileDeleted }
