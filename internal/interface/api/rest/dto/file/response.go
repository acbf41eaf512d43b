package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		ID          uuid.UUID  `json:"id"`
		Name        string     `json:"name"`
		Size        int64      `json:"size"`
		Tag         string     `json:"tag"`
		AccountName string     `json:"account_name"`
		Created     time.Time  `json:"created"`
		Stored      *time.Time `json:"stored,omitempty"`
		Link        string     `json:"link,omitempty"`
	}
	Files        []File
	ResponseData struct {
		Data Files `json:"data"`
	}
)
