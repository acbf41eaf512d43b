package account

import (
	"github.com/google/uuid"
)

type (
	Account struct {
		ID         uuid.UUID `json:"id"`
		Name       string    `json:"name"`
		IsActive   bool      `json:"is_active"`
		ActualSize int64     `json:"actual_size"`
		TotalSize  int64     `json:"total_size"`
		Tags       []string  `json:"tags"`
	}
	Accounts     []Account
	ResponseData struct {
		Data Accounts `json:"data"`
	}
)
