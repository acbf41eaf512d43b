package validator

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
	maxTagLen    = 64
)

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

func ValidateLimitOffset(limitStr, offsetStr string) (int, int, error) {
	limit := defaultLimit
	if limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n <= 0 || n > maxLimit {
			return 0, 0, errors.New("limit must be in 1.." + strconv.Itoa(maxLimit))
		}
		limit = n
	}

	offset := 0
	if offsetStr != "" {
		n, err := strconv.Atoi(offsetStr)
		if err != nil || n < 0 {
			return 0, 0, errors.New("offset must be a non-negative integer")
		}
		offset = n
	}

	return limit, offset, nil
}

// ValidateTag accepts lowercase alphanumeric tags with dashes, the
// form account tag lists are provisioned in.
func ValidateTag(tag string) (string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", errors.New("tag is required")
	}
	if len(tag) > maxTagLen {
		return "", errors.New("tag is too long")
	}
	for _, r := range tag {
		if unicode.IsLower(r) || unicode.IsDigit(r) || r == '-' {
			continue
		}
		return "", errors.New("tag must be lowercase alphanumeric with dashes")
	}
	return tag, nil
}
