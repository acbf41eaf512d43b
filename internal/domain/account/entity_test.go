package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAccept(t *testing.T) {
	base := Account{
		Name:       "acme",
		IsActive:   true,
		ActualSize: 100,
		TotalSize:  1000,
		Tags:       []string{"docs", "images"},
	}

	cases := []struct {
		name   string
		mutate func(a *Account)
		tag    string
		want   error
	}{
		{"ok", nil, "docs", nil},
		{"inactive", func(a *Account) { a.IsActive = false }, "docs", ErrInactive},
		{"unknown tag", nil, "video", ErrTagNotPermitted},
		{"at quota", func(a *Account) { a.ActualSize = a.TotalSize }, "docs", ErrQuotaExceeded},
		{"over quota", func(a *Account) { a.ActualSize = a.TotalSize + 1 }, "docs", ErrQuotaExceeded},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			a := base
			if tt.mutate != nil {
				tt.mutate(&a)
			}
			assert.ErrorIs(t, a.CanAccept(tt.tag), tt.want)
		})
	}
}

func TestHasTag(t *testing.T) {
	a := Account{Tags: []string{"docs"}}
	empty := Account{}

	assert.True(t, a.HasTag("docs"))
	assert.False(t, a.HasTag("images"))
	assert.False(t, empty.HasTag("docs"))
}
