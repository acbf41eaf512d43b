package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoff_GrowsToLimit(t *testing.T) {
	b := New(time.Second, 8*time.Second)

	assert.Equal(t, 1*time.Second, b.Next())
	assert.Equal(t, 2*time.Second, b.Next())
	assert.Equal(t, 4*time.Second, b.Next())
	assert.Equal(t, 8*time.Second, b.Next())
	assert.Equal(t, 8*time.Second, b.Next())
}

func TestBackoff_Reset(t *testing.T) {
	b := New(time.Second, time.Minute)

	b.Next()
	b.Next()
	b.Reset()

	assert.Equal(t, time.Second, b.Next())
}

func TestBackoff_DefensiveDefaults(t *testing.T) {
	b := New(0, -time.Second)

	assert.Equal(t, time.Second, b.Next())
	assert.Equal(t, time.Second, b.Next())
}
