package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"filestore-api/internal/domain/file"
	"filestore-api/pkg/bytestream"
)

func newLocal(t *testing.T) *Local {
	t.Helper()
	return NewLocal(zap.NewNop(), t.TempDir())
}

func TestLocal_SaveGetEraseRoundTrip(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()
	id := uuid.New()
	content := "some file content"

	size, err := s.Save(ctx, id, strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), size)

	rc, err := s.Get(ctx, id)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, content, string(got))

	require.NoError(t, s.Erase(ctx, id))

	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, file.ErrNotFound)
}

func TestLocal_SaveChunkedSource(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()
	id := uuid.New()

	chunks := [][]byte{
		bytes.Repeat([]byte("a"), chunkSize),
		bytes.Repeat([]byte("b"), 100),
	}
	i := 0
	src := bytestream.NewChunkReader(func(n int) ([]byte, error) {
		if i >= len(chunks) {
			return nil, nil
		}
		c := chunks[i]
		i++
		return c, nil
	})

	size, err := s.Save(ctx, id, src)
	require.NoError(t, err)
	assert.Equal(t, int64(chunkSize+100), size)

	rc, err := s.Get(ctx, id)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Len(t, got, chunkSize+100)
}

func TestLocal_SaveCancelledContext(t *testing.T) {
	s := newLocal(t)
	id := uuid.New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Save(ctx, id, strings.NewReader("never stored"))
	require.ErrorIs(t, err, context.Canceled)

	_, err = s.Get(context.Background(), id)
	assert.ErrorIs(t, err, file.ErrNotFound)
}

func TestLocal_GetMissing(t *testing.T) {
	s := newLocal(t)

	_, err := s.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, file.ErrNotFound)
}

func TestLocal_EraseMissing(t *testing.T) {
	s := newLocal(t)

	err := s.Erase(context.Background(), uuid.New())
	assert.ErrorIs(t, err, file.ErrNotFound)
}
