package bytestream

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkReader_RoundTrip(t *testing.T) {
	chunks := [][]byte{
		[]byte("hello "),
		[]byte("chunked "),
		[]byte("world"),
	}
	i := 0
	r := NewChunkReader(func(n int) ([]byte, error) {
		if i >= len(chunks) {
			return nil, nil
		}
		c := chunks[i]
		i++
		return c, nil
	})

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello chunked world", string(out))
}

func TestChunkReader_ChunkLargerThanBuffer(t *testing.T) {
	sent := false
	r := NewChunkReader(func(n int) ([]byte, error) {
		if sent {
			return nil, nil
		}
		sent = true
		return []byte("0123456789"), nil
	})

	p := make([]byte, 4)

	n, err := r.Read(p)
	require.NoError(t, err)
	assert.Equal(t, "0123", string(p[:n]))

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "456789", string(rest))
}

func TestChunkReader_ProducerError(t *testing.T) {
	boom := errors.New("boom")
	r := NewChunkReader(func(n int) ([]byte, error) {
		return nil, boom
	})

	_, err := io.ReadAll(r)
	require.ErrorIs(t, err, boom)
}

func TestChanReader_RoundTrip(t *testing.T) {
	ch := make(chan []byte, 3)
	ch <- []byte("a")
	ch <- []byte("bb")
	ch <- []byte("ccc")
	close(ch)

	out, err := io.ReadAll(NewChanReader(ch))
	require.NoError(t, err)
	assert.Equal(t, "abbccc", string(out))
}

func TestChanReader_EmptyClosedChannel(t *testing.T) {
	ch := make(chan []byte)
	close(ch)

	out, err := io.ReadAll(NewChanReader(ch))
	require.NoError(t, err)
	assert.Empty(t, out)
}
