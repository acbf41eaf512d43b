package handlers

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"filestore-api/internal/application/ports"
)

type FakePeerClient struct {
	FetchFileFunc func(ctx context.Context, host string, authToken, fileID uuid.UUID) (*ports.PeerFile, error)
	DownloadFunc  func(ctx context.Context, link string) (io.ReadCloser, error)
}

func (f *FakePeerClient) FetchFile(ctx context.Context, host string, authToken, fileID uuid.UUID) (*ports.PeerFile, error) {
	return f.FetchFileFunc(ctx, host, authToken, fileID)
}

func (f *FakePeerClient) Download(ctx context.Context, link string) (io.ReadCloser, error) {
	if f.DownloadFunc == nil {
		return nil, errors.New("not used")
	}
	return f.DownloadFunc(ctx, link)
}

func newCloneHandlers(peers []string, pc ports.PeerClient, timeout time.Duration) *CommandHandlers {
	return &CommandHandlers{
		logger:       zap.NewNop(),
		server:       "node1",
		peers:        peers,
		cloneTimeout: timeout,
		peerClient:   pc,
	}
}

func TestAskPeers_FirstSuccessWins(t *testing.T) {
	fileID := uuid.New()
	pc := &FakePeerClient{
		FetchFileFunc: func(ctx context.Context, host string, _, id uuid.UUID) (*ports.PeerFile, error) {
			if host == "fast" {
				return &ports.PeerFile{ID: id, Name: "doc.txt", Size: 7, Link: "http://fast/link"}, nil
			}
			// the slow peers hang until the race is decided
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	h := newCloneHandlers([]string{"slow1", "fast", "slow2"}, pc, time.Second)

	start := time.Now()
	pf, err := h.askPeers(context.Background(), uuid.New(), fileID)
	require.NoError(t, err)
	assert.Equal(t, "http://fast/link", pf.Link)
	// the winner decides the race, not the timeout
	assert.Less(t, time.Since(start), time.Second)
}

func TestAskPeers_AllPeersFail(t *testing.T) {
	var calls int32
	pc := &FakePeerClient{
		FetchFileFunc: func(ctx context.Context, host string, _, _ uuid.UUID) (*ports.PeerFile, error) {
			atomic.AddInt32(&calls, 1)
			return nil, errors.New("404")
		},
	}
	h := newCloneHandlers([]string{"a", "b", "c"}, pc, time.Second)

	_, err := h.askPeers(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, ErrNoReachablePeer)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestAskPeers_Timeout(t *testing.T) {
	pc := &FakePeerClient{
		FetchFileFunc: func(ctx context.Context, host string, _, _ uuid.UUID) (*ports.PeerFile, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	h := newCloneHandlers([]string{"a", "b"}, pc, 30*time.Millisecond)

	start := time.Now()
	_, err := h.askPeers(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, ErrNoReachablePeer)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestAskPeers_NoPeersConfigured(t *testing.T) {
	h := newCloneHandlers(nil, &FakePeerClient{}, time.Second)

	_, err := h.askPeers(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, ErrNoReachablePeer)
}
