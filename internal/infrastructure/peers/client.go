// Package peers implements the HTTP client side of the clone
// protocol: it speaks to the same REST API sibling nodes expose.
package peers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"filestore-api/internal/application/ports"
)

const requestTimeout = 30 * time.Second

type Client struct {
	log *zap.Logger
	// meta has a hard timeout; stream must not, or long downloads
	// would be cut mid-body. Cancellation comes from the context.
	meta   *http.Client
	stream *http.Client
}

func New(logger *zap.Logger) *Client {
	return &Client{
		log:    logger,
		meta:   &http.Client{Timeout: requestTimeout},
		stream: &http.Client{},
	}
}

var _ ports.PeerClient = (*Client)(nil)

type fileResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Size int64     `json:"size"`
	Link string    `json:"link"`
}

// FetchFile asks one peer for file metadata. A peer that does not
// know the file answers 404, which surfaces as an error so the caller
// can move on to the next peer.
func (c *Client) FetchFile(ctx context.Context, host string, authToken, fileID uuid.UUID) (*ports.PeerFile, error) {
	url := fmt.Sprintf("http://%s/api/v1/files/%s", host, fileID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+authToken.String())

	resp, err := c.meta.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("peer %s: unexpected status %d", host, resp.StatusCode)
	}

	var fr fileResponse
	if err = json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return nil, fmt.Errorf("peer %s: decode response: %w", host, err)
	}

	return &ports.PeerFile{
		ID:   fr.ID,
		Name: fr.Name,
		Size: fr.Size,
		Link: fr.Link,
	}, nil
}

// Download streams the bytes behind a one-shot link minted by a peer.
func (c *Client) Download(ctx context.Context, link string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.stream.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download %s: unexpected status %d", link, resp.StatusCode)
	}

	return resp.Body, nil
}
