package rest

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"filestore-api/internal/application/handlers"
	"filestore-api/internal/domain/command"
	fileDomain "filestore-api/internal/domain/file"
	linkDomain "filestore-api/internal/domain/link"
)

func setupLinkRouter(t *testing.T, bus *FakeBus) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	NewLinkController(r, bus, zap.NewNop())

	return r
}

func TestDownloadHandler(t *testing.T) {
	linkID := uuid.New()
	content := "file payload"

	bus := &FakeBus{
		HandleFunc: func(_ context.Context, msg any) (any, error) {
			c, ok := msg.(command.DownloadFile)
			require.True(t, ok)
			assert.Equal(t, linkID, c.LinkID)

			return &handlers.FileDownload{
				Name:  "doc.txt",
				Size:  int64(len(content)),
				Bytes: io.NopCloser(strings.NewReader(content)),
			}, nil
		},
	}
	r := setupLinkRouter(t, bus)

	w := doReq(t, r, http.MethodGet, RouteLinks+"/"+linkID.String()+"/download", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, content, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "doc.txt")
}

func TestDownloadHandler_ExpiredLink(t *testing.T) {
	bus := &FakeBus{
		HandleFunc: func(_ context.Context, msg any) (any, error) {
			return nil, linkDomain.ErrNotFound
		},
	}
	r := setupLinkRouter(t, bus)

	w := doReq(t, r, http.MethodGet, RouteLinks+"/"+uuid.NewString()+"/download", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadHandler(t *testing.T) {
	linkID := uuid.New()
	content := "uploaded bytes"

	bus := &FakeBus{
		HandleFunc: func(_ context.Context, msg any) (any, error) {
			c, ok := msg.(command.UploadFile)
			require.True(t, ok)
			assert.Equal(t, linkID, c.LinkID)
			assert.Equal(t, "doc.txt", c.Filename)

			got, err := io.ReadAll(c.Source)
			require.NoError(t, err)
			assert.Equal(t, content, string(got))

			f := fileDomain.New("acme", "docs")
			f.Name = c.Filename
			f.Size = int64(len(got))
			return f, nil
		},
	}
	r := setupLinkRouter(t, bus)

	w := doReq(t, r, http.MethodPut,
		RouteLinks+"/"+linkID.String()+"/upload?filename=doc.txt",
		strings.NewReader(content), "")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestUploadHandler_BadLinkID(t *testing.T) {
	bus := &FakeBus{
		HandleFunc: func(_ context.Context, msg any) (any, error) {
			t.Fatal("command must not be dispatched")
			return nil, nil
		},
	}
	r := setupLinkRouter(t, bus)

	w := doReq(t, r, http.MethodPut, RouteLinks+"/nope/upload", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
