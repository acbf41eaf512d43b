package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"filestore-api/internal/application/handlers"
	"filestore-api/internal/application/ports"
	"filestore-api/internal/domain/command"
	"filestore-api/internal/domain/file"
	fileDTO "filestore-api/internal/interface/api/rest/dto/file"
	"filestore-api/internal/interface/api/rest/validator"
)

// LinkController serves the unauthenticated one-shot endpoints: the
// link id itself is the capability, minted through the files API.
type LinkController struct {
	bus    ports.Bus
	logger *zap.Logger
}

func NewLinkController(
	r *gin.Engine,
	bus ports.Bus,
	logger *zap.Logger,
) *LinkController {
	lc := &LinkController{
		bus:    bus,
		logger: logger,
	}

	r.GET(RouteDownload, lc.DownloadHandler)
	r.PUT(RouteUpload, lc.UploadHandler)

	return lc
}

func (lc *LinkController) DownloadHandler(c *gin.Context) {
	ok, linkID := validator.IsUUID(c.Param("link_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "link_id must be a valid UUID"})
		return
	}

	res, err := lc.bus.Handle(c.Request.Context(), command.DownloadFile{LinkID: linkID})
	if err != nil {
		status, msg := statusFromError(err)
		c.JSON(status, gin.H{"error": msg})
		if status == http.StatusInternalServerError {
			lc.logger.Error("DownloadFile() error", zap.Error(err))
		}
		return
	}

	fd := res.(*handlers.FileDownload)
	defer fd.Bytes.Close()

	c.DataFromReader(
		http.StatusOK,
		fd.Size,
		"application/octet-stream",
		fd.Bytes,
		map[string]string{
			"Content-Disposition": fmt.Sprintf("attachment; filename=%q", fd.Name),
		},
	)
}

func (lc *LinkController) UploadHandler(c *gin.Context) {
	ok, linkID := validator.IsUUID(c.Param("link_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "link_id must be a valid UUID"})
		return
	}

	res, err := lc.bus.Handle(c.Request.Context(), command.UploadFile{
		LinkID:   linkID,
		Filename: c.Query("filename"),
		Source:   c.Request.Body,
	})
	if err != nil {
		status, msg := statusFromError(err)
		c.JSON(status, gin.H{"error": msg})
		if status == http.StatusInternalServerError {
			lc.logger.Error("UploadFile() error", zap.Error(err))
		}
		return
	}

	f := res.(*file.File)
	c.JSON(http.StatusCreated, fileDTO.ToResponseFile(f, ""))
}
