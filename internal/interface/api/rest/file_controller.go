package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"filestore-api/internal/application/handlers"
	"filestore-api/internal/application/ports"
	"filestore-api/internal/domain/command"
	"filestore-api/internal/domain/file"
	fileDTO "filestore-api/internal/interface/api/rest/dto/file"
	"filestore-api/internal/interface/api/rest/middleware"
	"filestore-api/internal/interface/api/rest/validator"
)

type FileController struct {
	bus     ports.Bus
	logger  *zap.Logger
	baseURL string
}

func NewFileController(
	r *gin.Engine,
	bus ports.Bus,
	logger *zap.Logger,
	baseURL string,
) *FileController {
	fc := &FileController{
		bus:     bus,
		logger:  logger,
		baseURL: baseURL,
	}

	auth := middleware.AuthMiddleware(bus)
	r.GET(RouteFiles, auth, fc.GetFilesHandler)
	r.POST(RouteFiles, auth, fc.AddFileHandler)
	r.GET(RouteFile, auth, fc.GetFileHandler)
	r.DELETE(RouteFile, auth, fc.DeleteFileHandler)

	return fc
}

func (fc *FileController) GetFilesHandler(c *gin.Context) {
	limit, offset, err := validator.ValidateLimitOffset(c.Query("limit"), c.Query("offset"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := fc.bus.Handle(c.Request.Context(), command.GetStoredNotDeletedFiles{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		status, msg := statusFromError(err)
		c.JSON(status, gin.H{"error": msg})
		fc.logger.Error("GetStoredNotDeletedFiles() error", zap.Error(err))
		return
	}

	fs, _ := res.(file.Files)
	c.JSON(http.StatusOK, fileDTO.ResponseData{
		Data: fileDTO.ToResponseFiles(fs),
	})
}

func (fc *FileController) GetFileHandler(c *gin.Context) {
	ok, fileID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_id must be a valid UUID"})
		return
	}
	a := middleware.Account(c)

	res, err := fc.bus.Handle(c.Request.Context(), command.GetFile{
		AccountName:     a.Name,
		FileID:          fileID,
		MakeDownloadURL: fc.downloadURL,
	})
	if err != nil {
		status, msg := statusFromError(err)
		c.JSON(status, gin.H{"error": msg})
		if status == http.StatusInternalServerError {
			fc.logger.Error("GetFile() error", zap.Error(err))
		}
		return
	}

	fl := res.(*handlers.FileWithLink)
	c.JSON(http.StatusOK, fileDTO.ToResponseFile(fl.File, fl.Link))
}

func (fc *FileController) AddFileHandler(c *gin.Context) {
	tag, err := validator.ValidateTag(c.Query("tag"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a := middleware.Account(c)

	res, err := fc.bus.Handle(c.Request.Context(), command.AddFile{
		AccountName:   a.Name,
		Tag:           tag,
		MakeUploadURL: fc.uploadURL,
	})
	if err != nil {
		status, msg := statusFromError(err)
		c.JSON(status, gin.H{"error": msg})
		if status == http.StatusInternalServerError {
			fc.logger.Error("AddFile() error", zap.Error(err))
		}
		return
	}

	fl := res.(*handlers.FileWithLink)
	c.JSON(http.StatusCreated, fileDTO.ToResponseFile(fl.File, fl.Link))
}

func (fc *FileController) DeleteFileHandler(c *gin.Context) {
	ok, fileID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_id must be a valid UUID"})
		return
	}
	a := middleware.Account(c)

	if _, err := fc.bus.Handle(c.Request.Context(), command.DeleteFile{
		AccountName: a.Name,
		FileID:      fileID,
	}); err != nil {
		status, msg := statusFromError(err)
		c.JSON(status, gin.H{"error": msg})
		if status == http.StatusInternalServerError {
			fc.logger.Error("DeleteFile() error", zap.Error(err))
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (fc *FileController) downloadURL(linkID uuid.UUID) string {
	return fc.baseURL + RouteLinks + "/" + linkID.String() + "/download"
}

func (fc *FileController) uploadURL(linkID uuid.UUID) string {
	return fc.baseURL + RouteLinks + "/" + linkID.String() + "/upload"
}
