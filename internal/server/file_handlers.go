package server

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/rinkside/rinkside/internal/models"
)

// FileResponse describes an uploaded file without its content
type FileResponse struct {
	ID          string `json:"id"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	FileSize    int64  `json:"fileSize"`
	UploadedAt  string `json:"uploadedAt"`
	FileURL     string `json:"fileUrl"`
}

func fileResponse(f *models.StoredFile) FileResponse {
	return FileResponse{
		ID:          f.ID,
		FileName:    f.FileName,
		ContentType: f.ContentType,
		FileSize:    f.FileSize,
		UploadedAt:  f.CreatedAt.UTC().Format(time.RFC3339),
		FileURL:     f.URL(),
	}
}

func fileResponses(files []models.StoredFile) []FileResponse {
	out := make([]FileResponse, 0, len(files))
	for i := range files {
		out = append(out, fileResponse(&files[i]))
	}
	return out
}

// readUpload reads the multipart part named field into a StoredFile of the
// given kind. The content type is always sniffed from the data.
func (s *Server) readUpload(c *gin.Context, field, kind string) (*models.StoredFile, bool) {
	header, err := c.FormFile(field)
	if err != nil {
		s.fail(c, http.StatusBadRequest, fmt.Sprintf("Missing file field %q", field))
		return nil, false
	}
	if header.Size > maxUploadSize {
		s.fail(c, http.StatusRequestEntityTooLarge, "File is too large")
		return nil, false
	}

	f, err := header.Open()
	if err != nil {
		s.internalError(c, err, "Failed to open upload")
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize+1))
	if err != nil {
		s.internalError(c, err, "Failed to read upload")
		return nil, false
	}
	if len(data) == 0 {
		s.fail(c, http.StatusBadRequest, "File is empty")
		return nil, false
	}
	if len(data) > maxUploadSize {
		s.fail(c, http.StatusRequestEntityTooLarge, "File is too large")
		return nil, false
	}

	// The declared part type is ignored; stored files are served publicly
	detected := mimetype.Detect(data).String()
	if declared := header.Header.Get("Content-Type"); declared != "" && declared != detected {
		s.logger.Debug().Str("declared", declared).Str("detected", detected).Msg("Upload content type differs from declared")
	}

	return &models.StoredFile{
		Kind:        kind,
		FileName:    filepath.Base(header.Filename),
		ContentType: detected,
		FileSize:    int64(len(data)),
		Data:        data,
	}, true
}

// serveFile streams a stored file. It is public so media players can open
// the fileUrl directly.
func (s *Server) serveFile(c *gin.Context) {
	var file models.StoredFile
	if err := models.FindByID(s.db, c.Param("id"), &file); err != nil {
		s.lookupFailed(c, err, "File")
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": file.FileName}))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
