package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rinkside/rinkside/internal/models"
)

func (s *Server) programMusic(programID string) ([]FileResponse, error) {
	var files []models.StoredFile
	err := s.db.Omit("Data").
		Where("program_id = ? AND kind = ?", programID, models.FileKindMusic).
		Order("created_at").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return fileResponses(files), nil
}

func (s *Server) listMusic(c *gin.Context) {
	program, ok := s.visibleProgram(c, c.Param("id"))
	if !ok {
		return
	}

	files, err := s.programMusic(program.ID)
	if err != nil {
		s.internalError(c, err, "Failed to list music")
		return
	}
	c.JSON(http.StatusOK, files)
}

func (s *Server) uploadMusic(c *gin.Context) {
	program, ok := s.ownProgram(c, c.Param("id"))
	if !ok {
		return
	}

	file, ok := s.readUpload(c, "musicFile", models.FileKindMusic)
	if !ok {
		return
	}
	if !strings.HasPrefix(file.ContentType, "audio/") {
		s.fail(c, http.StatusUnsupportedMediaType, "Music must be an audio file, got "+file.ContentType)
		return
	}

	file.ProgramID = &program.ID
	if err := s.db.Create(file).Error; err != nil {
		s.internalError(c, err, "Failed to store music")
		return
	}

	s.logger.Info().Str("program_id", program.ID).Str("file_id", file.ID).Int64("size", file.FileSize).Msg("Music uploaded")
	c.JSON(http.StatusCreated, fileResponse(file))
}
