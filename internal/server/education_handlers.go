package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rinkside/rinkside/internal/models"
)

// MaterialRequest creates an educational material
type MaterialRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// MaterialResponse is a material with its attached files
type MaterialResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Files       []FileResponse `json:"files"`
}

func materialResponse(m *models.Material) MaterialResponse {
	return MaterialResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Files:       fileResponses(m.Files),
	}
}

// withFiles preloads attachments without their content
func withFiles(db *gorm.DB) *gorm.DB {
	return db.Preload("Files", func(tx *gorm.DB) *gorm.DB {
		return tx.Omit("Data").Order("created_at")
	})
}

func (s *Server) listMaterials(c *gin.Context) {
	var materials []models.Material
	if err := withFiles(s.db).Order("created_at DESC").Find(&materials).Error; err != nil {
		s.internalError(c, err, "Failed to list materials")
		return
	}

	resp := make([]MaterialResponse, 0, len(materials))
	for i := range materials {
		resp = append(resp, materialResponse(&materials[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getMaterial(c *gin.Context) {
	var material models.Material
	if err := withFiles(s.db).Where("id = ?", c.Param("id")).First(&material).Error; err != nil {
		s.lookupFailed(c, err, "Material")
		return
	}
	c.JSON(http.StatusOK, materialResponse(&material))
}

func (s *Server) createMaterial(c *gin.Context) {
	sess := mustSession(c)

	var req MaterialRequest
	if !s.bindJSON(c, &req) {
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		s.fail(c, http.StatusBadRequest, "Title must not be blank")
		return
	}

	material := models.Material{
		CoachID:     sess.CoachID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.db.Create(&material).Error; err != nil {
		s.internalError(c, err, "Failed to create material")
		return
	}

	s.logger.Info().Str("material_id", material.ID).Str("coach_id", sess.CoachID).Msg("Material created")
	c.JSON(http.StatusCreated, materialResponse(&material))
}

func (s *Server) deleteMaterial(c *gin.Context) {
	var material models.Material
	if err := models.FindByID(s.db, c.Param("id"), &material); err != nil {
		s.lookupFailed(c, err, "Material")
		return
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("material_id = ?", material.ID).Delete(&models.StoredFile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Material{}, "id = ?", material.ID).Error
	})
	if err != nil {
		s.internalError(c, err, "Failed to delete material")
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) uploadEducationalFile(c *gin.Context) {
	var material models.Material
	if err := models.FindByID(s.db, c.Param("id"), &material); err != nil {
		s.lookupFailed(c, err, "Material")
		return
	}

	file, ok := s.readUpload(c, "file", models.FileKindEducational)
	if !ok {
		return
	}

	file.MaterialID = &material.ID
	if err := s.db.Create(file).Error; err != nil {
		s.internalError(c, err, "Failed to store file")
		return
	}

	s.logger.Info().Str("material_id", material.ID).Str("file_id", file.ID).Int64("size", file.FileSize).Msg("Educational file uploaded")
	c.JSON(http.StatusCreated, fileResponse(file))
}

func (s *Server) deleteEducationalFile(c *gin.Context) {
	result := s.db.Where("id = ? AND kind = ?", c.Param("id"), models.FileKindEducational).
		Delete(&models.StoredFile{})
	if result.Error != nil {
		s.internalError(c, result.Error, "Failed to delete file")
		return
	}
	if result.RowsAffected == 0 {
		s.fail(c, http.StatusNotFound, "File not found")
		return
	}

	c.Status(http.StatusNoContent)
}
