package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rinkside/rinkside/internal/models"
)

// SkaterRequest creates or updates one of the coach's skaters
type SkaterRequest struct {
	Name       string `json:"name" binding:"required"`
	Surname    string `json:"surname" binding:"required"`
	CategoryID string `json:"categoryId" binding:"required"`
}

// SkaterResponse is a skater as the coach sees it
type SkaterResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

func skaterResponse(sk *models.Skater) SkaterResponse {
	return SkaterResponse{
		ID:           sk.ID,
		Name:         sk.Name,
		Surname:      sk.Surname,
		CategoryID:   sk.CategoryID,
		CategoryName: sk.Category.Name,
	}
}

// coachSkater loads a skater owned by the calling coach. Skaters of other
// coaches are reported as missing.
func (s *Server) coachSkater(c *gin.Context, id string) (*models.Skater, bool) {
	sess := mustSession(c)

	var skater models.Skater
	err := s.db.Preload("Category").
		Where("id = ? AND coach_id = ?", id, sess.CoachID).
		First(&skater).Error
	if err != nil {
		s.lookupFailed(c, err, "Skater")
		return nil, false
	}
	return &skater, true
}

func (s *Server) listSkaters(c *gin.Context) {
	sess := mustSession(c)

	var skaters []models.Skater
	if err := s.db.Preload("Category").
		Where("coach_id = ?", sess.CoachID).
		Order("surname, name").
		Find(&skaters).Error; err != nil {
		s.internalError(c, err, "Failed to list skaters")
		return
	}

	resp := make([]SkaterResponse, 0, len(skaters))
	for i := range skaters {
		resp = append(resp, skaterResponse(&skaters[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getSkater(c *gin.Context) {
	skater, ok := s.coachSkater(c, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, skaterResponse(skater))
}

func (s *Server) createSkater(c *gin.Context) {
	sess := mustSession(c)

	var req SkaterRequest
	if !s.bindJSON(c, &req) {
		return
	}

	var category models.Category
	if err := models.FindByID(s.db, req.CategoryID, &category); err != nil {
		s.unknownCategory(c, err)
		return
	}

	skater := models.Skater{
		Name:       strings.TrimSpace(req.Name),
		Surname:    strings.TrimSpace(req.Surname),
		CategoryID: category.ID,
		CoachID:    sess.CoachID,
		Category:   category,
	}
	if err := s.db.Omit("Category").Create(&skater).Error; err != nil {
		s.internalError(c, err, "Failed to create skater")
		return
	}

	s.logger.Info().Str("skater_id", skater.ID).Str("coach_id", sess.CoachID).Msg("Skater created")
	c.JSON(http.StatusCreated, skaterResponse(&skater))
}

func (s *Server) updateSkater(c *gin.Context) {
	skater, ok := s.coachSkater(c, c.Param("id"))
	if !ok {
		return
	}

	var req SkaterRequest
	if !s.bindJSON(c, &req) {
		return
	}

	var category models.Category
	if err := models.FindByID(s.db, req.CategoryID, &category); err != nil {
		s.unknownCategory(c, err)
		return
	}

	err := s.db.Model(&models.Skater{}).Where("id = ?", skater.ID).Updates(map[string]any{
		"name":        strings.TrimSpace(req.Name),
		"surname":     strings.TrimSpace(req.Surname),
		"category_id": category.ID,
	}).Error
	if err != nil {
		s.internalError(c, err, "Failed to update skater")
		return
	}

	skater.Name = strings.TrimSpace(req.Name)
	skater.Surname = strings.TrimSpace(req.Surname)
	skater.CategoryID = category.ID
	skater.Category = category
	c.JSON(http.StatusOK, skaterResponse(skater))
}

// deleteSkater removes the skater with everything they own, including their
// login if they registered one
func (s *Server) deleteSkater(c *gin.Context) {
	skater, ok := s.coachSkater(c, c.Param("id"))
	if !ok {
		return
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		programIDs := tx.Model(&models.Program{}).Select("id").Where("skater_id = ?", skater.ID)

		if err := tx.Where("program_id IN (?)", programIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("program_id IN (?)", programIDs).Delete(&models.StoredFile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("skater_id = ?", skater.ID).Delete(&models.Program{}).Error; err != nil {
			return err
		}
		if err := tx.Where("skater_id = ?", skater.ID).Delete(&models.Training{}).Error; err != nil {
			return err
		}
		if err := tx.Where("skater_id = ?", skater.ID).Delete(&models.Account{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Skater{}, "id = ?", skater.ID).Error
	})
	if err != nil {
		s.internalError(c, err, "Failed to delete skater")
		return
	}

	s.logger.Info().Str("skater_id", skater.ID).Msg("Skater deleted")
	c.Status(http.StatusNoContent)
}

func (s *Server) unknownCategory(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.fail(c, http.StatusBadRequest, "Unknown category")
		return
	}
	s.internalError(c, err, "Failed to load category")
}
