package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rinkside/rinkside/internal/models"
)

// ProfileRequest renames the caller. ID must be the caller's own.
type ProfileRequest struct {
	ID      string `json:"id" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Surname string `json:"surname" binding:"required"`
}

// ProfileResponse is the caller's display name
type ProfileResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

func (s *Server) getProfile(c *gin.Context) {
	sess := mustSession(c)

	var account models.Account
	if err := models.FindByID(s.db, sess.UserID, &account); err != nil {
		s.lookupFailed(c, err, "Profile")
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{ID: account.ID, Name: account.Name, Surname: account.Surname})
}

func (s *Server) updateProfile(c *gin.Context) {
	sess := mustSession(c)

	var req ProfileRequest
	if !s.bindJSON(c, &req) {
		return
	}
	if req.ID != sess.UserID {
		s.fail(c, http.StatusForbidden, "You can only edit your own profile")
		return
	}

	name := strings.TrimSpace(req.Name)
	surname := strings.TrimSpace(req.Surname)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.Account{}).
			Where("name = ? AND surname = ? AND id <> ?", name, surname, sess.UserID).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return errAccountExists
		}

		names := map[string]any{"name": name, "surname": surname}
		if err := tx.Model(&models.Account{}).Where("id = ?", sess.UserID).Updates(names).Error; err != nil {
			return err
		}

		// Keep the public coach or skater record in step
		if sess.CoachID != "" {
			return tx.Model(&models.Coach{}).Where("id = ?", sess.CoachID).Updates(names).Error
		}
		if sess.SkaterID != "" {
			return tx.Model(&models.Skater{}).Where("id = ?", sess.SkaterID).Updates(names).Error
		}
		return nil
	})
	if errors.Is(err, errAccountExists) {
		s.fail(c, http.StatusConflict, "An account with this name and surname already exists")
		return
	}
	if err != nil {
		s.internalError(c, err, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{ID: sess.UserID, Name: name, Surname: surname})
}
