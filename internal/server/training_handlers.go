package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rinkside/rinkside/internal/models"
)

// TrainingRequest logs or edits a training session. Elements is a CSV of
// element IDs.
type TrainingRequest struct {
	Date     string `json:"date" binding:"required"`
	Duration int    `json:"duration" binding:"gt=0"`
	Type     string `json:"type" binding:"required,oneof=OnIce OffIce"`
	Elements string `json:"elements" binding:"required"`
	Notes    string `json:"notes"`
}

// TrainingResponse is a logged training session
type TrainingResponse struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Duration int    `json:"duration"`
	Type     string `json:"type"`
	Elements string `json:"elements"`
	Notes    string `json:"notes"`
}

// ElementResponse is a trainable element
type ElementResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func trainingResponse(t *models.Training) TrainingResponse {
	return TrainingResponse{
		ID:       t.ID,
		Date:     t.Date.UTC().Format(time.RFC3339),
		Duration: t.Duration,
		Type:     t.Type,
		Elements: t.Elements,
		Notes:    t.Notes,
	}
}

func parseTrainingDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// applyTrainingRequest validates req and copies it onto t, answering 400
// when the date or elements are unusable
func (s *Server) applyTrainingRequest(c *gin.Context, req *TrainingRequest, t *models.Training) bool {
	date, ok := parseTrainingDate(req.Date)
	if !ok {
		s.fail(c, http.StatusBadRequest, "Invalid date, use RFC 3339 or YYYY-MM-DD")
		return false
	}

	var ids []string
	for _, part := range strings.Split(req.Elements, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		s.fail(c, http.StatusBadRequest, "Select at least one element")
		return false
	}

	var known int64
	if err := s.db.Model(&models.Element{}).
		Where("id IN ? AND type = ?", ids, req.Type).
		Count(&known).Error; err != nil {
		s.internalError(c, err, "Failed to check elements")
		return false
	}
	if int(known) != len(uniq(ids)) {
		s.fail(c, http.StatusBadRequest, "Unknown element for "+req.Type+" training")
		return false
	}

	t.Date = date
	t.Duration = req.Duration
	t.Type = req.Type
	t.Elements = strings.Join(ids, ",")
	t.Notes = strings.TrimSpace(req.Notes)
	return true
}

func uniq(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// ownTraining loads a training belonging to the calling skater
func (s *Server) ownTraining(c *gin.Context, id string) (*models.Training, bool) {
	sess := mustSession(c)

	var training models.Training
	if err := s.db.Where("id = ? AND skater_id = ?", id, sess.SkaterID).First(&training).Error; err != nil {
		s.lookupFailed(c, err, "Training")
		return nil, false
	}
	return &training, true
}

func (s *Server) listTrainings(c *gin.Context) {
	sess := mustSession(c)

	var trainings []models.Training
	if err := s.db.Where("skater_id = ?", sess.SkaterID).
		Order("date DESC").
		Find(&trainings).Error; err != nil {
		s.internalError(c, err, "Failed to list trainings")
		return
	}

	resp := make([]TrainingResponse, 0, len(trainings))
	for i := range trainings {
		resp = append(resp, trainingResponse(&trainings[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getTraining(c *gin.Context) {
	training, ok := s.ownTraining(c, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, trainingResponse(training))
}

func (s *Server) listElements(c *gin.Context) {
	kind := c.Query("type")
	if err := s.validator.Var(kind, "required,oneof=OnIce OffIce"); err != nil {
		s.fail(c, http.StatusBadRequest, "type must be OnIce or OffIce")
		return
	}

	var elements []models.Element
	if err := s.db.Where("type = ?", kind).Order("id").Find(&elements).Error; err != nil {
		s.internalError(c, err, "Failed to list elements")
		return
	}

	resp := make([]ElementResponse, 0, len(elements))
	for _, e := range elements {
		resp = append(resp, ElementResponse{ID: e.ID, Name: e.Name})
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) createTraining(c *gin.Context) {
	sess := mustSession(c)

	var req TrainingRequest
	if !s.bindJSON(c, &req) {
		return
	}

	training := models.Training{SkaterID: sess.SkaterID}
	if !s.applyTrainingRequest(c, &req, &training) {
		return
	}

	if err := s.db.Create(&training).Error; err != nil {
		s.internalError(c, err, "Failed to create training")
		return
	}

	s.logger.Info().Str("training_id", training.ID).Str("skater_id", sess.SkaterID).Msg("Training logged")
	c.JSON(http.StatusCreated, trainingResponse(&training))
}

func (s *Server) updateTraining(c *gin.Context) {
	training, ok := s.ownTraining(c, c.Param("id"))
	if !ok {
		return
	}

	var req TrainingRequest
	if !s.bindJSON(c, &req) {
		return
	}
	if !s.applyTrainingRequest(c, &req, training) {
		return
	}

	if err := s.db.Save(training).Error; err != nil {
		s.internalError(c, err, "Failed to update training")
		return
	}

	c.JSON(http.StatusOK, trainingResponse(training))
}

func (s *Server) deleteTraining(c *gin.Context) {
	training, ok := s.ownTraining(c, c.Param("id"))
	if !ok {
		return
	}

	if err := s.db.Delete(&models.Training{}, "id = ?", training.ID).Error; err != nil {
		s.internalError(c, err, "Failed to delete training")
		return
	}

	c.Status(http.StatusNoContent)
}
