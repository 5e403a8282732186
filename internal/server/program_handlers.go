package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rinkside/rinkside/internal/models"
	"github.com/rinkside/rinkside/internal/session"
)

// ProgramRequest creates or updates a program
type ProgramRequest struct {
	Year        int    `json:"year" binding:"gte=1900,lte=2100"`
	Type        string `json:"type" binding:"required,oneof=Free Short"`
	Description string `json:"description"`
}

// ProgramResponse is a competition program
type ProgramResponse struct {
	ID          string `json:"id"`
	Year        int    `json:"year"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// CommentRequest adds a coach comment
type CommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// CommentResponse is a coach comment with the coach's display name
type CommentResponse struct {
	ID        string `json:"id"`
	CoachName string `json:"coachName"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"createdAt"`
}

// ProgramDetailsResponse bundles a program with its music and comments
type ProgramDetailsResponse struct {
	Program    ProgramResponse   `json:"program"`
	MusicFiles []FileResponse    `json:"musicFiles"`
	Comments   []CommentResponse `json:"comments"`
}

func programResponse(p *models.Program) ProgramResponse {
	return ProgramResponse{ID: p.ID, Year: p.Year, Type: p.Type, Description: p.Description}
}

// visiblePrograms scopes a query to the programs the caller may see: their
// own for a skater, their skaters' for a coach
func visiblePrograms(db *gorm.DB, c *gin.Context) *gorm.DB {
	sess := mustSession(c)
	if sess.Role == session.RoleCoach {
		return db.Where("skater_id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).Model(&models.Skater{}).Select("id").Where("coach_id = ?", sess.CoachID))
	}
	return db.Where("skater_id = ?", sess.SkaterID)
}

// visibleProgram loads a program the caller may see
func (s *Server) visibleProgram(c *gin.Context, id string) (*models.Program, bool) {
	var program models.Program
	if err := visiblePrograms(s.db, c).Where("id = ?", id).First(&program).Error; err != nil {
		s.lookupFailed(c, err, "Program")
		return nil, false
	}
	return &program, true
}

// ownProgram loads a program belonging to the calling skater
func (s *Server) ownProgram(c *gin.Context, id string) (*models.Program, bool) {
	sess := mustSession(c)

	var program models.Program
	if err := s.db.Where("id = ? AND skater_id = ?", id, sess.SkaterID).First(&program).Error; err != nil {
		s.lookupFailed(c, err, "Program")
		return nil, false
	}
	return &program, true
}

func (s *Server) listPrograms(c *gin.Context) {
	var programs []models.Program
	if err := visiblePrograms(s.db, c).Order("year DESC, created_at").Find(&programs).Error; err != nil {
		s.internalError(c, err, "Failed to list programs")
		return
	}

	resp := make([]ProgramResponse, 0, len(programs))
	for i := range programs {
		resp = append(resp, programResponse(&programs[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getProgram(c *gin.Context) {
	program, ok := s.visibleProgram(c, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, programResponse(program))
}

func (s *Server) getProgramDetails(c *gin.Context) {
	program, ok := s.visibleProgram(c, c.Param("id"))
	if !ok {
		return
	}

	music, err := s.programMusic(program.ID)
	if err != nil {
		s.internalError(c, err, "Failed to list music")
		return
	}

	var comments []models.Comment
	if err := s.db.Preload("Coach").
		Where("program_id = ?", program.ID).
		Order("created_at").
		Find(&comments).Error; err != nil {
		s.internalError(c, err, "Failed to list comments")
		return
	}

	resp := ProgramDetailsResponse{
		Program:    programResponse(program),
		MusicFiles: music,
		Comments:   make([]CommentResponse, 0, len(comments)),
	}
	for _, cm := range comments {
		resp.Comments = append(resp.Comments, CommentResponse{
			ID:        cm.ID,
			CoachName: strings.TrimSpace(cm.Coach.Name + " " + cm.Coach.Surname),
			Comment:   cm.Comment,
			CreatedAt: cm.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) createProgram(c *gin.Context) {
	sess := mustSession(c)

	var req ProgramRequest
	if !s.bindJSON(c, &req) {
		return
	}

	program := models.Program{
		SkaterID:    sess.SkaterID,
		Year:        req.Year,
		Type:        req.Type,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.db.Create(&program).Error; err != nil {
		s.internalError(c, err, "Failed to create program")
		return
	}

	c.JSON(http.StatusCreated, programResponse(&program))
}

func (s *Server) updateProgram(c *gin.Context) {
	program, ok := s.ownProgram(c, c.Param("id"))
	if !ok {
		return
	}

	var req ProgramRequest
	if !s.bindJSON(c, &req) {
		return
	}

	program.Year = req.Year
	program.Type = req.Type
	program.Description = strings.TrimSpace(req.Description)
	if err := s.db.Save(program).Error; err != nil {
		s.internalError(c, err, "Failed to update program")
		return
	}

	c.JSON(http.StatusOK, programResponse(program))
}

func (s *Server) deleteProgram(c *gin.Context) {
	program, ok := s.ownProgram(c, c.Param("id"))
	if !ok {
		return
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("program_id = ?", program.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("program_id = ?", program.ID).Delete(&models.StoredFile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Program{}, "id = ?", program.ID).Error
	})
	if err != nil {
		s.internalError(c, err, "Failed to delete program")
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) addComment(c *gin.Context) {
	sess := mustSession(c)

	program, ok := s.visibleProgram(c, c.Param("id"))
	if !ok {
		return
	}

	var req CommentRequest
	if !s.bindJSON(c, &req) {
		return
	}

	text := strings.TrimSpace(req.Comment)
	if text == "" {
		s.fail(c, http.StatusBadRequest, "Comment must not be blank")
		return
	}

	comment := models.Comment{ProgramID: program.ID, CoachID: sess.CoachID, Comment: text}
	if err := s.db.Omit("Coach").Create(&comment).Error; err != nil {
		s.internalError(c, err, "Failed to add comment")
		return
	}

	s.logger.Info().Str("program_id", program.ID).Str("coach_id", sess.CoachID).Msg("Comment added")
	c.JSON(http.StatusCreated, gin.H{"id": comment.ID})
}
