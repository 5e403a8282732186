package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rinkside/rinkside/internal/auth"
	"github.com/rinkside/rinkside/internal/models"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AccountUser is the account summary returned on login
type AccountUser struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	CoachID  string `json:"coachId,omitempty"`
	SkaterID string `json:"skaterId,omitempty"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	Token string      `json:"token"`
	User  AccountUser `json:"user"`
}

// RegisterRequest creates a coach or skater account
type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Surname    string `json:"surname" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Role       string `json:"role" binding:"required,oneof=Coach Skater"`
	CategoryID string `json:"categoryId" binding:"required_if=Role Skater"`
	CoachID    string `json:"coachId" binding:"required_if=Role Skater"`
}

// CategoryResponse is one skating category
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CoachResponse is a coach a skater can register under
type CoachResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

var errAccountExists = errors.New("account exists")

func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if !s.bindJSON(c, &req) {
		return
	}

	var account models.Account
	err := s.db.Where("name = ? AND surname = ?", strings.TrimSpace(req.Name), strings.TrimSpace(req.Surname)).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.fail(c, http.StatusUnauthorized, "Invalid name, surname or password")
			return
		}
		s.internalError(c, err, "Failed to find account")
		return
	}

	if err := auth.VerifyPassword(req.Password, account.PasswordHash); err != nil {
		s.fail(c, http.StatusUnauthorized, "Invalid name, surname or password")
		return
	}

	token, err := s.tokens.GenerateToken(account.ID, account.Role)
	if err != nil {
		s.internalError(c, err, "Failed to generate token")
		return
	}

	s.logger.Info().Str("user_id", account.ID).Str("role", account.Role).Msg("User logged in")

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User: AccountUser{
			ID:       account.ID,
			Role:     account.Role,
			CoachID:  deref(account.CoachID),
			SkaterID: deref(account.SkaterID),
		},
	})
}

func (s *Server) register(c *gin.Context) {
	var req RegisterRequest
	if !s.bindJSON(c, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Surname = strings.TrimSpace(req.Surname)

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.internalError(c, err, "Failed to hash password")
		return
	}

	account := models.Account{
		Name:         req.Name,
		Surname:      req.Surname,
		PasswordHash: passwordHash,
		Role:         req.Role,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Account{}).
			Where("name = ? AND surname = ?", req.Name, req.Surname).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return errAccountExists
		}

		switch req.Role {
		case models.RoleCoach:
			coach := models.Coach{Name: req.Name, Surname: req.Surname}
			if err := tx.Create(&coach).Error; err != nil {
				return err
			}
			account.CoachID = &coach.ID

		case models.RoleSkater:
			if err := models.FindByID(tx, req.CategoryID, &models.Category{}); err != nil {
				return errUnknown("category", err)
			}
			if err := models.FindByID(tx, req.CoachID, &models.Coach{}); err != nil {
				return errUnknown("coach", err)
			}

			skater := models.Skater{
				Name:       req.Name,
				Surname:    req.Surname,
				CategoryID: req.CategoryID,
				CoachID:    req.CoachID,
			}
			if err := tx.Create(&skater).Error; err != nil {
				return err
			}
			account.SkaterID = &skater.ID
		}

		return tx.Create(&account).Error
	})

	var unknown *unknownRefError
	switch {
	case err == nil:
	case errors.Is(err, errAccountExists):
		s.fail(c, http.StatusConflict, "An account with this name and surname already exists")
		return
	case errors.As(err, &unknown):
		s.fail(c, http.StatusBadRequest, unknown.Error())
		return
	default:
		s.internalError(c, err, "Failed to create account")
		return
	}

	s.logger.Info().Str("user_id", account.ID).Str("role", account.Role).Msg("Account registered")

	c.JSON(http.StatusCreated, gin.H{"id": account.ID})
}

func (s *Server) listCategories(c *gin.Context) {
	var categories []models.Category
	if err := s.db.Order("created_at, id").Find(&categories).Error; err != nil {
		s.internalError(c, err, "Failed to list categories")
		return
	}

	resp := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		resp = append(resp, CategoryResponse{ID: cat.ID, Name: cat.Name})
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) listCoaches(c *gin.Context) {
	var coaches []models.Coach
	if err := s.db.Order("surname, name").Find(&coaches).Error; err != nil {
		s.internalError(c, err, "Failed to list coaches")
		return
	}

	resp := make([]CoachResponse, 0, len(coaches))
	for _, coach := range coaches {
		resp = append(resp, CoachResponse{ID: coach.ID, Name: coach.Name, Surname: coach.Surname})
	}
	c.JSON(http.StatusOK, resp)
}

// unknownRefError is a request that names a category or coach that does
// not exist
type unknownRefError struct {
	what string
	err  error
}

func (e *unknownRefError) Error() string { return "Unknown " + e.what }

func (e *unknownRefError) Unwrap() error { return e.err }

// errUnknown turns a missing record into an unknownRefError and passes
// other errors through
func errUnknown(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &unknownRefError{what: what, err: err}
	}
	return err
}
