package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (s *Server) fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

func (s *Server) internalError(c *gin.Context, err error, message string) {
	s.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg(message)
	s.fail(c, http.StatusInternalServerError, "Internal server error")
}

// bindJSON decodes and validates the body, answering 400 on failure
func (s *Server) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		s.fail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return false
	}
	return true
}

// lookupFailed answers 404 for a missing record and 500 otherwise
func (s *Server) lookupFailed(c *gin.Context, err error, what string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.fail(c, http.StatusNotFound, what+" not found")
		return
	}
	s.internalError(c, err, "Failed to load "+what)
}
