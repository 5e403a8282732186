package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/rinkside/rinkside/internal/access"
	"github.com/rinkside/rinkside/internal/auth"
	"github.com/rinkside/rinkside/internal/models"
	"github.com/rinkside/rinkside/internal/session"
)

const (
	bearerPrefix = "Bearer "
)

var (
	ErrMissingAuthHeader = errors.New("missing authorization header")
	ErrInvalidAuthFormat = errors.New("invalid authorization header format")
	ErrEmptyToken        = errors.New("empty token")
	ErrInvalidToken      = errors.New("invalid token")
	ErrUserNotFound      = errors.New("user not found")
)

func setSession(c *gin.Context, sessionData *auth.SessionData) {
	c.Set("session", sessionData)
}

func GetSessionData(c *gin.Context) (*auth.SessionData, bool) {
	session, exists := c.Get("session")
	if !exists {
		return nil, false
	}

	sessionData, ok := session.(*auth.SessionData)
	return sessionData, ok
}

// mustSession is for handlers behind JWTAuthMiddleware
func mustSession(c *gin.Context) *auth.SessionData {
	sess, ok := GetSessionData(c)
	if !ok {
		panic("server: handler registered without JWTAuthMiddleware")
	}
	return sess
}

func extractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}

	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", ErrInvalidAuthFormat
	}

	token := strings.TrimPrefix(authHeader, bearerPrefix)
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}

func respondWithError(c *gin.Context, log zerolog.Logger, statusCode int, err error, message string) {
	log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg(message)
	c.JSON(statusCode, gin.H{"message": message})
	c.Abort()
}

// JWTAuthMiddleware validates the bearer token and loads the account
func JWTAuthMiddleware(db *gorm.DB, tokens *auth.Issuer, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			var message string
			switch err {
			case ErrMissingAuthHeader:
				message = "Missing authorization header"
			case ErrInvalidAuthFormat:
				message = "Invalid authorization header format"
			case ErrEmptyToken:
				message = "Empty token"
			}
			respondWithError(c, log, http.StatusUnauthorized, err, message)
			return
		}

		claims, err := tokens.ValidateToken(token)
		if err != nil {
			respondWithError(c, log, http.StatusUnauthorized, err, "Invalid or expired token")
			return
		}

		// Verify the account still exists
		var account models.Account
		if err := models.FindByID(db, claims.UserID, &account); err != nil {
			log.Error().Err(err).Str("user_id", claims.UserID).Msg("Account not found")
			respondWithError(c, log, http.StatusUnauthorized, ErrUserNotFound, "User not found")
			return
		}

		setSession(c, &auth.SessionData{
			UserID:   account.ID,
			Role:     session.Role(account.Role),
			CoachID:  deref(account.CoachID),
			SkaterID: deref(account.SkaterID),
		})

		c.Next()
	}
}

// RequireCapability rejects accounts whose role lacks capability
func RequireCapability(capability access.Capability, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, exists := GetSessionData(c)
		if !exists {
			respondWithError(c, log, http.StatusUnauthorized, errors.New("no session"), "Unauthorized")
			return
		}

		if !access.Can(sess.Role, capability) {
			respondWithError(c, log, http.StatusForbidden, access.ErrForbidden,
				fmt.Sprintf("%s is not available to role %q", capability, sess.Role))
			return
		}

		c.Next()
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
