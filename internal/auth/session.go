package auth

import "github.com/rinkside/rinkside/internal/session"

// SessionData represents the authenticated account behind a request
type SessionData struct {
	UserID   string       `json:"user_id"`
	Role     session.Role `json:"role"`
	CoachID  string       `json:"coach_id,omitempty"`
	SkaterID string       `json:"skater_id,omitempty"`
}
