package client

import (
	"net/http"
	"strings"

	"github.com/rinkside/rinkside/internal/session"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Name     string `json:"name" validate:"required"`
	Surname  string `json:"surname" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AccountUser is the user record returned by the login endpoint. Role is not
// checked here: an empty or unknown role still logs in and routes to Resolving.
type AccountUser struct {
	ID       string `json:"id" validate:"required"`
	Role     string `json:"role"`
	CoachID  string `json:"coachId"`
	SkaterID string `json:"skaterId"`
}

// SessionUser converts the wire record into the session's user. The role is
// passed through unchanged; the router decides what an unknown role means.
func (u AccountUser) SessionUser() session.User {
	return session.User{
		ID:       u.ID,
		Role:     session.Role(u.Role),
		CoachID:  u.CoachID,
		SkaterID: u.SkaterID,
	}
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token string      `json:"token" validate:"required"`
	User  AccountUser `json:"user" validate:"required"`
}

// Login authenticates by name, surname and password. It does not touch any
// session; the caller stores the result.
func (c *Client) Login(name, surname, password string) (*LoginResponse, error) {
	reqBody := LoginRequest{
		Name:     strings.TrimSpace(name),
		Surname:  strings.TrimSpace(surname),
		Password: password,
	}

	var loginResp LoginResponse
	err := c.do(request{
		endpoint: "login",
		method:   http.MethodPost,
		path:     "/Account/login",
		body:     reqBody,
	}, &loginResp)
	if err != nil {
		return nil, err
	}

	return &loginResp, nil
}

// RegisterRequest represents the registration form. CategoryID and CoachID
// are only sent for skaters.
type RegisterRequest struct {
	Name       string       `json:"name" validate:"required"`
	Surname    string       `json:"surname" validate:"required"`
	Password   string       `json:"password" validate:"required"`
	Role       session.Role `json:"role" validate:"required,oneof=Coach Skater"`
	CategoryID string       `json:"categoryId,omitempty" validate:"required_if=Role Skater"`
	CoachID    string       `json:"coachId,omitempty" validate:"required_if=Role Skater"`
}

// Register creates a new account
func (c *Client) Register(req RegisterRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Surname = strings.TrimSpace(req.Surname)
	req.Role = session.Role(strings.TrimSpace(string(req.Role)))
	if req.Role != session.RoleSkater {
		req.CategoryID = ""
		req.CoachID = ""
	}

	return c.do(request{
		endpoint: "register",
		method:   http.MethodPost,
		path:     "/Account/register",
		body:     req,
	}, nil)
}

// Category represents a skating category
type Category struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// ListCategories returns all skater categories. It is public so the
// registration form can use it.
func (c *Client) ListCategories() ([]Category, error) {
	var categories []Category
	err := c.do(request{
		endpoint: "list categories",
		method:   http.MethodGet,
		path:     "/Category",
	}, &categories)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Coach represents a coach a skater can register under
type Coach struct {
	ID      string `json:"id" validate:"required"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// ListCoaches returns all coaches. Public for the registration form.
func (c *Client) ListCoaches() ([]Coach, error) {
	var coaches []Coach
	err := c.do(request{
		endpoint: "list coaches",
		method:   http.MethodGet,
		path:     "/Coach",
	}, &coaches)
	if err != nil {
		return nil, err
	}
	return coaches, nil
}
