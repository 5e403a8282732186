package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Program types
const (
	ProgramFree  = "Free"
	ProgramShort = "Short"
)

// Program represents a competition program
type Program struct {
	ID          string `json:"id" validate:"required"`
	Year        int    `json:"year"`
	Type        string `json:"type" validate:"required"`
	Description string `json:"description"`
}

// ProgramRequest is the create/edit program form
type ProgramRequest struct {
	Year        int    `json:"year" validate:"gte=1900,lte=2100"`
	Type        string `json:"type" validate:"oneof=Free Short"`
	Description string `json:"description" validate:"required"`
}

// File is an uploaded music or educational file
type File struct {
	ID          string `json:"id" validate:"required"`
	FileName    string `json:"fileName" validate:"required"`
	ContentType string `json:"contentType"`
	FileSize    int64  `json:"fileSize"`
	UploadedAt  string `json:"uploadedAt"`
	FileURL     string `json:"fileUrl,omitempty"`
}

// Comment is a coach's note on a program
type Comment struct {
	ID        string `json:"id" validate:"required"`
	CoachName string `json:"coachName"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"createdAt"`
}

// ProgramDetails is a program with its music and comments
type ProgramDetails struct {
	Program    Program   `json:"program" validate:"required"`
	MusicFiles []File    `json:"musicFiles" validate:"dive"`
	Comments   []Comment `json:"comments" validate:"dive"`
}

// CommentRequest represents the add-comment body
type CommentRequest struct {
	Comment string `json:"comment" validate:"required"`
}

// ListPrograms returns the programs visible to the caller
func (c *Client) ListPrograms() ([]Program, error) {
	var programs []Program
	err := c.do(request{
		endpoint: "list programs",
		method:   http.MethodGet,
		path:     "/Program",
		auth:     true,
	}, &programs)
	if err != nil {
		return nil, err
	}
	return programs, nil
}

// GetProgram returns a single program
func (c *Client) GetProgram(id string) (*Program, error) {
	var program Program
	err := c.do(request{
		endpoint: "get program",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/Program/%s", url.PathEscape(id)),
		auth:     true,
	}, &program)
	if err != nil {
		return nil, err
	}
	return &program, nil
}

// GetProgramDetails returns a program with music files and comments
func (c *Client) GetProgramDetails(id string) (*ProgramDetails, error) {
	var details ProgramDetails
	err := c.do(request{
		endpoint: "get program details",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/Program/%s/details", url.PathEscape(id)),
		auth:     true,
	}, &details)
	if err != nil {
		return nil, err
	}
	return &details, nil
}

// CreateProgram adds a program
func (c *Client) CreateProgram(req ProgramRequest) error {
	req.Description = strings.TrimSpace(req.Description)
	return c.do(request{
		endpoint: "create program",
		method:   http.MethodPost,
		path:     "/Program",
		body:     req,
		auth:     true,
	}, nil)
}

// UpdateProgram edits a program
func (c *Client) UpdateProgram(id string, req ProgramRequest) error {
	req.Description = strings.TrimSpace(req.Description)
	return c.do(request{
		endpoint: "update program",
		method:   http.MethodPut,
		path:     fmt.Sprintf("/Program/%s", url.PathEscape(id)),
		body:     req,
		auth:     true,
	}, nil)
}

// DeleteProgram removes a program
func (c *Client) DeleteProgram(id string) error {
	return c.do(request{
		endpoint: "delete program",
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/Program/%s", url.PathEscape(id)),
		auth:     true,
	}, nil)
}

// AddComment posts a comment on a program. Blank comments are rejected.
func (c *Client) AddComment(programID, comment string) error {
	return c.do(request{
		endpoint: "add comment",
		method:   http.MethodPost,
		path:     fmt.Sprintf("/Program/%s/comments", url.PathEscape(programID)),
		body:     CommentRequest{Comment: strings.TrimSpace(comment)},
		auth:     true,
	}, nil)
}
