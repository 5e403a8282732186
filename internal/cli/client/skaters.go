package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Skater represents a skater managed by a coach
type Skater struct {
	ID           string `json:"id" validate:"required"`
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	CategoryName string `json:"categoryName"`
	CategoryID   string `json:"categoryId,omitempty"`
}

// SkaterRequest is the create/edit skater form
type SkaterRequest struct {
	Name       string `json:"name" validate:"required"`
	Surname    string `json:"surname" validate:"required"`
	CategoryID string `json:"categoryId" validate:"required"`
}

func (r SkaterRequest) trimmed() SkaterRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Surname = strings.TrimSpace(r.Surname)
	return r
}

// ListSkaters returns the coach's skaters
func (c *Client) ListSkaters() ([]Skater, error) {
	var skaters []Skater
	err := c.do(request{
		endpoint: "list skaters",
		method:   http.MethodGet,
		path:     "/Skaters",
		auth:     true,
	}, &skaters)
	if err != nil {
		return nil, err
	}
	return skaters, nil
}

// GetSkater returns a single skater
func (c *Client) GetSkater(id string) (*Skater, error) {
	var skater Skater
	err := c.do(request{
		endpoint: "get skater",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/Skaters/%s", url.PathEscape(id)),
		auth:     true,
	}, &skater)
	if err != nil {
		return nil, err
	}
	return &skater, nil
}

// CreateSkater adds a skater
func (c *Client) CreateSkater(req SkaterRequest) error {
	return c.do(request{
		endpoint: "create skater",
		method:   http.MethodPost,
		path:     "/Skaters",
		body:     req.trimmed(),
		auth:     true,
	}, nil)
}

// UpdateSkater edits a skater
func (c *Client) UpdateSkater(id string, req SkaterRequest) error {
	return c.do(request{
		endpoint: "update skater",
		method:   http.MethodPut,
		path:     fmt.Sprintf("/Skaters/%s", url.PathEscape(id)),
		body:     req.trimmed(),
		auth:     true,
	}, nil)
}

// DeleteSkater removes a skater
func (c *Client) DeleteSkater(id string) error {
	return c.do(request{
		endpoint: "delete skater",
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/Skaters/%s", url.PathEscape(id)),
		auth:     true,
	}, nil)
}
