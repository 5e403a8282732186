package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Material represents an educational material with its files
type Material struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Files       []File `json:"files,omitempty" validate:"dive"`
}

// MaterialRequest is the create material form
type MaterialRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// FilterMaterials returns the materials whose title contains query,
// case-insensitively. An empty query returns everything.
func FilterMaterials(materials []Material, query string) []Material {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return materials
	}

	var out []Material
	for _, m := range materials {
		if strings.Contains(strings.ToLower(m.Title), q) {
			out = append(out, m)
		}
	}
	return out
}

// ListMaterials returns all educational materials
func (c *Client) ListMaterials() ([]Material, error) {
	var materials []Material
	err := c.do(request{
		endpoint: "list materials",
		method:   http.MethodGet,
		path:     "/Education",
		auth:     true,
	}, &materials)
	if err != nil {
		return nil, err
	}
	return materials, nil
}

// GetMaterial returns a material with its files
func (c *Client) GetMaterial(id string) (*Material, error) {
	var material Material
	err := c.do(request{
		endpoint: "get material",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/Education/%s", url.PathEscape(id)),
		auth:     true,
	}, &material)
	if err != nil {
		return nil, err
	}
	return &material, nil
}

// CreateMaterial adds an educational material and returns it
func (c *Client) CreateMaterial(req MaterialRequest) (*Material, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)

	var material Material
	err := c.do(request{
		endpoint: "create material",
		method:   http.MethodPost,
		path:     "/Education",
		body:     req,
		auth:     true,
	}, &material)
	if err != nil {
		return nil, err
	}
	return &material, nil
}

// DeleteMaterial removes a material and its files
func (c *Client) DeleteMaterial(id string) error {
	return c.do(request{
		endpoint: "delete material",
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/Education/%s", url.PathEscape(id)),
		auth:     true,
	}, nil)
}

// UploadEducationalFile attaches a local file to a material
func (c *Client) UploadEducationalFile(materialID, filePath string) (*File, error) {
	var file File
	err := c.upload(
		"upload educational file",
		fmt.Sprintf("/EducationalFile/material/%s/upload", url.PathEscape(materialID)),
		"file",
		filePath,
		&file,
	)
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// DeleteEducationalFile removes a single file from a material
func (c *Client) DeleteEducationalFile(fileID string) error {
	return c.do(request{
		endpoint: "delete educational file",
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/EducationalFile/%s", url.PathEscape(fileID)),
		auth:     true,
	}, nil)
}
