package client

import (
	"net/http"
	"strings"
)

// Profile represents the caller's profile
type Profile struct {
	ID      string `json:"id" validate:"required"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// ProfileRequest is the edit profile form
type ProfileRequest struct {
	ID      string `json:"id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Surname string `json:"surname" validate:"required"`
}

// GetProfile returns the caller's profile
func (c *Client) GetProfile() (*Profile, error) {
	var profile Profile
	err := c.do(request{
		endpoint: "get profile",
		method:   http.MethodGet,
		path:     "/Profile",
		auth:     true,
	}, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile changes the caller's name and returns the stored profile
func (c *Client) UpdateProfile(req ProfileRequest) (*Profile, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Surname = strings.TrimSpace(req.Surname)

	var profile Profile
	err := c.do(request{
		endpoint: "update profile",
		method:   http.MethodPut,
		path:     "/Profile",
		body:     req,
		auth:     true,
	}, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
