package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Training types
const (
	TrainingOnIce  = "OnIce"
	TrainingOffIce = "OffIce"
)

// Training represents a logged training session. Elements is the
// comma-separated list of element IDs as sent by the backend.
type Training struct {
	ID       string `json:"id" validate:"required"`
	Date     string `json:"date" validate:"required"`
	Duration int    `json:"duration" validate:"gte=0"`
	Type     string `json:"type" validate:"required"`
	Elements string `json:"elements"`
	Notes    string `json:"notes"`
}

// ElementIDs splits the element CSV
func (t Training) ElementIDs() []string {
	return SplitElements(t.Elements)
}

// Element is a selectable training element
type Element struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// TrainingRequest is the create/edit training form
type TrainingRequest struct {
	Date     time.Time `json:"date" validate:"required"`
	Duration int       `json:"duration" validate:"gt=0"`
	Type     string    `json:"type" validate:"oneof=OnIce OffIce"`
	Elements []string  `json:"elements" validate:"min=1,dive,required"`
	Notes    string    `json:"notes"`
}

// MarshalJSON encodes the form in the backend's wire shape: an RFC 3339
// date and elements joined into a CSV string.
func (r TrainingRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date     string `json:"date"`
		Duration int    `json:"duration"`
		Type     string `json:"type"`
		Elements string `json:"elements"`
		Notes    string `json:"notes,omitempty"`
	}{
		Date:     r.Date.UTC().Format(time.RFC3339),
		Duration: r.Duration,
		Type:     r.Type,
		Elements: JoinElements(r.Elements),
		Notes:    strings.TrimSpace(r.Notes),
	})
}

// SplitElements parses an element CSV, dropping blanks
func SplitElements(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinElements builds the element CSV
func JoinElements(ids []string) string {
	return strings.Join(ids, ",")
}

// ElementNames maps element IDs to names using the known elements. Unknown
// IDs are returned as-is.
func ElementNames(ids []string, known []Element) []string {
	byID := make(map[string]string, len(known))
	for _, e := range known {
		byID[e.ID] = e.Name
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		} else {
			names = append(names, id)
		}
	}
	return names
}

// ListTrainings returns the skater's training sessions
func (c *Client) ListTrainings() ([]Training, error) {
	var trainings []Training
	err := c.do(request{
		endpoint: "list trainings",
		method:   http.MethodGet,
		path:     "/Training",
		auth:     true,
	}, &trainings)
	if err != nil {
		return nil, err
	}
	return trainings, nil
}

// GetTraining returns a single training session
func (c *Client) GetTraining(id string) (*Training, error) {
	var training Training
	err := c.do(request{
		endpoint: "get training",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/Training/%s", url.PathEscape(id)),
		auth:     true,
	}, &training)
	if err != nil {
		return nil, err
	}
	return &training, nil
}

// ListTrainingElements returns the elements for a training type
func (c *Client) ListTrainingElements(trainingType string) ([]Element, error) {
	if trainingType != TrainingOnIce && trainingType != TrainingOffIce {
		return nil, &ValidationError{Fields: []FieldError{{Field: "type", Message: "must be one of OnIce, OffIce"}}}
	}

	var elements []Element
	err := c.do(request{
		endpoint: "list training elements",
		method:   http.MethodGet,
		path:     "/Training/elements?type=" + url.QueryEscape(trainingType),
		auth:     true,
	}, &elements)
	if err != nil {
		return nil, err
	}
	return elements, nil
}

// CreateTraining logs a training session
func (c *Client) CreateTraining(req TrainingRequest) error {
	return c.do(request{
		endpoint: "create training",
		method:   http.MethodPost,
		path:     "/Training",
		body:     req,
		auth:     true,
	}, nil)
}

// UpdateTraining edits a training session
func (c *Client) UpdateTraining(id string, req TrainingRequest) error {
	return c.do(request{
		endpoint: "update training",
		method:   http.MethodPut,
		path:     fmt.Sprintf("/Training/%s", url.PathEscape(id)),
		body:     req,
		auth:     true,
	}, nil)
}

// DeleteTraining removes a training session
func (c *Client) DeleteTraining(id string) error {
	return c.do(request{
		endpoint: "delete training",
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/Training/%s", url.PathEscape(id)),
		auth:     true,
	}, nil)
}
