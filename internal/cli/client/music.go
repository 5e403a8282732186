package client

import (
	"fmt"
	"net/http"
	"net/url"
)

// ListMusic returns the music files attached to a program
func (c *Client) ListMusic(programID string) ([]File, error) {
	var files []File
	err := c.do(request{
		endpoint: "list music",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/Music/program/%s", url.PathEscape(programID)),
		auth:     true,
	}, &files)
	if err != nil {
		return nil, err
	}
	return files, nil
}

// UploadMusic attaches a local audio file to a program
func (c *Client) UploadMusic(programID, filePath string) (*File, error) {
	var file File
	err := c.upload(
		"upload music",
		fmt.Sprintf("/Music/program/%s/upload", url.PathEscape(programID)),
		"musicFile",
		filePath,
		&file,
	)
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// ResolveURL turns a file URL from the backend into an absolute URL.
// Relative URLs are resolved against the client's base URL.
func (c *Client) ResolveURL(fileURL string) (string, error) {
	ref, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("invalid file URL %q: %w", fileURL, err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}

	base, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", c.baseURL, err)
	}
	return base.ResolveReference(ref).String(), nil
}
