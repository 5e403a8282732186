package update

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		current, latest string
		want            bool
	}{
		{"dev", "v0.1.0", true},
		{"v0.1.0", "v0.1.0", false},
		{"0.1.0", "v0.2.0", true},
		{"v1.10.0", "v1.9.0", false},
		{"v1.2", "v1.2.1", true},
		{"v1.2.0-rc1", "v1.2.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.current+"->"+tt.latest, func(t *testing.T) {
			assert.Equal(t, tt.want, compareVersions(tt.current, tt.latest))
		})
	}
}

func newTestChecker(t *testing.T, handler http.HandlerFunc) *Checker {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewChecker()
	c.apiURL = srv.URL
	return c
}

func TestCheckForUpdate(t *testing.T) {
	c := newTestChecker(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		w.Write([]byte(`{"tag_name":"v0.3.0","html_url":"https://example.com/releases/v0.3.0"}`))
	})

	available, latest, err := c.CheckForUpdate("v0.2.1")
	require.NoError(t, err)
	assert.True(t, available)
	assert.Equal(t, "v0.3.0", latest)
	assert.Equal(t, "https://example.com/releases/v0.3.0", c.ReleasesURL())
}

func TestCheckForUpdate_HTTPError(t *testing.T) {
	c := newTestChecker(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, _, err := c.CheckForUpdate("v0.2.1")
	assert.ErrorContains(t, err, "status 403")
}
