package backendselect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rinkside/rinkside/internal/cli/config"
	"github.com/rinkside/rinkside/internal/cli/userconfig"
)

func twoBackends() *config.Config {
	return &config.Config{Backends: []config.Backend{
		{URL: "https://rink.example.com", Alias: "production"},
		{URL: "http://localhost:8080", Alias: "dev"},
	}}
}

func stubPrompt(t *testing.T, fn func(*config.Config) (*config.Backend, error)) {
	t.Helper()
	orig := promptSelection
	promptSelection = fn
	t.Cleanup(func() { promptSelection = orig })
}

func noPrompt(t *testing.T) {
	stubPrompt(t, func(*config.Config) (*config.Backend, error) {
		t.Fatal("prompt should not be shown")
		return nil, nil
	})
}

func TestResolveBackend_Override(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	noPrompt(t)

	got, err := ResolveBackend(twoBackends(), "dev")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", got)

	got, err = ResolveBackend(nil, "staging.example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com", got)
}

func TestResolveBackend_NothingConfigured(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	noPrompt(t)

	_, err := ResolveBackend(nil, "")
	assert.ErrorIs(t, err, ErrNoBackend)
}

func TestResolveBackend_SelectedBackend(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	noPrompt(t)
	require.NoError(t, userconfig.SetSelectedBackend("http://localhost:8080"))

	got, err := ResolveBackend(twoBackends(), "")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", got)
}

func TestResolveBackend_SingleBackendIsRemembered(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	noPrompt(t)

	cfg := &config.Config{Backends: []config.Backend{{URL: "http://localhost:8080", Alias: "dev"}}}
	got, err := ResolveBackend(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", got)

	selected, err := userconfig.GetSelectedBackend()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", selected)
}

func TestResolveBackend_StaleSelectionPrompts(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, userconfig.SetSelectedBackend("https://gone.example.com"))

	cfg := twoBackends()
	stubPrompt(t, func(c *config.Config) (*config.Backend, error) {
		return &c.Backends[0], nil
	})

	got, err := ResolveBackend(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, "https://rink.example.com", got)

	selected, err := userconfig.GetSelectedBackend()
	require.NoError(t, err)
	assert.Equal(t, "https://rink.example.com", selected)
}

func TestResolveBackend_PromptCancelled(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	stubPrompt(t, func(*config.Config) (*config.Backend, error) {
		return nil, errors.New("backend selection cancelled: ^C")
	})

	_, err := ResolveBackend(twoBackends(), "")
	assert.ErrorContains(t, err, "cancelled")
}
