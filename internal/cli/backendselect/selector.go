package backendselect

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/rs/zerolog/log"

	"github.com/rinkside/rinkside/internal/cli/config"
	"github.com/rinkside/rinkside/internal/cli/userconfig"
)

// ErrNoBackend is returned when no backend is configured anywhere
var ErrNoBackend = errors.New("no backend configured: run 'rinkside init <url>' or set RINKSIDE_API_URL")

// promptSelection is swapped out in tests
var promptSelection = PromptBackendSelection

// ResolveBackend determines which backend URL to use based on the following priority:
// 1. An explicit override (--api-url flag or RINKSIDE_API_URL), as a URL or alias
// 2. The backend selected in the user config, if still listed
// 3. The only backend in the project config
// 4. Otherwise, prompt the user to pick one
//
// projectConfig may be nil when no rinkside.yaml exists.
func ResolveBackend(projectConfig *config.Config, override string) (string, error) {
	if projectConfig == nil {
		projectConfig = &config.Config{}
	}

	// Priority 1: explicit override
	if override != "" {
		if backend, err := projectConfig.GetBackendByURLOrAlias(override); err == nil {
			return backend.URL, nil
		}
		return config.NormalizeURL(override)
	}

	if len(projectConfig.Backends) == 0 {
		return "", ErrNoBackend
	}

	// Priority 2: selected backend from user config
	selectedURL, err := userconfig.GetSelectedBackend()
	if err != nil {
		return "", fmt.Errorf("failed to load user config: %w", err)
	}

	if selectedURL != "" {
		if backend, err := projectConfig.GetBackendByURL(selectedURL); err == nil {
			return backend.URL, nil
		}
		// Selected backend no longer exists in project config
		if err := userconfig.ClearSelectedBackend(); err != nil {
			log.Warn().Err(err).Msg("Failed to clear stale backend selection")
		}
	}

	// Priority 3: single backend
	if len(projectConfig.Backends) == 1 {
		backend := projectConfig.Backends[0]
		if err := userconfig.SetSelectedBackend(backend.URL); err != nil {
			log.Warn().Err(err).Msg("Failed to save selected backend")
		}
		return backend.URL, nil
	}

	// Priority 4: prompt
	backend, err := promptSelection(projectConfig)
	if err != nil {
		return "", err
	}

	if err := userconfig.SetSelectedBackend(backend.URL); err != nil {
		log.Warn().Err(err).Msg("Failed to save selected backend")
	}

	return backend.URL, nil
}

// PromptBackendSelection shows an interactive prompt for the user to select a backend
func PromptBackendSelection(projectConfig *config.Config) (*config.Backend, error) {
	if len(projectConfig.Backends) == 0 {
		return nil, fmt.Errorf("no backends configured in %s", config.ConfigFileName)
	}

	type backendOption struct {
		Label   string
		Backend *config.Backend
	}

	options := make([]backendOption, len(projectConfig.Backends))
	for i := range projectConfig.Backends {
		backend := &projectConfig.Backends[i]
		options[i] = backendOption{
			Label:   fmt.Sprintf("%s (%s)", backend.Alias, backend.URL),
			Backend: backend,
		}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label }}",
		Selected: "{{ .Label | green }}",
	}

	prompt := promptui.Select{
		Label:     "Select a backend",
		Items:     options,
		Templates: templates,
		Size:      10,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return nil, fmt.Errorf("backend selection cancelled: %w", err)
	}

	return options[index].Backend, nil
}
