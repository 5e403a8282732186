// Package userconfig remembers which rinkside backend this machine talks to.
//
// The stored URL is the last fallback of backend selection: --api-url wins,
// then RINKSIDE_API_URL, then this file. Nothing about the logged-in account
// is written here; a new process always starts signed out.
package userconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	configDirName  = "rinkside"
	configFileName = "config.json"
)

// UserConfig mirrors ~/.config/rinkside/config.json.
type UserConfig struct {
	SelectedBackendURL string `json:"selected_backend_url"`
}

// GetConfigPath locates config.json under the user's home directory.
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".config", configDirName, configFileName), nil
}

// Load returns the stored config. A machine that never picked a backend gets
// a zero UserConfig and no error.
func Load() (*UserConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &UserConfig{}, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read user config file: %w", err)
	}

	cfg := &UserConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save replaces config.json. The file is written beside the target and
// renamed so a crash never leaves half a document behind.
func Save(cfg *UserConfig) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write user config file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write user config file: %w", err)
	}
	return nil
}

func update(fn func(*UserConfig)) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	fn(cfg)
	return Save(cfg)
}

// SetSelectedBackend pins backendURL for later runs that pass no override.
func SetSelectedBackend(backendURL string) error {
	return update(func(cfg *UserConfig) { cfg.SelectedBackendURL = backendURL })
}

// ClearSelectedBackend forgets the pinned backend, so the next run without an
// override asks again.
func ClearSelectedBackend() error {
	return update(func(cfg *UserConfig) { cfg.SelectedBackendURL = "" })
}

// GetSelectedBackend returns the pinned backend URL, or "" if none is pinned.
func GetSelectedBackend() (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}
	return cfg.SelectedBackendURL, nil
}
