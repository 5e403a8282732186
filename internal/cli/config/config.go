package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const ConfigFileName = "rinkside.yaml"

// Backend represents a skating backend the client can talk to
type Backend struct {
	URL   string `yaml:"url"`
	Alias string `yaml:"alias"`
}

// Config represents the project configuration file
type Config struct {
	Backends []Backend `yaml:"backends"`
}

// NormalizeURL validates a backend URL and defaults the scheme to https.
// Trailing slashes are removed.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("backend URL is empty")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid backend URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid backend URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid backend URL %q: missing host", raw)
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// FindConfigFile searches for rinkside.yaml in current directory and parent directories
func FindConfigFile() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	// Search upwards until we find rinkside.yaml or reach root
	dir := currentDir
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%s not found in %s or any parent directory", ConfigFileName, currentDir)
}

// Load reads the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadFromCurrentDir loads config from current directory or parent directories
func LoadFromCurrentDir() (*Config, error) {
	configPath, err := FindConfigFile()
	if err != nil {
		return nil, err
	}

	return Load(configPath)
}

// Save writes the configuration to a file
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetBackendByAlias returns a backend by its alias
func (c *Config) GetBackendByAlias(alias string) (*Backend, error) {
	for i := range c.Backends {
		if c.Backends[i].Alias == alias {
			return &c.Backends[i], nil
		}
	}
	return nil, fmt.Errorf("backend with alias '%s' not found", alias)
}

// GetBackendByURL returns a backend by its URL
func (c *Config) GetBackendByURL(rawURL string) (*Backend, error) {
	for i := range c.Backends {
		if c.Backends[i].URL == rawURL {
			return &c.Backends[i], nil
		}
	}
	return nil, fmt.Errorf("backend with URL '%s' not found", rawURL)
}

// GetBackendByURLOrAlias finds a backend by URL first, then by alias
func (c *Config) GetBackendByURLOrAlias(urlOrAlias string) (*Backend, error) {
	if b, err := c.GetBackendByURL(urlOrAlias); err == nil {
		return b, nil
	}
	if normalized, err := NormalizeURL(urlOrAlias); err == nil {
		if b, err := c.GetBackendByURL(normalized); err == nil {
			return b, nil
		}
	}
	if b, err := c.GetBackendByAlias(urlOrAlias); err == nil {
		return b, nil
	}
	return nil, fmt.Errorf("backend with URL or alias '%s' not found", urlOrAlias)
}

// AddBackend appends a backend unless its URL is already present. The first
// backend is aliased "production", later ones "backend-N". It reports
// whether the config changed.
func (c *Config) AddBackend(rawURL string) (*Backend, bool, error) {
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, false, err
	}

	if existing, err := c.GetBackendByURL(normalized); err == nil {
		return existing, false, nil
	}

	alias := "production"
	if len(c.Backends) > 0 {
		alias = fmt.Sprintf("backend-%d", len(c.Backends)+1)
	}

	c.Backends = append(c.Backends, Backend{URL: normalized, Alias: alias})
	return &c.Backends[len(c.Backends)-1], true, nil
}
