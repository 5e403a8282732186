package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rinkside/rinkside/internal/cli/config"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <backend-url>",
		Short: "Add a backend to ./rinkside.yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args[0])
		},
	}
}

func runInit(backendURL string, opts ...Option) error {
	o := newOptions(opts)

	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(currentDir, config.ConfigFileName)

	var cfg *config.Config
	isNewConfig := false

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load existing config: %w", err)
		}
		fmt.Fprintf(o.Out, "Found existing %s\n", config.ConfigFileName)
	} else {
		cfg = &config.Config{Backends: []config.Backend{}}
		isNewConfig = true
	}

	backend, added, err := cfg.AddBackend(backendURL)
	if err != nil {
		return err
	}

	if !added {
		fmt.Fprintf(o.Out, "Backend %s already exists in %s\n", backend.URL, config.ConfigFileName)
	} else {
		if err := config.Save(configPath, cfg); err != nil {
			return err
		}

		if isNewConfig {
			fmt.Fprintf(o.Out, "✓ Created ./%s with backend %s (%s)\n", config.ConfigFileName, backend.URL, backend.Alias)
		} else {
			fmt.Fprintf(o.Out, "✓ Added backend %s (%s) to ./%s\n", backend.URL, backend.Alias, config.ConfigFileName)
		}
	}

	fmt.Fprintln(o.Out, "\nNext steps:")
	fmt.Fprintln(o.Out, "  1. Run 'rinkside register' if you don't have an account yet")
	fmt.Fprintln(o.Out, "  2. Run 'rinkside' to open the interactive shell")

	return nil
}
