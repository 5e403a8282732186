package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rinkside/rinkside/internal/cli/backendselect"
	"github.com/rinkside/rinkside/internal/cli/config"
	"github.com/rinkside/rinkside/internal/cli/userconfig"
)

// NewSelectBackendCmd creates the select-backend command
func NewSelectBackendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select-backend [url-or-alias]",
		Short: "Select the backend to use for commands",
		Long: `Select the backend to use for commands.

If no param is provided, an interactive prompt will be shown.

Examples:
  $ rinkside select-backend                        # Interactive selection
  $ rinkside select-backend http://localhost:8080  # Select by URL
  $ rinkside select-backend production             # Select by alias`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var urlOrAlias string
			if len(args) > 0 {
				urlOrAlias = args[0]
			}
			return runSelectBackend(urlOrAlias)
		},
	}

	return cmd
}

func runSelectBackend(urlOrAlias string, opts ...Option) error {
	o := newOptions(opts)

	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return fmt.Errorf("failed to load config: %w\nRun 'rinkside init <url>' to create a configuration file", err)
	}

	var backend *config.Backend

	if urlOrAlias != "" {
		backend, err = cfg.GetBackendByURLOrAlias(urlOrAlias)
		if err != nil {
			return err
		}
	} else {
		backend, err = backendselect.PromptBackendSelection(cfg)
		if err != nil {
			return err
		}
	}

	if err := userconfig.SetSelectedBackend(backend.URL); err != nil {
		return fmt.Errorf("failed to save selected backend: %w", err)
	}

	fmt.Fprintf(o.Out, "Selected backend: %s (%s)\n", backend.Alias, backend.URL)
	return nil
}
