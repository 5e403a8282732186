package commands

import (
	"github.com/spf13/cobra"

	"github.com/rinkside/rinkside/internal/cli/shell"
	"github.com/rinkside/rinkside/internal/logger"
)

// NewShellCmd creates the shell command
func NewShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Open the interactive menu (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunShell()
		},
	}
}

// RunShell starts the interactive shell against the resolved backend
func RunShell(opts ...Option) error {
	r, err := connect(newOptions(opts))
	if err != nil {
		return err
	}

	sh := shell.New(r.session, r.client, r.opts.Prompter,
		shell.WithOutput(r.opts.Out),
		shell.WithURLOpener(r.opts.OpenURL),
		shell.WithLogger(logger.GetLogger()),
	)
	return sh.Run()
}
