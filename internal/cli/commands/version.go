package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rinkside/rinkside/internal/cli/update"
)

// NewVersionCmd creates the version command
func NewVersionCmd(version string) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(version, check, update.NewChecker())
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Check GitHub for a newer release")

	return cmd
}

func runVersion(version string, check bool, checker *update.Checker, opts ...Option) error {
	o := newOptions(opts)

	fmt.Fprintf(o.Out, "rinkside version %s\n", version)
	if !check {
		return nil
	}

	available, latest, err := checker.CheckForUpdate(version)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	if available {
		fmt.Fprintf(o.Out, "New version available: %s -> %s\n", version, latest)
		fmt.Fprintf(o.Out, "Download it from %s\n", checker.ReleasesURL())
	} else {
		fmt.Fprintln(o.Out, "✓ You are on the latest version")
	}
	return nil
}
