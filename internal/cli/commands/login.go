package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rinkside/rinkside/internal/router"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Verify credentials against the backend",
		Long: `Verify credentials against the backend and show which menu the account gets.

Nothing is saved: every rinkside command logs in again with --name/--surname/--password
or RINKSIDE_NAME/RINKSIDE_SURNAME/RINKSIDE_PASSWORD.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin()
		},
	}
}

func runLogin(opts ...Option) error {
	r, err := connect(newOptions(opts))
	if err != nil {
		return err
	}

	fmt.Fprintf(r.opts.Out, "Logging in to %s...\n", r.client.BaseURL())

	resp, err := r.login()
	if err != nil {
		return err
	}

	st := r.session.Snapshot()
	fmt.Fprintln(r.opts.Out, "✓ Login successful!")
	fmt.Fprintf(r.opts.Out, "  User:  %s\n", resp.User.ID)
	fmt.Fprintf(r.opts.Out, "  Role:  %s\n", resp.User.Role)
	fmt.Fprintf(r.opts.Out, "  Route: %s\n", router.Resolve(st))

	return nil
}
