package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rinkside/rinkside/internal/cli/client"
	"github.com/rinkside/rinkside/internal/session"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var role, categoryID, coachID string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a coach or skater account",
		Long: `Create a coach or skater account using --name, --surname and --password.

Skaters must pick a category and a coach; see 'rinkside categories' and 'rinkside coaches'.

Examples:
  $ rinkside register --role Coach --name Jana --surname Novak
  $ rinkside register --role Skater --name Ana --surname Kovac --category <id> --coach <id>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(role, categoryID, coachID)
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Account role: Coach or Skater")
	cmd.Flags().StringVar(&categoryID, "category", "", "Category ID (skaters only)")
	cmd.Flags().StringVar(&coachID, "coach", "", "Coach ID (skaters only)")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func runRegister(role, categoryID, coachID string, opts ...Option) error {
	return public(opts, func(r *conn) error {
		password := r.opts.Password
		if password == "" {
			var err error
			if password, err = readPassword(); err != nil {
				return err
			}
		}

		req := client.RegisterRequest{
			Name:       r.opts.Name,
			Surname:    r.opts.Surname,
			Password:   password,
			Role:       session.Role(role),
			CategoryID: categoryID,
			CoachID:    coachID,
		}

		if err := r.client.Register(req); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		fmt.Fprintf(r.opts.Out, "✓ Registered %s %s as %s\n", req.Name, req.Surname, req.Role)
		return nil
	})
}
