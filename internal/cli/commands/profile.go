package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rinkside/rinkside/internal/access"
	"github.com/rinkside/rinkside/internal/cli/client"
)

// NewProfileCmd creates the profile command group
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your profile",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show your profile",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runProfileShow()
			},
		},
		&cobra.Command{
			Use:   "update <name> <surname>",
			Short: "Change your name",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runProfileUpdate(args[0], args[1])
			},
		},
	)

	return cmd
}

func runProfileShow(opts ...Option) error {
	return withSession(opts, access.EditProfile, func(r *conn) error {
		p, err := r.client.GetProfile()
		if err != nil {
			return err
		}

		st := r.session.Snapshot()
		fmt.Fprintf(r.opts.Out, "ID:      %s\n", p.ID)
		fmt.Fprintf(r.opts.Out, "Name:    %s %s\n", p.Name, p.Surname)
		fmt.Fprintf(r.opts.Out, "Role:    %s\n", st.User.Role)
		return nil
	})
}

func runProfileUpdate(name, surname string, opts ...Option) error {
	return withSession(opts, access.EditProfile, func(r *conn) error {
		current, err := r.client.GetProfile()
		if err != nil {
			return err
		}

		p, err := r.client.UpdateProfile(client.ProfileRequest{ID: current.ID, Name: name, Surname: surname})
		if err != nil {
			return err
		}

		fmt.Fprintf(r.opts.Out, "✓ Profile updated: %s %s\n", p.Name, p.Surname)
		fmt.Fprintln(r.opts.Out, "Use the new name the next time you log in.")
		return nil
	})
}
