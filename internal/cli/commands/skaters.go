package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rinkside/rinkside/internal/access"
	"github.com/rinkside/rinkside/internal/cli/client"
)

// NewSkatersCmd creates the skaters command group (coaches only)
func NewSkatersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skaters",
		Short: "Manage your skaters (coach)",
	}

	var categoryID string

	create := &cobra.Command{
		Use:   "create <name> <surname>",
		Short: "Add a skater",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSkatersCreate(client.SkaterRequest{Name: args[0], Surname: args[1], CategoryID: categoryID})
		},
	}
	create.Flags().StringVar(&categoryID, "category", "", "Category ID (see 'rinkside categories')")

	var updateCategoryID string
	update := &cobra.Command{
		Use:   "update <id> <name> <surname>",
		Short: "Edit a skater",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSkatersUpdate(args[0], client.SkaterRequest{Name: args[1], Surname: args[2], CategoryID: updateCategoryID})
		},
	}
	update.Flags().StringVar(&updateCategoryID, "category", "", "Category ID (keeps the current one if empty)")

	cmd.AddCommand(
		&cobra.Command{
			Use:     "ls",
			Aliases: []string{"list"},
			Short:   "List skaters",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSkatersList()
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show a skater",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSkatersShow(args[0])
			},
		},
		create,
		update,
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a skater",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSkatersDelete(args[0])
			},
		},
	)

	return cmd
}

func runSkatersList(opts ...Option) error {
	return withSession(opts, access.ManageSkaters, func(r *conn) error {
		skaters, err := r.client.ListSkaters()
		if err != nil {
			return err
		}

		if len(skaters) == 0 {
			fmt.Fprintln(r.opts.Out, "No skaters found.")
			fmt.Fprintln(r.opts.Out, "\nAdd one with: rinkside skaters create <name> <surname> --category <id>")
			return nil
		}

		w := tabwriter.NewWriter(r.opts.Out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSURNAME\tCATEGORY")
		fmt.Fprintln(w, "──\t────\t───────\t────────")
		for _, s := range skaters {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Surname, s.CategoryName)
		}
		return w.Flush()
	})
}

func runSkatersShow(id string, opts ...Option) error {
	return withSession(opts, access.ManageSkaters, func(r *conn) error {
		s, err := r.client.GetSkater(id)
		if err != nil {
			return err
		}

		fmt.Fprintf(r.opts.Out, "ID:       %s\n", s.ID)
		fmt.Fprintf(r.opts.Out, "Name:     %s %s\n", s.Name, s.Surname)
		fmt.Fprintf(r.opts.Out, "Category: %s\n", s.CategoryName)
		return nil
	})
}

func runSkatersCreate(req client.SkaterRequest, opts ...Option) error {
	return withSession(opts, access.ManageSkaters, func(r *conn) error {
		if err := r.client.CreateSkater(req); err != nil {
			return err
		}

		fmt.Fprintf(r.opts.Out, "✓ Added skater %s %s\n", req.Name, req.Surname)
		return nil
	})
}

func runSkatersUpdate(id string, req client.SkaterRequest, opts ...Option) error {
	return withSession(opts, access.ManageSkaters, func(r *conn) error {
		if req.CategoryID == "" {
			current, err := r.client.GetSkater(id)
			if err != nil {
				return err
			}
			req.CategoryID = current.CategoryID
		}

		if err := r.client.UpdateSkater(id, req); err != nil {
			return err
		}

		fmt.Fprintf(r.opts.Out, "✓ Updated skater %s\n", id)
		return nil
	})
}

func runSkatersDelete(id string, opts ...Option) error {
	return withSession(opts, access.ManageSkaters, func(r *conn) error {
		if err := r.client.DeleteSkater(id); err != nil {
			return err
		}

		fmt.Fprintf(r.opts.Out, "✓ Deleted skater %s\n", id)
		return nil
	})
}
