package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewCategoriesCmd creates the categories command
func NewCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List skater categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategories()
		},
	}
}

// NewCoachesCmd creates the coaches command
func NewCoachesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coaches",
		Short: "List coaches skaters can register under",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCoaches()
		},
	}
}

func runCategories(opts ...Option) error {
	return public(opts, func(r *conn) error {
		categories, err := r.client.ListCategories()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(r.opts.Out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME")
		fmt.Fprintln(w, "──\t────")
		for _, c := range categories {
			fmt.Fprintf(w, "%s\t%s\n", c.ID, c.Name)
		}
		return w.Flush()
	})
}

func runCoaches(opts ...Option) error {
	return public(opts, func(r *conn) error {
		coaches, err := r.client.ListCoaches()
		if err != nil {
			return err
		}

		if len(coaches) == 0 {
			fmt.Fprintln(r.opts.Out, "No coaches registered yet.")
			return nil
		}

		w := tabwriter.NewWriter(r.opts.Out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSURNAME")
		fmt.Fprintln(w, "──\t────\t───────")
		for _, c := range coaches {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.Surname)
		}
		return w.Flush()
	})
}
