package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rinkside/rinkside/internal/access"
	"github.com/rinkside/rinkside/internal/cli/client"
)

// NewEducationCmd creates the education command group
func NewEducationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "education",
		Short: "Browse and manage educational materials",
	}

	var search string
	list := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List materials",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEducationList(search)
		},
	}
	list.Flags().StringVar(&search, "search", "", "Only show materials whose title contains this text")

	var description string
	create := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a material (coach)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEducationCreate(client.MaterialRequest{Title: args[0], Description: description})
		},
	}
	create.Flags().StringVar(&description, "description", "", "Description")

	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show a material and its files",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runEducationShow(args[0])
			},
		},
		create,
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a material (coach)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runEducationDelete(args[0])
			},
		},
	)

	return cmd
}

func runEducationList(search string, opts ...Option) error {
	return withSession(opts, access.ViewEducation, func(r *conn) error {
		materials, err := r.client.ListMaterials()
		if err != nil {
			return err
		}

		materials = client.FilterMaterials(materials, search)
		if len(materials) == 0 {
			fmt.Fprintln(r.opts.Out, "No materials found.")
			return nil
		}

		w := tabwriter.NewWriter(r.opts.Out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tFILES")
		fmt.Fprintln(w, "──\t─────\t─────")
		for _, m := range materials {
			fmt.Fprintf(w, "%s\t%s\t%d\n", m.ID, m.Title, len(m.Files))
		}
		return w.Flush()
	})
}

func runEducationShow(id string, opts ...Option) error {
	return withSession(opts, access.ViewEducation, func(r *conn) error {
		m, err := r.client.GetMaterial(id)
		if err != nil {
			return err
		}

		out := r.opts.Out
		fmt.Fprintf(out, "%s (%s)\n", m.Title, m.ID)
		if m.Description != "" {
			fmt.Fprintln(out, m.Description)
		}

		fmt.Fprintf(out, "\nFiles (%d):\n", len(m.Files))
		for _, f := range m.Files {
			target, err := r.client.ResolveURL(f.FileURL)
			if err != nil {
				target = f.FileURL
			}
			fmt.Fprintf(out, "  %s  %s  %s\n", f.ID, f.FileName, target)
		}
		return nil
	})
}

func runEducationCreate(req client.MaterialRequest, opts ...Option) error {
	return withSession(opts, access.ManageEducation, func(r *conn) error {
		m, err := r.client.CreateMaterial(req)
		if err != nil {
			return err
		}

		fmt.Fprintf(r.opts.Out, "✓ Created material %q (%s)\n", m.Title, m.ID)
		return nil
	})
}

func runEducationDelete(id string, opts ...Option) error {
	return withSession(opts, access.ManageEducation, func(r *conn) error {
		if err := r.client.DeleteMaterial(id); err != nil {
			return err
		}

		fmt.Fprintf(r.opts.Out, "✓ Deleted material %s\n", id)
		return nil
	})
}
