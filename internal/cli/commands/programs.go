package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rinkside/rinkside/internal/access"
	"github.com/rinkside/rinkside/internal/cli/client"
)

// NewProgramsCmd creates the programs command group
func NewProgramsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "programs",
		Short: "View and manage competition programs",
	}

	programFlags := func(c *cobra.Command, req *client.ProgramRequest) {
		c.Flags().IntVar(&req.Year, "year", 0, "Season year")
		c.Flags().StringVar(&req.Type, "type", "", "Program type: Free or Short")
		c.Flags().StringVar(&req.Description, "description", "", "Description")
	}

	var createReq client.ProgramRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a program (skater)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgramsCreate(createReq)
		},
	}
	programFlags(create, &createReq)

	var updateReq client.ProgramRequest
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a program (skater)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgramsUpdate(args[0], updateReq)
		},
	}
	programFlags(update, &updateReq)

	cmd.AddCommand(
		&cobra.Command{
			Use:     "ls",
			Aliases: []string{"list"},
			Short:   "List programs",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runProgramsList()
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show a program with its music and comments",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runProgramsShow(args[0])
			},
		},
		create,
		update,
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a program (skater)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runProgramsDelete(args[0])
			},
		},
		&cobra.Command{
			Use:   "comment <id> <comment>",
			Short: "Comment on a program (coach)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runProgramsComment(args[0], args[1])
			},
		},
	)

	return cmd
}

func runProgramsList(opts ...Option) error {
	return withSession(opts, access.ViewPrograms, func(r *conn) error {
		programs, err := r.client.ListPrograms()
		if err != nil {
			return err
		}

		if len(programs) == 0 {
			fmt.Fprintln(r.opts.Out, "No programs found.")
			return nil
		}

		w := tabwriter.NewWriter(r.opts.Out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tYEAR\tTYPE\tDESCRIPTION")
		fmt.Fprintln(w, "──\t────\t────\t───────────")
		for _, p := range programs {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", p.ID, p.Year, p.Type, p.Description)
		}
		return w.Flush()
	})
}

func runProgramsShow(id string, opts ...Option) error {
	return withSession(opts, access.ViewPrograms, func(r *conn) error {
		details, err := r.client.GetProgramDetails(id)
		if err != nil {
			return err
		}

		out := r.opts.Out
		p := details.Program
		fmt.Fprintf(out, "%d %s program (%s)\n", p.Year, p.Type, p.ID)
		fmt.Fprintf(out, "%s\n", p.Description)

		fmt.Fprintf(out, "\nMusic (%d):\n", len(details.MusicFiles))
		for _, f := range details.MusicFiles {
			fmt.Fprintf(out, "  %s  %s  %d bytes\n", f.ID, f.FileName, f.FileSize)
		}

		fmt.Fprintf(out, "\nComments (%d):\n", len(details.Comments))
		for _, c := range details.Comments {
			fmt.Fprintf(out, "  %s (%s): %s\n", c.CoachName, c.CreatedAt, c.Comment)
		}
		return nil
	})
}

func runProgramsCreate(req client.ProgramRequest, opts ...Option) error {
	return withSession(opts, access.ManagePrograms, func(r *conn) error {
		if err := r.client.CreateProgram(req); err != nil {
			return err
		}

		fmt.Fprintf(r.opts.Out, "✓ Created %d %s program\n", req.Year, req.Type)
		return nil
	})
}

func runProgramsUpdate(id string, req client.ProgramRequest, opts ...Option) error {
	return withSession(opts, access.ManagePrograms, func(r *conn) error {
		if err := r.client.UpdateProgram(id, req); err != nil {
			return err
		}

		fmt.Fprintf(r.opts.Out, "✓ Updated program %s\n", id)
		return nil
	})
}

func runProgramsDelete(id string, opts ...Option) error {
	return withSession(opts, access.ManagePrograms, func(r *conn) error {
		if err := r.client.DeleteProgram(id); err != nil {
			return err
		}

		fmt.Fprintf(r.opts.Out, "✓ Deleted program %s\n", id)
		return nil
	})
}

func runProgramsComment(id, comment string, opts ...Option) error {
	return withSession(opts, access.CommentOnProgram, func(r *conn) error {
		if err := r.client.AddComment(id, comment); err != nil {
			return err
		}

		fmt.Fprintf(r.opts.Out, "✓ Comment added to program %s\n", id)
		return nil
	})
}
