package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rinkside/rinkside/internal/access"
	"github.com/rinkside/rinkside/internal/analytics"
	"github.com/rinkside/rinkside/internal/cli/client"
)

// trainingInput is the flag form of a training; zero values mean "unset"
type trainingInput struct {
	date     string
	duration int
	kind     string
	elements []string
	notes    string
}

func bindTrainingFlags(cmd *cobra.Command) *trainingInput {
	p := &trainingInput{}
	cmd.Flags().StringVar(&p.date, "date", "", "Training date, YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&p.duration, "duration", 0, "Duration in minutes")
	cmd.Flags().StringVar(&p.kind, "type", "", "Training type: OnIce or OffIce")
	cmd.Flags().StringSliceVar(&p.elements, "elements", nil, "Element IDs, comma separated (see 'rinkside training elements')")
	cmd.Flags().StringVar(&p.notes, "notes", "", "Notes")
	return p
}

// apply overlays the set fields of in onto req
func (in trainingInput) apply(req *client.TrainingRequest) error {
	if in.date != "" {
		d, err := analytics.ParseDate(in.date)
		if err != nil {
			return err
		}
		req.Date = d
	}
	if in.duration != 0 {
		req.Duration = in.duration
	}
	if in.kind != "" {
		req.Type = in.kind
	}
	if in.elements != nil {
		req.Elements = in.elements
	}
	if in.notes != "" {
		req.Notes = in.notes
	}
	return nil
}

// NewTrainingCmd creates the training command group (skaters only)
func NewTrainingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "training",
		Short: "Log and review your training (skater)",
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Log a training",
		Example: `  $ rinkside training create --type OnIce --duration 45 --elements 1,3
  $ rinkside training create --type OffIce --date 2025-07-21 --duration 30 --elements 101 --notes "legs day"`,
	}
	createIn := bindTrainingFlags(create)
	create.RunE = func(cmd *cobra.Command, args []string) error {
		return runTrainingCreate(*createIn)
	}

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a training; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
	}
	updateIn := bindTrainingFlags(update)
	update.RunE = func(cmd *cobra.Command, args []string) error {
		return runTrainingUpdate(args[0], *updateIn)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "ls",
			Aliases: []string{"list"},
			Short:   "List trainings",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runTrainingList()
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show a training with element names",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runTrainingShow(args[0])
			},
		},
		create,
		update,
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a training",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runTrainingDelete(args[0])
			},
		},
		&cobra.Command{
			Use:       "elements <OnIce|OffIce>",
			Short:     "List the elements for a training type",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{client.TrainingOnIce, client.TrainingOffIce},
			RunE: func(cmd *cobra.Command, args []string) error {
				return runTrainingElements(args[0])
			},
		},
		&cobra.Command{
			Use:   "analytics",
			Short: "Chart training minutes per day",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runTrainingAnalytics()
			},
		},
	)

	return cmd
}

func formatDate(raw string) string {
	t, err := analytics.ParseDate(raw)
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02")
}

func runTrainingList(opts ...Option) error {
	return withSession(opts, access.LogTraining, func(r *conn) error {
		trainings, err := r.client.ListTrainings()
		if err != nil {
			return err
		}

		if len(trainings) == 0 {
			fmt.Fprintln(r.opts.Out, "No trainings logged yet.")
			fmt.Fprintln(r.opts.Out, "\nLog one with: rinkside training create --type OnIce --duration 45 --elements 1")
			return nil
		}

		w := tabwriter.NewWriter(r.opts.Out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tTYPE\tDURATION\tELEMENTS")
		fmt.Fprintln(w, "──\t────\t────\t────────\t────────")
		for _, t := range trainings {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d min\t%s\n", t.ID, formatDate(t.Date), t.Type, t.Duration, t.Elements)
		}
		return w.Flush()
	})
}

func runTrainingShow(id string, opts ...Option) error {
	return withSession(opts, access.LogTraining, func(r *conn) error {
		t, err := r.client.GetTraining(id)
		if err != nil {
			return err
		}

		elements, err := r.client.ListTrainingElements(t.Type)
		if err != nil {
			return fmt.Errorf("failed to load elements: %w", err)
		}

		out := r.opts.Out
		fmt.Fprintf(out, "ID:       %s\n", t.ID)
		fmt.Fprintf(out, "Date:     %s\n", formatDate(t.Date))
		fmt.Fprintf(out, "Type:     %s\n", t.Type)
		fmt.Fprintf(out, "Duration: %d min\n", t.Duration)
		fmt.Fprintf(out, "Elements: %s\n", strings.Join(client.ElementNames(t.ElementIDs(), elements), ", "))
		if t.Notes != "" {
			fmt.Fprintf(out, "Notes:    %s\n", t.Notes)
		}
		return nil
	})
}

func runTrainingCreate(in trainingInput, opts ...Option) error {
	req := client.TrainingRequest{Date: time.Now()}
	if err := in.apply(&req); err != nil {
		return err
	}

	return withSession(opts, access.LogTraining, func(r *conn) error {
		if err := r.client.CreateTraining(req); err != nil {
			return err
		}

		fmt.Fprintf(r.opts.Out, "✓ Logged %d min %s training on %s\n", req.Duration, req.Type, req.Date.Format("2006-01-02"))
		return nil
	})
}

func runTrainingUpdate(id string, in trainingInput, opts ...Option) error {
	return withSession(opts, access.LogTraining, func(r *conn) error {
		current, err := r.client.GetTraining(id)
		if err != nil {
			return err
		}

		req := client.TrainingRequest{
			Duration: current.Duration,
			Type:     current.Type,
			Elements: current.ElementIDs(),
			Notes:    current.Notes,
		}
		if d, err := analytics.ParseDate(current.Date); err == nil {
			req.Date = d
		}
		if err := in.apply(&req); err != nil {
			return err
		}

		if err := r.client.UpdateTraining(id, req); err != nil {
			return err
		}

		fmt.Fprintf(r.opts.Out, "✓ Updated training %s\n", id)
		return nil
	})
}

func runTrainingDelete(id string, opts ...Option) error {
	return withSession(opts, access.LogTraining, func(r *conn) error {
		if err := r.client.DeleteTraining(id); err != nil {
			return err
		}

		fmt.Fprintf(r.opts.Out, "✓ Deleted training %s\n", id)
		return nil
	})
}

func runTrainingElements(trainingType string, opts ...Option) error {
	return withSession(opts, access.LogTraining, func(r *conn) error {
		elements, err := r.client.ListTrainingElements(trainingType)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(r.opts.Out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME")
		fmt.Fprintln(w, "──\t────")
		for _, e := range elements {
			fmt.Fprintf(w, "%s\t%s\n", e.ID, e.Name)
		}
		return w.Flush()
	})
}

func runTrainingAnalytics(opts ...Option) error {
	return withSession(opts, access.LogTraining, func(r *conn) error {
		trainings, err := r.client.ListTrainings()
		if err != nil {
			return err
		}

		analytics.RenderChart(r.opts.Out, analytics.DailyDurations(trainings))
		return nil
	})
}
