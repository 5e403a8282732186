package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rinkside/rinkside/internal/access"
	"github.com/rinkside/rinkside/internal/cli/client"
)

// NewMusicCmd creates the music command group
func NewMusicCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "music",
		Short: "Program music (skater)",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "ls <program-id>",
			Aliases: []string{"list"},
			Short:   "List a program's music",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMusicList(args[0])
			},
		},
		&cobra.Command{
			Use:   "upload <program-id> <path>",
			Short: "Upload music to a program",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMusicUpload(args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "play <program-id> [file-id]",
			Short: "Open a program's music in the default player",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				var fileID string
				if len(args) > 1 {
					fileID = args[1]
				}
				return runMusicPlay(args[0], fileID)
			},
		},
	)

	return cmd
}

func runMusicList(programID string, opts ...Option) error {
	return withSession(opts, access.ViewPrograms, func(r *conn) error {
		files, err := r.client.ListMusic(programID)
		if err != nil {
			return err
		}

		if len(files) == 0 {
			fmt.Fprintln(r.opts.Out, "No music uploaded.")
			return nil
		}

		w := tabwriter.NewWriter(r.opts.Out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tFILE\tTYPE\tSIZE\tUPLOADED")
		fmt.Fprintln(w, "──\t────\t────\t────\t────────")
		for _, f := range files {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", f.ID, f.FileName, f.ContentType, f.FileSize, formatDate(f.UploadedAt))
		}
		return w.Flush()
	})
}

func runMusicUpload(programID, path string, opts ...Option) error {
	return withSession(opts, access.UploadMusic, func(r *conn) error {
		f, err := r.client.UploadMusic(programID, path)
		if err != nil {
			return err
		}

		fmt.Fprintf(r.opts.Out, "✓ Uploaded %s (%s, %d bytes) as %s\n", f.FileName, f.ContentType, f.FileSize, f.ID)
		return nil
	})
}

func runMusicPlay(programID, fileID string, opts ...Option) error {
	return withSession(opts, access.PlayMusic, func(r *conn) error {
		files, err := r.client.ListMusic(programID)
		if err != nil {
			return err
		}

		track, err := pickTrack(files, fileID)
		if err != nil {
			return err
		}

		target, err := r.client.ResolveURL(track.FileURL)
		if err != nil {
			return err
		}

		fmt.Fprintf(r.opts.Out, "Playing %s\n", track.FileName)
		fmt.Fprintf(r.opts.Out, "URL: %s\n", target)

		if err := r.opts.OpenURL(target); err != nil {
			return fmt.Errorf("failed to open player: %w\nPlease visit: %s", err, target)
		}
		return nil
	})
}

// pickTrack returns the file with fileID, or the first file when fileID is empty
func pickTrack(files []client.File, fileID string) (*client.File, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no music uploaded for this program")
	}
	if fileID == "" {
		return &files[0], nil
	}
	for i := range files {
		if files[i].ID == fileID {
			return &files[i], nil
		}
	}
	return nil, fmt.Errorf("music file '%s' not found", fileID)
}
