package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rinkside/rinkside/internal/access"
)

// NewFilesCmd creates the files command group for educational files
func NewFilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Manage educational files (coach)",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "upload <material-id> <path>",
			Short: "Attach a file to a material",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runFilesUpload(args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "delete <file-id>",
			Short: "Delete an educational file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runFilesDelete(args[0])
			},
		},
	)

	return cmd
}

func runFilesUpload(materialID, path string, opts ...Option) error {
	return withSession(opts, access.ManageEducation, func(r *conn) error {
		f, err := r.client.UploadEducationalFile(materialID, path)
		if err != nil {
			return err
		}

		fmt.Fprintf(r.opts.Out, "✓ Uploaded %s (%s, %d bytes) as %s\n", f.FileName, f.ContentType, f.FileSize, f.ID)
		return nil
	})
}

func runFilesDelete(fileID string, opts ...Option) error {
	return withSession(opts, access.ManageEducation, func(r *conn) error {
		if err := r.client.DeleteEducationalFile(fileID); err != nil {
			return err
		}

		fmt.Fprintf(r.opts.Out, "✓ Deleted file %s\n", fileID)
		return nil
	})
}
