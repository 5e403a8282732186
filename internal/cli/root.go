package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rinkside/rinkside/internal/cli/commands"
	"github.com/rinkside/rinkside/internal/config"
	"github.com/rinkside/rinkside/internal/logger"
)

var version = "dev" // Will be set during build

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "rinkside",
	Short: "rinkside - figure skating training from the terminal",
	Long: `rinkside CLI - Coaches and skaters, one terminal.

Coaches manage skaters, comment on programs and share educational material.
Skaters log training, track their minutes on the ice and manage program music.

Run without a subcommand to open the interactive shell.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logger.Init(level, cfg.Logging.Format, os.Stderr)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return commands.RunShell()
	},
}

func init() {
	commands.BindGlobalFlags(rootCmd)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests to stderr")

	// Add all subcommands
	rootCmd.AddCommand(commands.NewVersionCmd(version))
	rootCmd.AddCommand(commands.NewInitCmd())
	rootCmd.AddCommand(commands.NewSelectBackendCmd())
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewRegisterCmd())
	rootCmd.AddCommand(commands.NewShellCmd())
	rootCmd.AddCommand(commands.NewSkatersCmd())
	rootCmd.AddCommand(commands.NewCategoriesCmd())
	rootCmd.AddCommand(commands.NewCoachesCmd())
	rootCmd.AddCommand(commands.NewProgramsCmd())
	rootCmd.AddCommand(commands.NewTrainingCmd())
	rootCmd.AddCommand(commands.NewEducationCmd())
	rootCmd.AddCommand(commands.NewFilesCmd())
	rootCmd.AddCommand(commands.NewMusicCmd())
	rootCmd.AddCommand(commands.NewProfileCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
