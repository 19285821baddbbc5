package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/brewlog/brewlog-terminal/internal/cli"
	"github.com/brewlog/brewlog-terminal/pkg/files"
	"github.com/brewlog/brewlog-terminal/pkg/models"
)

var (
	initDriver string
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new brew journal",
		Long: `Creates the .brewlog folder structure in the current directory.

Examples:
  # Journal stored as one YAML file per brew
  brewlog init

  # Journal stored in a SQLite database
  brewlog init --driver sqlite`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}

	cmd.Flags().StringVar(&initDriver, "driver", models.DriverFiles, "Storage backend (files or sqlite)")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	root := cli.JournalDir()

	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to determine journal directory: %w", err)
	}
	cli.PrintInfo("Initializing brew journal in %s...", abs)

	if err := files.InitJournalStructure(root); err != nil {
		return fmt.Errorf("failed to initialize journal structure: %w", err)
	}

	if initDriver != models.DriverFiles {
		settings, err := files.ReadSettings(root)
		if err != nil {
			return err
		}
		settings.Storage.Driver = initDriver
		if err := files.WriteSettings(root, settings); err != nil {
			return err
		}
	}

	cli.PrintSuccess("Created %s folder structure", root)
	cli.PrintInfo("Run 'brewlog' to start the interactive TUI, or 'brewlog new' to log a brew.")
	return nil
}
