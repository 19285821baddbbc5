package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brewlog/brewlog-terminal/internal/cli"
	"github.com/brewlog/brewlog-terminal/pkg/journal"
	"github.com/brewlog/brewlog-terminal/pkg/models"
)

// ExportResult is the document written by export
type ExportResult struct {
	Count int           `json:"count" yaml:"count"`
	Logs  []*models.Log `json:"logs" yaml:"logs"`
}

var (
	exportToFile string
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every logged brew to stdout or a file",
		Long: `Export the whole journal, recipes included, as JSON or YAML.

By default the export is YAML written to stdout.

Examples:
  # Export to stdout
  brewlog export

  # Export as JSON to a file
  brewlog export -o json --file brews.json`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if exportToFile != "" {
				if err := cli.ValidateFilePath(exportToFile); err != nil {
					return err
				}
			}
			return requireJournal(cmd, args)
		},
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportToFile, "file", "f", "", "Export to file instead of stdout")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, cc *cli.CommandContext, store journal.Store) error {
		logs, err := store.List(ctx, journal.Query{})
		if err != nil {
			return err
		}

		format := outputFormat(cmd)
		if format == string(cli.FormatText) {
			format = string(cli.FormatYAML)
		}

		var buf bytes.Buffer
		if err := cli.OutputResults(&buf, format, ExportResult{Count: len(logs), Logs: logs}); err != nil {
			return err
		}

		if exportToFile == "" {
			_, err := cmd.OutOrStdout().Write(buf.Bytes())
			return err
		}

		if err := os.WriteFile(exportToFile, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		cli.PrintSuccess("Exported %d brew(s) to %s", len(logs), exportToFile)
		return nil
	})
}
