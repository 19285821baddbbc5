package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brewlog/brewlog-terminal/internal/cli"
	"github.com/brewlog/brewlog-terminal/pkg/display"
	"github.com/brewlog/brewlog-terminal/pkg/journal"
	"github.com/brewlog/brewlog-terminal/pkg/models"
)

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Display a logged brew",
		Long: `Display the details and recipe of a logged brew.

The brew can be given by its full id or any unique prefix of it,
as printed by 'brewlog list'.

Examples:
  # Show a brew
  brewlog show 3f2a9c1e

  # Output as YAML
  brewlog show 3f2a -o yaml`,
		Args:    cobra.ExactArgs(1),
		PreRunE: requireJournal,
		RunE:    runShow,
	}

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, cc *cli.CommandContext, store journal.Store) error {
		l, err := resolveLog(ctx, store, args[0])
		if err != nil {
			return err
		}

		format := outputFormat(cmd)
		if format != string(cli.FormatText) {
			return cli.OutputResults(cmd.OutOrStdout(), format, l)
		}

		width := cc.LoadSettingsWithDefault().Display.WrapWidth
		fmt.Fprint(cmd.OutOrStdout(), display.Summary(l, width))
		return nil
	})
}

// resolveLog finds a log by id or unique prefix with a helpful error.
func resolveLog(ctx context.Context, store journal.Store, ref string) (*models.Log, error) {
	l, err := journal.Resolve(ctx, store, ref)
	switch {
	case errors.Is(err, journal.ErrNotFound):
		return nil, fmt.Errorf("brew '%s' not found. Run 'brewlog list' to see logged brews", ref)
	case errors.Is(err, journal.ErrAmbiguousID):
		return nil, fmt.Errorf("brew id '%s' matches more than one log, use more characters", ref)
	case err != nil:
		return nil, err
	}
	return l, nil
}
