package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/brewlog/brewlog-terminal/internal/cli"
	"github.com/brewlog/brewlog-terminal/pkg/display"
	"github.com/brewlog/brewlog-terminal/pkg/draft"
	"github.com/brewlog/brewlog-terminal/pkg/journal"
)

var (
	editFlags draftFlags
)

// NewEditCommand creates the edit command
func NewEditCommand() *cobra.Command {
	editFlags = draftFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a logged brew",
		Long: `Change fields or recipe steps of a logged brew.

Only the flags you give are changed. The recipe is loaded from the
stored brew, so --step and --pours work on its existing steps.

Examples:
  # Fix the rating
  brewlog edit 3f2a --rating 5

  # Add a pour and set its water
  brewlog edit 3f2a --pours 4 --step 4=2:30,40`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := editFlags.validate(cmd); err != nil {
				return err
			}
			return requireJournal(cmd, args)
		},
		RunE: runEdit,
	}

	editFlags.register(cmd)

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	changed := false
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		changed = changed || f.Changed
	})
	if !changed {
		return fmt.Errorf("nothing to change: give at least one field flag")
	}

	return withStore(cmd, func(ctx context.Context, cc *cli.CommandContext, store journal.Store) error {
		stored, err := resolveLog(ctx, store, args[0])
		if err != nil {
			return err
		}

		d := draft.FromLog(stored, cc.DraftOptions())
		if err := editFlags.apply(cmd, d); err != nil {
			return err
		}

		l, err := d.Build(now())
		if err != nil {
			return err
		}
		if err := store.Update(ctx, l); err != nil {
			return fmt.Errorf("failed to update brew: %w", err)
		}
		cc.Logger.Debug("brew updated", "id", l.ID)

		format := outputFormat(cmd)
		if format != string(cli.FormatText) {
			return cli.OutputResults(cmd.OutOrStdout(), format, l)
		}
		cli.PrintSuccess("Updated brew %s", shortID(l.ID))
		if !cli.Quiet() {
			fmt.Fprint(cmd.OutOrStdout(), display.Summary(l, cc.LoadSettingsWithDefault().Display.WrapWidth))
		}
		return nil
	})
}
