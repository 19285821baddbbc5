package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/brewlog/brewlog-terminal/internal/cli"
	"github.com/brewlog/brewlog-terminal/pkg/display"
	"github.com/brewlog/brewlog-terminal/pkg/draft"
	"github.com/brewlog/brewlog-terminal/pkg/journal"
)

var (
	newFlags     draftFlags
	newReuseLast bool
)

// now is swapped in tests
var now = time.Now

// NewNewCommand creates the new command
func NewNewCommand() *cobra.Command {
	newFlags = draftFlags{}
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Log a new brew",
		Long: `Log a new brew from flags.

Every field has a flag; fields left out keep their defaults
(V60, 15g coffee, 250g water, a bloom plus three pours).

Recipe steps are numbered from 0 (the bloom). Each --step sets the
time and/or water of one step; --pours resizes the recipe first.

Examples:
  # Minimal brew
  brewlog new --origin "Ethiopia Guji"

  # Full recipe
  brewlog new --origin Kenya --coffee 18 --water 300 --pours 2 \
    --step 0=0:00,50 --step 1=0:45,125 --step 2=1:30,125 --rating 4

  # Same beans as last time
  brewlog new --reuse-last --notes "ground finer"`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := newFlags.validate(cmd); err != nil {
				return err
			}
			return requireJournal(cmd, args)
		},
		RunE: runNew,
	}

	newFlags.register(cmd)
	cmd.Flags().BoolVar(&newReuseLast, "reuse-last", false, "Copy origin, process and roast from the latest brew")

	return cmd
}

func runNew(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, cc *cli.CommandContext, store journal.Store) error {
		d := draft.New(cc.DraftOptions())

		if newReuseLast {
			last, err := store.Latest(ctx)
			switch {
			case errors.Is(err, journal.ErrNotFound):
				cli.PrintWarning("No previous brew to reuse")
			case err != nil:
				return err
			default:
				d.ReuseFrom(last)
				cli.PrintInfo("Reusing beans from %s (%s)", last.Origin, shortID(last.ID))
			}
		}

		if err := newFlags.apply(cmd, d); err != nil {
			return err
		}

		l, err := d.Build(now())
		if err != nil {
			return err
		}
		if err := store.Save(ctx, l); err != nil {
			return fmt.Errorf("failed to save brew: %w", err)
		}
		cc.Logger.Debug("brew logged", "id", l.ID, "pours", l.RecipeSteps.PourCount())

		format := outputFormat(cmd)
		if format != string(cli.FormatText) {
			return cli.OutputResults(cmd.OutOrStdout(), format, l)
		}
		cli.PrintSuccess("Logged brew %s", shortID(l.ID))
		if !cli.Quiet() {
			fmt.Fprint(cmd.OutOrStdout(), display.Summary(l, cc.LoadSettingsWithDefault().Display.WrapWidth))
		}
		return nil
	})
}
