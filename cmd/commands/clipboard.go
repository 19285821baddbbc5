package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/brewlog/brewlog-terminal/internal/cli"
	"github.com/brewlog/brewlog-terminal/pkg/display"
	"github.com/brewlog/brewlog-terminal/pkg/journal"
)

var (
	clipboardRecipeOnly bool
)

// writeClipboard is swapped in tests
var writeClipboard = clipboard.WriteAll

// NewClipboardCommand creates the clipboard command
func NewClipboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clipboard <id>",
		Short: "Copy a brew summary to the clipboard",
		Long: `Copy the summary of a logged brew to the system clipboard,
ready to paste into a note or message.

Examples:
  # Copy the full summary
  brewlog clipboard 3f2a

  # Copy just the recipe table
  brewlog clipboard 3f2a --recipe`,
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"clip", "copy"},
		PreRunE: requireJournal,
		RunE:    runClipboard,
	}

	cmd.Flags().BoolVar(&clipboardRecipeOnly, "recipe", false, "Copy only the recipe steps")

	return cmd
}

func runClipboard(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, cc *cli.CommandContext, store journal.Store) error {
		l, err := resolveLog(ctx, store, args[0])
		if err != nil {
			return err
		}

		var content string
		if clipboardRecipeOnly {
			content = display.RecipeTable(l.RecipeSteps)
		} else {
			content = display.Summary(l, cc.LoadSettingsWithDefault().Display.WrapWidth)
		}

		if err := writeClipboard(content); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}

		cli.PrintSuccess("Brew '%s' copied to clipboard", l.Origin)

		lines := strings.Split(content, "\n")
		preview := lines[0]
		if len(lines) > 1 {
			preview += " ..."
		}
		cli.PrintInfo("Preview: %s", cli.TruncateString(preview, 80))
		return nil
	})
}
