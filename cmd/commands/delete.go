package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brewlog/brewlog-terminal/internal/cli"
	"github.com/brewlog/brewlog-terminal/pkg/journal"
)

var (
	deleteForce bool
)

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a logged brew",
		Long: `Permanently delete a logged brew.

This action cannot be undone.

Examples:
  # Delete a brew (with confirmation)
  brewlog delete 3f2a

  # Force delete without confirmation
  brewlog delete 3f2a --force`,
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		PreRunE: requireJournal,
		RunE:    runDelete,
	}

	cmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Force deletion without confirmation")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, cc *cli.CommandContext, store journal.Store) error {
		l, err := resolveLog(ctx, store, args[0])
		if err != nil {
			return err
		}

		if !deleteForce {
			prompt := fmt.Sprintf("Permanently delete brew '%s' (%s, %s)? This cannot be undone.",
				shortID(l.ID), l.Origin, l.BrewedAt.Local().Format("2006-01-02"))
			confirmed, err := cli.Confirm(prompt, false)
			if err != nil {
				return err
			}
			if !confirmed {
				cli.PrintInfo("Deletion cancelled")
				return nil
			}
		}

		if err := store.Delete(ctx, l.ID); err != nil {
			return fmt.Errorf("failed to delete brew: %w", err)
		}
		cc.Logger.Debug("brew deleted", "id", l.ID)

		cli.PrintSuccess("Deleted brew %s", shortID(l.ID))
		return nil
	})
}
