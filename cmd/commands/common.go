package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brewlog/brewlog-terminal/internal/cli"
	"github.com/brewlog/brewlog-terminal/pkg/journal"
)

// requireJournal is the PreRunE shared by every command that reads or
// writes logs.
func requireJournal(cmd *cobra.Command, args []string) error {
	cc, err := cli.NewCommandContext(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := cc.ValidateJournal(); err != nil {
		return err
	}
	return validateOutput(cmd)
}

func validateOutput(cmd *cobra.Command) error {
	format := outputFormat(cmd)
	if err := cli.ValidateOutputFormat(format); err != nil {
		return err
	}
	return nil
}

// outputFormat reads the persistent -o flag, defaulting to text when the
// command runs without a root.
func outputFormat(cmd *cobra.Command) string {
	format, err := cmd.Flags().GetString("output")
	if err != nil || format == "" {
		return string(cli.FormatText)
	}
	return strings.ToLower(format)
}

// withStore opens the configured journal store for the duration of fn.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, cc *cli.CommandContext, store journal.Store) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cc, err := cli.NewCommandContext(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	store, err := cc.OpenStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			cc.Logger.Warn("closing journal", "err", err)
		}
	}()

	return fn(ctx, cc, store)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
