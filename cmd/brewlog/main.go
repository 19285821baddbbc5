package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/brewlog/brewlog-terminal/cmd/commands"
	"github.com/brewlog/brewlog-terminal/internal/cli"
	"github.com/brewlog/brewlog-terminal/internal/logging"
	"github.com/brewlog/brewlog-terminal/pkg/files"
	"github.com/brewlog/brewlog-terminal/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

// Global flags
var (
	outputFormat string
	quiet        bool
	noColor      bool
	skipConfirm  bool
	journalDir   string
)

var rootCmd = &cobra.Command{
	Use:   "brewlog",
	Short: "Terminal journal for pour-over coffee brews",
	Long: `brewlog keeps a journal of your coffee brews: beans, dose, grind, taste
scores and the step-by-step pour recipe. Logs are stored as plain YAML
files (or a SQLite database) in a .brewlog folder, and the TUI lets you
browse, log and edit brews interactively.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.SetGlobalFlags(quiet, noColor, skipConfirm)
		cli.SetJournalDir(journalDir)
	},
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	cc, err := cli.NewCommandContext(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := cc.ValidateJournal(); err != nil {
		return fmt.Errorf("%w\nPlease run 'brewlog init' first to create a journal", err)
	}
	settings, err := cc.LoadSettings()
	if err != nil {
		return err
	}

	// the alt screen owns the terminal, so diagnostics go to a file
	logger, closer, err := logging.NewFile(settings.Log, filepath.Join(cc.JournalPath, files.LogFile))
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx := context.Background()
	store, err := cli.OpenStore(ctx, cc.JournalPath, settings, logger)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer store.Close()

	app := tui.NewApp(ctx, store, settings, logger)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format (text, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational messages")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable symbols and color in messages")
	rootCmd.PersistentFlags().BoolVarP(&skipConfirm, "yes", "y", false, "Answer yes to all confirmations")
	rootCmd.PersistentFlags().StringVar(&journalDir, "journal", "", "Journal directory (default ./.brewlog)")

	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(version))
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewNewCommand())
	rootCmd.AddCommand(commands.NewEditCommand())
	rootCmd.AddCommand(commands.NewDeleteCommand())
	rootCmd.AddCommand(commands.NewCalcCommand())
	rootCmd.AddCommand(commands.NewClipboardCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
