package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/brewlog/brewlog-terminal/internal/cli"
	"github.com/brewlog/brewlog-terminal/pkg/calculator"
	"github.com/brewlog/brewlog-terminal/pkg/display"
	"github.com/brewlog/brewlog-terminal/pkg/journal"
	"github.com/brewlog/brewlog-terminal/pkg/models"
)

// ListResult represents the output structure for list command
type ListResult struct {
	Items []ListItem `json:"items" yaml:"items"`
	Count int        `json:"count" yaml:"count"`
}

// ListItem represents a single brew in the list
type ListItem struct {
	ID       string  `json:"id" yaml:"id"`
	BrewedAt string  `json:"brewed_at" yaml:"brewed_at"`
	Origin   string  `json:"origin" yaml:"origin"`
	Method   string  `json:"method" yaml:"method"`
	Ratio    float64 `json:"ratio" yaml:"ratio"`
	Rating   int     `json:"rating" yaml:"rating"`
	Pours    int     `json:"pours" yaml:"pours"`
}

var (
	listMinRating int
	listMethod    string
	listSearch    string
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logged brews",
		Long: `List logged brews, newest first.

Examples:
  # List every brew
  brewlog list

  # Only brews rated 4 or better made with a Chemex
  brewlog list --min-rating 4 --method chemex

  # Brews whose origin mentions "ethiopia"
  brewlog list --search ethiopia

  # Output as JSON
  brewlog list -o json`,
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateRating(listMinRating); err != nil {
				return err
			}
			return requireJournal(cmd, args)
		},
		RunE: runList,
	}

	cmd.Flags().IntVar(&listMinRating, "min-rating", 0, "Only show brews rated at least this (0-5)")
	cmd.Flags().StringVar(&listMethod, "method", "", "Only show brews made with this method")
	cmd.Flags().StringVar(&listSearch, "search", "", "Only show brews whose origin contains this text")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, cc *cli.CommandContext, store journal.Store) error {
		logs, err := store.List(ctx, journal.Query{
			MinRating: listMinRating,
			Method:    listMethod,
			Origin:    listSearch,
		})
		if err != nil {
			return err
		}

		result := ListResult{Items: make([]ListItem, 0, len(logs)), Count: len(logs)}
		for _, l := range logs {
			result.Items = append(result.Items, toListItem(l))
		}

		format := outputFormat(cmd)
		if format != string(cli.FormatText) {
			return cli.OutputResults(cmd.OutOrStdout(), format, result)
		}

		if len(logs) == 0 {
			cli.PrintInfo("No brews found")
			return nil
		}

		table := cli.NewTableFormatter(cmd.OutOrStdout())
		table.Header("ID", "DATE", "ORIGIN", "METHOD", "RATIO", "RATING", "POURS")
		for _, item := range result.Items {
			table.Row(
				shortID(item.ID),
				item.BrewedAt,
				cli.TruncateString(item.Origin, 28),
				item.Method,
				calculator.FormatRatio(item.Ratio),
				display.Stars(item.Rating),
				strconv.Itoa(item.Pours),
			)
		}
		table.Flush()

		if !cli.Quiet() {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d brew(s)\n", len(logs))
		}
		return nil
	})
}

func toListItem(l *models.Log) ListItem {
	return ListItem{
		ID:       l.ID,
		BrewedAt: l.BrewedAt.Local().Format("2006-01-02 15:04"),
		Origin:   l.Origin,
		Method:   l.Method,
		Ratio:    l.Ratio,
		Rating:   l.Rating,
		Pours:    l.RecipeSteps.PourCount(),
	}
}
