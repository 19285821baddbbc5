package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brewlog/brewlog-terminal/internal/cli"
	"github.com/brewlog/brewlog-terminal/pkg/calculator"
)

// CalcResult represents the output structure for calc command
type CalcResult struct {
	Coffee string `json:"coffee" yaml:"coffee"`
	Water  string `json:"water" yaml:"water"`
	Ratio  string `json:"ratio" yaml:"ratio"`
}

var (
	calcWater  string
	calcCoffee string
	calcRatio  string
)

// NewCalcCommand creates the calc command
func NewCalcCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Convert between coffee dose, water and ratio",
		Long: `Work out a dose or water amount from a brew ratio.

The ratio defaults to 1:16. Give the water to get the dose, or the
dose to get the water. Flags are applied as ratio, then coffee, then
water, so the last one given wins.

Examples:
  # How much coffee for 320g of water?
  brewlog calc --water 320

  # How much water for 18g at 1:15?
  brewlog calc --coffee 18 --ratio 15`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if calcWater == "" && calcCoffee == "" {
				return fmt.Errorf("give --water or --coffee")
			}
			return validateOutput(cmd)
		},
		RunE: runCalc,
	}

	cmd.Flags().StringVar(&calcWater, "water", "", "Water in grams")
	cmd.Flags().StringVar(&calcCoffee, "coffee", "", "Coffee dose in grams")
	cmd.Flags().StringVar(&calcRatio, "ratio", calculator.DefaultRatio, "Grams of water per gram of coffee")

	return cmd
}

func runCalc(cmd *cobra.Command, args []string) error {
	c := calculator.New()
	c.SetRatio(calcRatio)
	if calcCoffee != "" {
		c.SetCoffee(calcCoffee)
	}
	if calcWater != "" {
		c.SetWater(calcWater)
	}

	result := CalcResult{Coffee: c.Coffee(), Water: c.Water(), Ratio: c.Ratio()}

	format := outputFormat(cmd)
	if format != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), format, result)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Coffee: %sg\n", result.Coffee)
	fmt.Fprintf(out, "Water:  %sg\n", result.Water)
	fmt.Fprintf(out, "Ratio:  1:%s\n", result.Ratio)
	return nil
}
