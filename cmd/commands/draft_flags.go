package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brewlog/brewlog-terminal/internal/cli"
	"github.com/brewlog/brewlog-terminal/pkg/draft"
)

// draftFlags are the log fields shared by new and edit. Only flags the user
// actually set are applied, so edit leaves everything else untouched.
type draftFlags struct {
	origin     string
	process    string
	roast      string
	method     string
	coffee     string
	water      string
	grind      string
	temp       string
	turbulence string
	bloomTime  string
	totalTime  string
	rating     int
	notes      string
	pours      int
	steps      []string
	scores     map[draft.ScoreKind]*int
}

func (f *draftFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.origin, "origin", "", "Bean origin")
	flags.StringVar(&f.process, "process", "", "Processing method (washed, natural, ...)")
	flags.StringVar(&f.roast, "roast", "", "Roast level (Light, Medium, Dark)")
	flags.StringVar(&f.method, "method", "", "Brew method (V60, Chemex, ...)")
	flags.StringVar(&f.coffee, "coffee", "", "Coffee dose in grams")
	flags.StringVar(&f.water, "water", "", "Water in grams")
	flags.StringVar(&f.grind, "grind", "", "Grind size")
	flags.StringVar(&f.temp, "temp", "", "Water temperature in °C")
	flags.StringVar(&f.turbulence, "turbulence", "", "Agitation: none, swirl, stir, swirl_and_stir")
	flags.StringVar(&f.bloomTime, "bloom-time", "", "Bloom time (seconds or m:ss)")
	flags.StringVar(&f.totalTime, "total-time", "", "Total brew time (seconds or m:ss)")
	flags.IntVar(&f.rating, "rating", 0, "Overall rating (0-5)")
	flags.StringVar(&f.notes, "notes", "", "Tasting notes")
	flags.IntVar(&f.pours, "pours", 0, "Number of pours after the bloom")
	flags.StringArrayVar(&f.steps, "step", nil, "Set a recipe step as index=time,water (repeatable, 0 is the bloom)")

	f.scores = make(map[draft.ScoreKind]*int, len(draft.ScoreKinds))
	for _, k := range draft.ScoreKinds {
		v := new(int)
		f.scores[k] = v
		flags.IntVar(v, string(k), 0, fmt.Sprintf("%s score (1-5, 0 clears)", k))
	}
}

// validate checks flag values before anything is loaded or written.
func (f *draftFlags) validate(cmd *cobra.Command) error {
	changed := cmd.Flags().Changed
	if changed("roast") {
		roast, err := cli.ValidateRoast(f.roast)
		if err != nil {
			return err
		}
		f.roast = roast
	}
	if changed("rating") {
		if err := cli.ValidateRating(f.rating); err != nil {
			return err
		}
	}
	for _, k := range draft.ScoreKinds {
		if changed(string(k)) {
			if err := cli.ValidateScore(string(k), *f.scores[k]); err != nil {
				return err
			}
		}
	}
	if changed("pours") && f.pours < 1 {
		return fmt.Errorf("invalid pour count: %d (must be at least 1)", f.pours)
	}
	for _, s := range f.steps {
		if _, err := cli.ParseStepFlag(s); err != nil {
			return err
		}
	}
	return nil
}

// apply copies every changed flag onto d. The pour count is applied before
// the steps so step indexes refer to the resized recipe.
func (f *draftFlags) apply(cmd *cobra.Command, d *draft.Draft) error {
	changed := cmd.Flags().Changed

	if changed("pours") {
		d.SetPourCount(f.pours)
	}
	for _, s := range f.steps {
		step, err := cli.ParseStepFlag(s)
		if err != nil {
			return err
		}
		if n := len(d.Steps()); step.Index >= n {
			return fmt.Errorf("step %d is out of range (recipe has steps 0-%d)", step.Index, n-1)
		}
		if step.HasTime {
			d.SetStepTime(step.Index, step.Time)
		}
		if step.HasWater {
			d.SetStepWater(step.Index, step.Water)
		}
	}

	text := []struct {
		name string
		set  func(string)
		val  string
	}{
		{"origin", d.SetOrigin, f.origin},
		{"process", d.SetProcess, f.process},
		{"roast", d.SetRoast, f.roast},
		{"method", d.SetMethod, cli.NormalizeMethod(f.method)},
		{"coffee", d.SetCoffee, f.coffee},
		{"water", d.SetWater, f.water},
		{"grind", d.SetGrindSize, f.grind},
		{"temp", d.SetWaterTemperature, f.temp},
		{"turbulence", d.SetTurbulence, f.turbulence},
		{"bloom-time", d.SetBloomTime, f.bloomTime},
		{"total-time", d.SetTotalTime, f.totalTime},
		{"notes", d.SetNotes, f.notes},
	}
	for _, t := range text {
		if changed(t.name) {
			t.set(t.val)
		}
	}

	if changed("rating") {
		d.SetRating(f.rating)
	}
	for _, k := range draft.ScoreKinds {
		if changed(string(k)) {
			d.SetScore(k, *f.scores[k])
		}
	}
	return nil
}
