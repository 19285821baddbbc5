// Package display renders logs and recipes as plain text for the terminal,
// the clipboard and the TUI detail view.
package display

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/muesli/reflow/wordwrap"

	"github.com/brewlog/brewlog-terminal/pkg/calculator"
	"github.com/brewlog/brewlog-terminal/pkg/models"
	"github.com/brewlog/brewlog-terminal/pkg/recipe"
)

const (
	NoStepsText  = "No detailed steps recorded."
	DefaultWidth = 72
	DateLayout   = "Jan 2, 2006 15:04"
)

// StepRow is the printable form of one recipe step.
type StepRow struct {
	Phase string
	Time  string
	Water string
	Total string
}

// Row formats a step for display. A step without a time shows "-".
func Row(s recipe.PourStep) StepRow {
	t := strings.TrimSpace(s.Time)
	if t == "" {
		t = "-"
	}
	return StepRow{
		Phase: s.Phase,
		Time:  t,
		Water: recipe.FormatWater(s.WaterAdded),
		Total: recipe.FormatTotal(s.TotalWeight) + "g",
	}
}

// Rows formats every step in order.
func Rows(steps recipe.Steps) []StepRow {
	rows := make([]StepRow, len(steps))
	for i, s := range steps {
		rows[i] = Row(s)
	}
	return rows
}

// RecipeTable renders steps as aligned columns, or NoStepsText when there
// are none.
func RecipeTable(steps recipe.Steps) string {
	if len(steps) == 0 {
		return NoStepsText
	}
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tTIME\tWATER\tTOTAL")
	for _, r := range Rows(steps) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Phase, r.Time, r.Water, r.Total)
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

// Clock renders seconds as mm:ss.
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// TurbulenceLabel is the human form of a turbulence value.
func TurbulenceLabel(t models.Turbulence) string {
	switch t {
	case models.TurbulenceSwirl:
		return "Swirl"
	case models.TurbulenceStir:
		return "Stir"
	case models.TurbulenceSwirlAndStir:
		return "Swirl & Stir"
	default:
		return "None"
	}
}

// Stars renders a 0..5 rating.
func Stars(rating int) string {
	rating = max(0, min(rating, 5))
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// Summary renders the full detail text of a log. Notes are wrapped at width;
// a width below 20 falls back to DefaultWidth.
func Summary(l *models.Log, width int) string {
	if width < 20 {
		width = DefaultWidth
	}
	var b strings.Builder

	b.WriteString(l.Origin + "\n")
	if sub := joinNonEmpty(" • ", l.Process, l.Roast); sub != "" {
		b.WriteString(sub + "\n")
	}
	if !l.BrewedAt.IsZero() {
		b.WriteString(l.BrewedAt.Local().Format(DateLayout) + "\n")
	}
	b.WriteString("\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%-12s %s\n", label+":", value)
	}
	field("Method", l.Method)
	field("Ratio", calculator.FormatRatio(l.Ratio))
	field("Coffee", recipe.FormatWater(l.Coffee)+"g")
	field("Water", recipe.FormatWater(l.Water)+"g")
	field("Grind", l.GrindSize)
	if l.WaterTemperature != 0 {
		field("Temperature", recipe.FormatWater(l.WaterTemperature)+"°C")
	}
	field("Turbulence", TurbulenceLabel(l.Turbulence))
	if l.BloomTime > 0 {
		field("Bloom", Clock(l.BloomTime))
	}
	if l.TotalTime > 0 {
		field("Total time", Clock(l.TotalTime))
	}

	b.WriteString("\nTaste\n")
	field("Acidity", l.Acidity.String())
	field("Sweetness", l.Sweetness.String())
	field("Body", l.Body.String())
	field("Aftertaste", l.Aftertaste.String())
	field("Bitterness", l.Bitterness.String())
	field("Rating", fmt.Sprintf("%d/5", l.Rating))

	b.WriteString("\nRecipe\n")
	b.WriteString(RecipeTable(l.RecipeSteps) + "\n")

	if notes := strings.TrimSpace(l.Notes); notes != "" {
		b.WriteString("\nNotes\n")
		b.WriteString(wordwrap.String(notes, width) + "\n")
	}
	return b.String()
}

// Line is the one-line form used in lists.
func Line(l *models.Log) string {
	return fmt.Sprintf("%s  %s  %s  %s",
		l.BrewedAt.Local().Format("2006-01-02"),
		l.Origin,
		l.Method,
		calculator.FormatRatio(l.Ratio))
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
