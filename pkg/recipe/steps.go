// Package recipe maintains the ordered pour steps of a brew: a fixed bloom
// step followed by numbered pours, with a running total of water kept
// consistent after every edit.
package recipe

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	BloomPhase       = "Bloom"
	BloomStartTime   = "0:00"
	DefaultPourCount = 3
)

// PourStep is one row of the recipe table. TotalWeight is derived and is
// rewritten by every mutation of the list it belongs to.
type PourStep struct {
	Phase       string  `yaml:"phase" json:"phase"`
	Time        string  `yaml:"time" json:"time"`
	WaterAdded  float64 `yaml:"water_added" json:"water_added"`
	TotalWeight float64 `yaml:"total_weight" json:"total_weight"`
}

// Steps is the ordered recipe: index 0 is the bloom, 1..N the pours.
type Steps []PourStep

// PourPhase returns the label for the pour at position i (1-based).
func PourPhase(i int) string {
	return fmt.Sprintf("Pour %d", i)
}

// Initialize returns the canonical starting list for pourCount pours.
func Initialize(pourCount int) Steps {
	if pourCount < 1 {
		pourCount = 1
	}
	steps := make(Steps, 0, pourCount+1)
	steps = append(steps, PourStep{Phase: BloomPhase, Time: BloomStartTime})
	for i := 1; i <= pourCount; i++ {
		steps = append(steps, PourStep{Phase: PourPhase(i)})
	}
	return steps
}

// Recompute rewrites TotalWeight for every step in a single pass.
func Recompute(steps Steps) {
	var running float64
	for i := range steps {
		running += steps[i].WaterAdded
		steps[i].TotalWeight = running
	}
}

// Clone returns an independent copy. A nil list stays nil.
func (s Steps) Clone() Steps {
	if s == nil {
		return nil
	}
	out := make(Steps, len(s))
	copy(out, s)
	return out
}

// PourCount is the number of steps after the bloom.
func (s Steps) PourCount() int {
	if len(s) == 0 {
		return 0
	}
	return len(s) - 1
}

// Total is the final running total, 0 for an empty list.
func (s Steps) Total() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].TotalWeight
}

var (
	decimalText = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

	// a comma is a decimal separator only when at most two digits follow,
	// so "1,000" stays ambiguous and is rejected
	commaDecimalText = regexp.MustCompile(`^[+-]?\d*,\d{1,2}$`)
)

// ParseDecimal parses a plain decimal number typed by the user, accepting a
// decimal comma. Exponents, hex floats, NaN and Inf are rejected.
func ParseDecimal(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if commaDecimalText.MatchString(text) {
		text = strings.Replace(text, ",", ".", 1)
	}
	if !decimalText.MatchString(text) {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseAmount parses a water amount typed by the user. Anything that is not
// a finite decimal number yields 0.
func ParseAmount(text string) float64 {
	v, _ := ParseDecimal(text)
	return v
}

// FormatWater renders an added amount, dropping a trailing ".0".
func FormatWater(v float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(v, 'f', -1, 64), ".0")
}

// FormatTotal renders a running total rounded to a whole unit.
func FormatTotal(v float64) string {
	r := math.Round(v)
	if r == 0 {
		// avoid rendering "-0"
		r = 0
	}
	return strconv.FormatFloat(r, 'f', 0, 64)
}
