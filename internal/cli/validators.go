package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/brewlog/brewlog-terminal/pkg/models"
)

// ValidateOutputFormat validates an -o/--output value
func ValidateOutputFormat(format string) error {
	switch OutputFormat(strings.ToLower(format)) {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ValidateRating validates an overall rating
func ValidateRating(n int) error {
	if n < 0 || n > 5 {
		return fmt.Errorf("invalid rating: %d (must be between 0 and 5)", n)
	}
	return nil
}

// ValidateScore validates a taste score; 0 leaves the score unset
func ValidateScore(name string, n int) error {
	if n != 0 && (n < models.MinScore || n > models.MaxScore) {
		return fmt.Errorf("invalid %s score: %d (must be between %d and %d, or 0 to clear)", name, n, models.MinScore, models.MaxScore)
	}
	return nil
}

// ValidateRoast validates a roast level, accepting any case
func ValidateRoast(roast string) (string, error) {
	for _, r := range models.Roasts {
		if strings.EqualFold(r, roast) {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid roast: %s (must be one of: %s)", roast, strings.Join(models.Roasts, ", "))
}

// NormalizeMethod returns the canonical spelling of a known brew method, or
// the trimmed input when the method is not in the list
func NormalizeMethod(method string) string {
	method = strings.TrimSpace(method)
	for _, m := range models.Methods {
		if strings.EqualFold(m, method) {
			return m
		}
	}
	return method
}

// StepFlag is one parsed --step value
type StepFlag struct {
	Index int
	Time  string
	Water string
	// HasTime and HasWater tell "set to empty" apart from "not given"
	HasTime  bool
	HasWater bool
}

// ParseStepFlag parses "index=time,water". Either part may be omitted:
// "2=1:15,60", "2=,60", "2=1:15".
func ParseStepFlag(s string) (StepFlag, error) {
	idx, rest, ok := strings.Cut(s, "=")
	if !ok {
		return StepFlag{}, fmt.Errorf("invalid step %q (expected index=time,water)", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(idx))
	if err != nil || n < 0 {
		return StepFlag{}, fmt.Errorf("invalid step index %q (expected a number >= 0)", idx)
	}

	step := StepFlag{Index: n}
	timePart, waterPart, hasComma := strings.Cut(rest, ",")
	if t := strings.TrimSpace(timePart); t != "" {
		step.Time, step.HasTime = t, true
	}
	if hasComma {
		if w := strings.TrimSpace(waterPart); w != "" {
			if _, err := strconv.ParseFloat(strings.Replace(w, ",", ".", 1), 64); err != nil {
				return StepFlag{}, fmt.Errorf("invalid water amount %q in step %d", w, n)
			}
			step.Water, step.HasWater = w, true
		}
	}
	if !step.HasTime && !step.HasWater {
		return StepFlag{}, fmt.Errorf("step %d sets neither time nor water", n)
	}
	return step, nil
}

// ValidateFilePath validates that the directory of an output file exists
func ValidateFilePath(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", dir)
	}
	return nil
}
