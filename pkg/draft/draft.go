// Package draft holds the state of a log being composed or edited. Numeric
// fields stay as the text the user typed and are parsed only when a value is
// derived (ratio) or the draft is built into a log.
package draft

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/brewlog/brewlog-terminal/pkg/models"
	"github.com/brewlog/brewlog-terminal/pkg/recipe"
)

// ErrInvalidDraft wraps every form-level validation failure.
var ErrInvalidDraft = errors.New("invalid draft")

const (
	DefaultCoffee = "15"
	DefaultWater  = "250"
	DefaultRoast  = "Medium"
)

// ScoreKind names one of the sensory ratings.
type ScoreKind string

const (
	Acidity    ScoreKind = "acidity"
	Sweetness  ScoreKind = "sweetness"
	Body       ScoreKind = "body"
	Aftertaste ScoreKind = "aftertaste"
	Bitterness ScoreKind = "bitterness"
)

// ScoreKinds lists the sensory ratings in display order.
var ScoreKinds = []ScoreKind{Acidity, Sweetness, Body, Aftertaste, Bitterness}

// Options configures a new draft.
type Options struct {
	DefaultPours int
	MaxPours     int
}

// Draft is the single-writer state of the log form.
type Draft struct {
	id       string
	brewedAt time.Time

	origin     string
	process    string
	roast      string
	method     string
	coffee     string
	water      string
	grindSize  string
	waterTemp  string
	turbulence models.Turbulence
	bloomTime  string
	totalTime  string
	rating     int
	scores     map[ScoreKind]models.Score
	notes      string

	opts      Options
	steps     *recipe.Model
	observers []func(Snapshot)
}

// New starts an empty draft with the default recipe.
func New(opts Options) *Draft {
	opts = normalize(opts)
	d := &Draft{
		roast:      DefaultRoast,
		method:     models.DefaultMethod,
		coffee:     DefaultCoffee,
		water:      DefaultWater,
		turbulence: models.TurbulenceNone,
		scores:     make(map[ScoreKind]models.Score),
		opts:       opts,
	}
	d.attach(recipe.NewModel(opts.DefaultPours, recipe.WithMaxPours(opts.MaxPours)))
	return d
}

// FromLog opens a saved log for editing. A log without recorded steps gets
// the default recipe.
func FromLog(l *models.Log, opts Options) *Draft {
	opts = normalize(opts)
	d := &Draft{
		id:         l.ID,
		brewedAt:   l.BrewedAt,
		origin:     l.Origin,
		process:    l.Process,
		roast:      l.Roast,
		method:     l.Method,
		coffee:     formatNumber(l.Coffee),
		water:      formatNumber(l.Water),
		grindSize:  l.GrindSize,
		waterTemp:  formatNumber(l.WaterTemperature),
		turbulence: models.ParseTurbulence(l.Turbulence.String()),
		bloomTime:  formatInt(l.BloomTime),
		totalTime:  formatInt(l.TotalTime),
		rating:     clampRating(l.Rating),
		scores: map[ScoreKind]models.Score{
			Acidity:    l.Acidity,
			Sweetness:  l.Sweetness,
			Body:       l.Body,
			Aftertaste: l.Aftertaste,
			Bitterness: l.Bitterness,
		},
		notes: l.Notes,
		opts:  opts,
	}
	d.attach(recipe.FromSteps(l.RecipeSteps, opts.DefaultPours, recipe.WithMaxPours(opts.MaxPours)))
	return d
}

func normalize(opts Options) Options {
	if opts.DefaultPours < 1 {
		opts.DefaultPours = recipe.DefaultPourCount
	}
	return opts
}

func (d *Draft) attach(m *recipe.Model) {
	d.steps = m
	m.Subscribe(func(recipe.Steps) { d.publish() })
}

// Editing reports whether the draft edits an existing log.
func (d *Draft) Editing() bool {
	return d.id != ""
}

func (d *Draft) ID() string {
	return d.id
}

// Subscribe registers fn to receive a snapshot after every change.
func (d *Draft) Subscribe(fn func(Snapshot)) {
	d.observers = append(d.observers, fn)
}

func (d *Draft) publish() {
	if len(d.observers) == 0 {
		return
	}
	snap := d.Snapshot()
	for _, fn := range d.observers {
		fn(snap)
	}
}

func (d *Draft) set(field *string, value string) {
	*field = value
	d.publish()
}

func (d *Draft) SetOrigin(v string)           { d.set(&d.origin, v) }
func (d *Draft) SetProcess(v string)          { d.set(&d.process, v) }
func (d *Draft) SetRoast(v string)            { d.set(&d.roast, v) }
func (d *Draft) SetMethod(v string)           { d.set(&d.method, v) }
func (d *Draft) SetCoffee(v string)           { d.set(&d.coffee, v) }
func (d *Draft) SetWater(v string)            { d.set(&d.water, v) }
func (d *Draft) SetGrindSize(v string)        { d.set(&d.grindSize, v) }
func (d *Draft) SetWaterTemperature(v string) { d.set(&d.waterTemp, v) }
func (d *Draft) SetBloomTime(v string)        { d.set(&d.bloomTime, v) }
func (d *Draft) SetTotalTime(v string)        { d.set(&d.totalTime, v) }
func (d *Draft) SetNotes(v string)            { d.set(&d.notes, v) }

// SetTurbulence accepts any spelling; unknown text becomes NONE.
func (d *Draft) SetTurbulence(v string) {
	d.turbulence = models.ParseTurbulence(v)
	d.publish()
}

// SetRating sets the overall 0..5 rating, clamping out-of-range values.
func (d *Draft) SetRating(n int) {
	d.rating = clampRating(n)
	d.publish()
}

// SetScore sets a sensory rating. Values outside 1..5 unset it.
func (d *Draft) SetScore(kind ScoreKind, n int) {
	d.scores[kind] = models.NewScore(n)
	d.publish()
}

// SetPourCount resizes the recipe; see recipe.Model.SetPourCount.
func (d *Draft) SetPourCount(n int) recipe.Steps {
	return d.steps.SetPourCount(n)
}

// SetStepWater edits one step's water; see recipe.Model.SetStepWater.
func (d *Draft) SetStepWater(index int, text string) recipe.Steps {
	return d.steps.SetStepWater(index, text)
}

// SetStepTime edits one step's time label.
func (d *Draft) SetStepTime(index int, text string) recipe.Steps {
	return d.steps.SetStepTime(index, text)
}

// Steps returns a snapshot of the recipe.
func (d *Draft) Steps() recipe.Steps {
	return d.steps.Steps()
}

// ReuseFrom copies the bean details of a previous log.
func (d *Draft) ReuseFrom(last *models.Log) {
	if last == nil {
		return
	}
	d.origin = last.Origin
	d.process = last.Process
	d.roast = last.Roast
	d.publish()
}

// Ratio is water / coffee, or 0 while either does not parse or coffee is not
// positive.
func (d *Draft) Ratio() float64 {
	return Ratio(d.coffee, d.water)
}

// Ratio computes water / coffee from form text.
func Ratio(coffeeText, waterText string) float64 {
	coffee := recipe.ParseAmount(coffeeText)
	water := recipe.ParseAmount(waterText)
	if coffee <= 0 || water <= 0 {
		return 0
	}
	return water / coffee
}

// Validate reports the first form-level problem that would prevent saving.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.origin) == "" {
		return fmt.Errorf("%w: origin is required", ErrInvalidDraft)
	}
	if strings.TrimSpace(d.method) == "" {
		return fmt.Errorf("%w: method is required", ErrInvalidDraft)
	}
	if recipe.ParseAmount(d.coffee) <= 0 {
		return fmt.Errorf("%w: coffee must be a positive number, got %q", ErrInvalidDraft, d.coffee)
	}
	if recipe.ParseAmount(d.water) <= 0 {
		return fmt.Errorf("%w: water must be a positive number, got %q", ErrInvalidDraft, d.water)
	}
	return nil
}

// Build validates the draft and returns a log that shares no state with it.
// New logs are dated now; edited logs keep their original date.
func (d *Draft) Build(now time.Time) (*models.Log, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	brewedAt := d.brewedAt
	if brewedAt.IsZero() {
		brewedAt = now
	}

	return &models.Log{
		ID:               d.id,
		Origin:           strings.TrimSpace(d.origin),
		Process:          strings.TrimSpace(d.process),
		Roast:            d.roast,
		Method:           d.method,
		Coffee:           recipe.ParseAmount(d.coffee),
		Water:            recipe.ParseAmount(d.water),
		Ratio:            d.Ratio(),
		GrindSize:        strings.TrimSpace(d.grindSize),
		WaterTemperature: recipe.ParseAmount(d.waterTemp),
		Turbulence:       d.turbulence,
		BloomTime:        parseSeconds(d.bloomTime),
		TotalTime:        parseSeconds(d.totalTime),
		Acidity:          d.scores[Acidity],
		Sweetness:        d.scores[Sweetness],
		Body:             d.scores[Body],
		Aftertaste:       d.scores[Aftertaste],
		Bitterness:       d.scores[Bitterness],
		Rating:           d.rating,
		Notes:            strings.TrimSpace(d.notes),
		RecipeSteps:      d.steps.Steps(),
		BrewedAt:         brewedAt,
	}, nil
}

func clampRating(n int) int {
	if n < 0 {
		return 0
	}
	if n > 5 {
		return 5
	}
	return n
}

// parseSeconds accepts plain seconds ("45") or m:ss ("2:30").
func parseSeconds(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	if m, s, ok := strings.Cut(text, ":"); ok {
		mins, err1 := strconv.Atoi(m)
		secs, err2 := strconv.Atoi(s)
		if err1 != nil || err2 != nil || mins < 0 || secs < 0 {
			return 0
		}
		return mins*60 + secs
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func formatNumber(v float64) string {
	if v == 0 {
		return ""
	}
	return recipe.FormatWater(v)
}

func formatInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
