// Package journaltest holds fixtures, assertions and a behaviour suite shared
// by the tests of every journal.Store backend.
package journaltest

import (
	"time"

	"github.com/brewlog/brewlog-terminal/pkg/models"
	"github.com/brewlog/brewlog-terminal/pkg/recipe"
)

// BaseTime is the brew date fixtures count back from. It is whole seconds so
// it survives every backend's time encoding.
var BaseTime = time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

// MakeTestLog returns a complete log with a two-pour recipe of 50/100/100g.
func MakeTestLog(id, origin string, daysAgo int) *models.Log {
	steps := recipe.Initialize(2)
	steps[0].WaterAdded = 50
	steps[1].Time = "0:45"
	steps[1].WaterAdded = 100
	steps[2].Time = "1:30"
	steps[2].WaterAdded = 100
	recipe.Recompute(steps)

	return &models.Log{
		ID:               id,
		Origin:           origin,
		Process:          "Washed",
		Roast:            "Light",
		Method:           "V60",
		Coffee:           15,
		Water:            250,
		Ratio:            250.0 / 15,
		GrindSize:        "medium-fine",
		WaterTemperature: 94,
		Turbulence:       models.TurbulenceSwirl,
		BloomTime:        45,
		TotalTime:        180,
		Acidity:          models.NewScore(4),
		Body:             models.NewScore(3),
		Rating:           4,
		Notes:            "stone fruit",
		RecipeSteps:      steps,
		BrewedAt:         BaseTime.AddDate(0, 0, -daysAgo),
	}
}

// WithRating sets the rating and method of l and returns it.
func WithRating(l *models.Log, rating int, method string) *models.Log {
	l.Rating = rating
	l.Method = method
	return l
}
