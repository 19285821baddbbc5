package draft

import (
	"github.com/brewlog/brewlog-terminal/pkg/models"
	"github.com/brewlog/brewlog-terminal/pkg/recipe"
)

// Snapshot is an immutable view of a draft handed to observers and
// renderers.
type Snapshot struct {
	ID               string
	Editing          bool
	Origin           string
	Process          string
	Roast            string
	Method           string
	Coffee           string
	Water            string
	GrindSize        string
	WaterTemperature string
	Turbulence       models.Turbulence
	BloomTime        string
	TotalTime        string
	Rating           int
	Scores           map[ScoreKind]models.Score
	Notes            string
	Steps            recipe.Steps
	PourCount        int
	Ratio            float64
}

// Snapshot copies the current state.
func (d *Draft) Snapshot() Snapshot {
	scores := make(map[ScoreKind]models.Score, len(ScoreKinds))
	for _, k := range ScoreKinds {
		scores[k] = d.scores[k]
	}
	steps := d.steps.Steps()
	return Snapshot{
		ID:               d.id,
		Editing:          d.Editing(),
		Origin:           d.origin,
		Process:          d.process,
		Roast:            d.roast,
		Method:           d.method,
		Coffee:           d.coffee,
		Water:            d.water,
		GrindSize:        d.grindSize,
		WaterTemperature: d.waterTemp,
		Turbulence:       d.turbulence,
		BloomTime:        d.bloomTime,
		TotalTime:        d.totalTime,
		Rating:           d.rating,
		Scores:           scores,
		Notes:            d.notes,
		Steps:            steps,
		PourCount:        steps.PourCount(),
		Ratio:            d.Ratio(),
	}
}
