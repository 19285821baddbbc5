package models

import (
	"strings"
	"time"

	"github.com/brewlog/brewlog-terminal/pkg/recipe"
)

// Log is one saved brew. RecipeSteps is owned by the log and never shared
// with a draft.
type Log struct {
	ID               string       `yaml:"id" json:"id"`
	Origin           string       `yaml:"origin" json:"origin"`
	Process          string       `yaml:"process,omitempty" json:"process,omitempty"`
	Roast            string       `yaml:"roast,omitempty" json:"roast,omitempty"`
	Method           string       `yaml:"method" json:"method"`
	Coffee           float64      `yaml:"coffee" json:"coffee"`
	Water            float64      `yaml:"water" json:"water"`
	Ratio            float64      `yaml:"ratio" json:"ratio"`
	GrindSize        string       `yaml:"grind_size,omitempty" json:"grind_size,omitempty"`
	WaterTemperature float64      `yaml:"water_temperature,omitempty" json:"water_temperature,omitempty"`
	Turbulence       Turbulence   `yaml:"turbulence" json:"turbulence"`
	BloomTime        int          `yaml:"bloom_time,omitempty" json:"bloom_time,omitempty"`
	TotalTime        int          `yaml:"total_time,omitempty" json:"total_time,omitempty"`
	Acidity          Score        `yaml:"acidity,omitempty" json:"acidity,omitzero"`
	Sweetness        Score        `yaml:"sweetness,omitempty" json:"sweetness,omitzero"`
	Body             Score        `yaml:"body,omitempty" json:"body,omitzero"`
	Aftertaste       Score        `yaml:"aftertaste,omitempty" json:"aftertaste,omitzero"`
	Bitterness       Score        `yaml:"bitterness,omitempty" json:"bitterness,omitzero"`
	Rating           int          `yaml:"rating" json:"rating"`
	Notes            string       `yaml:"notes,omitempty" json:"notes,omitempty"`
	RecipeSteps      recipe.Steps `yaml:"recipe_steps" json:"recipe_steps"`
	BrewedAt         time.Time    `yaml:"brewed_at" json:"brewed_at"`
}

// Clone returns a deep copy of the log.
func (l *Log) Clone() *Log {
	if l == nil {
		return nil
	}
	c := *l
	c.RecipeSteps = l.RecipeSteps.Clone()
	if c.RecipeSteps == nil {
		c.RecipeSteps = recipe.Steps{}
	}
	return &c
}

// Roasts and Methods are the choices offered by the editor.
var (
	Roasts  = []string{"Light", "Medium", "Dark"}
	Methods = []string{"V60", "Kalita", "Origami", "Chemex", "Aeropress", "French Press"}
)

const DefaultMethod = "V60"

// Turbulence is how the slurry was agitated during the brew.
type Turbulence string

const (
	TurbulenceNone         Turbulence = "NONE"
	TurbulenceSwirl        Turbulence = "SWIRL"
	TurbulenceStir         Turbulence = "STIR"
	TurbulenceSwirlAndStir Turbulence = "SWIRL_AND_STIR"
)

var Turbulences = []Turbulence{TurbulenceNone, TurbulenceSwirl, TurbulenceStir, TurbulenceSwirlAndStir}

// ParseTurbulence maps stored or typed text to a Turbulence. Unknown text is
// treated as NONE.
func ParseTurbulence(s string) Turbulence {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_", "&", "AND").Replace(norm)
	for _, t := range Turbulences {
		if string(t) == norm {
			return t
		}
	}
	return TurbulenceNone
}

// UnmarshalText lets yaml and json decode unknown values to NONE.
func (t *Turbulence) UnmarshalText(b []byte) error {
	*t = ParseTurbulence(string(b))
	return nil
}

func (t Turbulence) String() string {
	if t == "" {
		return string(TurbulenceNone)
	}
	return string(t)
}
