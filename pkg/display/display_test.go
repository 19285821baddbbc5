package display

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewlog/brewlog-terminal/pkg/models"
	"github.com/brewlog/brewlog-terminal/pkg/recipe"
)

func TestRow(t *testing.T) {
	tests := []struct {
		name string
		step recipe.PourStep
		want StepRow
	}{
		{
			name: "bloom",
			step: recipe.PourStep{Phase: "Bloom", Time: "0:00", WaterAdded: 40, TotalWeight: 40},
			want: StepRow{Phase: "Bloom", Time: "0:00", Water: "40", Total: "40g"},
		},
		{
			name: "empty time",
			step: recipe.PourStep{Phase: "Pour 2", WaterAdded: 62.5, TotalWeight: 172.5},
			want: StepRow{Phase: "Pour 2", Time: "-", Water: "62.5", Total: "173g"},
		},
		{
			name: "negative water",
			step: recipe.PourStep{Phase: "Pour 1", Time: "0:45", WaterAdded: -10, TotalWeight: -10},
			want: StepRow{Phase: "Pour 1", Time: "0:45", Water: "-10", Total: "-10g"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Row(tt.step))
		})
	}
}

func TestRecipeTable(t *testing.T) {
	assert.Equal(t, NoStepsText, RecipeTable(nil))
	assert.Equal(t, NoStepsText, RecipeTable(recipe.Steps{}))

	table := RecipeTable(recipe.Initialize(2))
	lines := strings.Split(table, "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "STEP"))
	assert.True(t, strings.HasPrefix(lines[1], "Bloom"))
	assert.True(t, strings.HasPrefix(lines[3], "Pour 2"))
}

func TestClock(t *testing.T) {
	assert.Equal(t, "00:00", Clock(0))
	assert.Equal(t, "00:45", Clock(45))
	assert.Equal(t, "03:10", Clock(190))
	assert.Equal(t, "00:00", Clock(-4))
}

func TestStars(t *testing.T) {
	assert.Equal(t, "★★★☆☆", Stars(3))
	assert.Equal(t, "☆☆☆☆☆", Stars(-1))
	assert.Equal(t, "★★★★★", Stars(8))
}

func TestSummary(t *testing.T) {
	steps := recipe.Steps{{Phase: "Bloom", Time: "0:00", WaterAdded: 40}, {Phase: "Pour 1", WaterAdded: 210}}
	recipe.Recompute(steps)
	l := &models.Log{
		Origin:      "Ethiopia Guji",
		Process:     "Washed",
		Roast:       "Light",
		Method:      "V60",
		Coffee:      15,
		Water:       250,
		Ratio:       250.0 / 15,
		Turbulence:  models.TurbulenceSwirlAndStir,
		BloomTime:   45,
		TotalTime:   190,
		Acidity:     models.NewScore(4),
		Rating:      4,
		Notes:       strings.Repeat("stone fruit ", 12),
		RecipeSteps: steps,
		BrewedAt:    time.Date(2026, 3, 14, 8, 30, 0, 0, time.UTC),
	}

	out := Summary(l, 30)
	assert.Contains(t, out, "Ethiopia Guji\nWashed • Light\n")
	assert.Contains(t, out, "1:16.7")
	assert.Contains(t, out, "Swirl & Stir")
	assert.Contains(t, out, "00:45")
	assert.Contains(t, out, "03:10")
	assert.Contains(t, out, "4/5")
	assert.Contains(t, out, "250g")
	assert.NotContains(t, out, NoStepsText)

	notes := out[strings.Index(out, "Notes\n")+len("Notes\n"):]
	for _, line := range strings.Split(strings.TrimSpace(notes), "\n") {
		assert.LessOrEqual(t, len(line), 30)
	}
}

func TestSummary_NoSteps(t *testing.T) {
	l := &models.Log{Origin: "Kenya", Method: "Chemex", RecipeSteps: recipe.Steps{}}
	out := Summary(l, 0)
	assert.Contains(t, out, NoStepsText)
	assert.NotContains(t, out, "Notes")
	assert.NotContains(t, out, "Bloom:")
}
