package journaltest

import (
	"reflect"
	"testing"

	"github.com/brewlog/brewlog-terminal/pkg/models"
)

// AssertLogEqual checks every stored field of two logs. Dates are compared as
// instants since backends may hand them back in another location.
func AssertLogEqual(t *testing.T, expected, actual *models.Log) {
	t.Helper()

	if actual == nil {
		t.Fatalf("Log %q: got nil", expected.ID)
	}

	fields := []struct {
		name      string
		want, got interface{}
	}{
		{"ID", expected.ID, actual.ID},
		{"Origin", expected.Origin, actual.Origin},
		{"Process", expected.Process, actual.Process},
		{"Roast", expected.Roast, actual.Roast},
		{"Method", expected.Method, actual.Method},
		{"Coffee", expected.Coffee, actual.Coffee},
		{"Water", expected.Water, actual.Water},
		{"Ratio", expected.Ratio, actual.Ratio},
		{"GrindSize", expected.GrindSize, actual.GrindSize},
		{"WaterTemperature", expected.WaterTemperature, actual.WaterTemperature},
		{"Turbulence", expected.Turbulence, actual.Turbulence},
		{"BloomTime", expected.BloomTime, actual.BloomTime},
		{"TotalTime", expected.TotalTime, actual.TotalTime},
		{"Acidity", expected.Acidity, actual.Acidity},
		{"Sweetness", expected.Sweetness, actual.Sweetness},
		{"Body", expected.Body, actual.Body},
		{"Aftertaste", expected.Aftertaste, actual.Aftertaste},
		{"Bitterness", expected.Bitterness, actual.Bitterness},
		{"Rating", expected.Rating, actual.Rating},
		{"Notes", expected.Notes, actual.Notes},
	}
	for _, f := range fields {
		if !reflect.DeepEqual(f.want, f.got) {
			t.Errorf("Log %q %s mismatch: expected %v, got %v", expected.ID, f.name, f.want, f.got)
		}
	}

	if len(expected.RecipeSteps) != len(actual.RecipeSteps) {
		t.Errorf("Log %q step count mismatch: expected %d, got %d", expected.ID, len(expected.RecipeSteps), len(actual.RecipeSteps))
	} else {
		for i := range expected.RecipeSteps {
			if expected.RecipeSteps[i] != actual.RecipeSteps[i] {
				t.Errorf("Log %q step %d mismatch: expected %+v, got %+v", expected.ID, i, expected.RecipeSteps[i], actual.RecipeSteps[i])
			}
		}
	}

	if !expected.BrewedAt.Equal(actual.BrewedAt) {
		t.Errorf("Log %q BrewedAt mismatch: expected %v, got %v", expected.ID, expected.BrewedAt, actual.BrewedAt)
	}
}

// AssertIDs checks the ids of logs in order.
func AssertIDs(t *testing.T, logs []*models.Log, want ...string) {
	t.Helper()

	got := make([]string, len(logs))
	for i, l := range logs {
		got[i] = l.ID
	}
	if len(want) == 0 {
		want = []string{}
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Log ids mismatch: expected %v, got %v", want, got)
	}
}
