package models

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/brewlog/brewlog-terminal/pkg/recipe"
)

func TestNewScore(t *testing.T) {
	tests := []struct {
		in      int
		wantSet bool
	}{
		{0, false},
		{1, true},
		{5, true},
		{6, false},
		{-2, false},
	}
	for _, tt := range tests {
		v, ok := NewScore(tt.in).Get()
		if ok != tt.wantSet {
			t.Errorf("NewScore(%d) set = %v, want %v", tt.in, ok, tt.wantSet)
		}
		if ok && v != tt.in {
			t.Errorf("NewScore(%d) value = %d", tt.in, v)
		}
	}
	if NewScore(3).String() != "3" || (Score{}).String() != "-" {
		t.Error("unexpected String output")
	}
}

func TestScoreEncoding(t *testing.T) {
	type doc struct {
		Body  Score `yaml:"body,omitempty" json:"body,omitzero"`
		Aroma Score `yaml:"aroma" json:"aroma"`
	}

	out, err := json.Marshal(doc{Body: NewScore(4)})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"body":4,"aroma":null}` {
		t.Errorf("json = %s", out)
	}

	ym, err := yaml.Marshal(doc{Body: NewScore(2)})
	if err != nil {
		t.Fatal(err)
	}
	if string(ym) != "body: 2\naroma: null\n" {
		t.Errorf("yaml = %q", ym)
	}

	var fromJSON doc
	if err := json.Unmarshal([]byte(`{"body":null,"aroma":3}`), &fromJSON); err != nil {
		t.Fatal(err)
	}
	if !fromJSON.Body.IsZero() || fromJSON.Aroma != NewScore(3) {
		t.Errorf("json decode = %+v", fromJSON)
	}

	var fromYAML doc
	if err := yaml.Unmarshal([]byte("body: 9\naroma: ~\n"), &fromYAML); err != nil {
		t.Fatal(err)
	}
	if !fromYAML.Body.IsZero() || !fromYAML.Aroma.IsZero() {
		t.Errorf("out of range or null scores should be unset, got %+v", fromYAML)
	}

	if err := yaml.Unmarshal([]byte("body: lots\n"), &fromYAML); err == nil {
		t.Error("expected an error for a non-numeric score")
	}
}

func TestParseTurbulence(t *testing.T) {
	tests := map[string]Turbulence{
		"":               TurbulenceNone,
		"none":           TurbulenceNone,
		"swirl":          TurbulenceSwirl,
		" STIR ":         TurbulenceStir,
		"swirl_and_stir": TurbulenceSwirlAndStir,
		"Swirl & Stir":   TurbulenceSwirlAndStir,
		"swirl-and-stir": TurbulenceSwirlAndStir,
		"shake":          TurbulenceNone,
	}
	for in, want := range tests {
		if got := ParseTurbulence(in); got != want {
			t.Errorf("ParseTurbulence(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTurbulenceDecoding(t *testing.T) {
	var l Log
	if err := yaml.Unmarshal([]byte("turbulence: stir\n"), &l); err != nil {
		t.Fatal(err)
	}
	if l.Turbulence != TurbulenceStir {
		t.Errorf("yaml turbulence = %q", l.Turbulence)
	}
	if err := json.Unmarshal([]byte(`{"turbulence":"VORTEX"}`), &l); err != nil {
		t.Fatal(err)
	}
	if l.Turbulence != TurbulenceNone {
		t.Errorf("json turbulence = %q", l.Turbulence)
	}
	if Turbulence("").String() != "NONE" {
		t.Error("empty turbulence should print as NONE")
	}
}

func TestLogClone(t *testing.T) {
	orig := &Log{ID: "a", Origin: "Kenya", RecipeSteps: recipe.Initialize(2)}
	c := orig.Clone()

	c.RecipeSteps[1].WaterAdded = 80
	c.Origin = "Peru"
	if orig.RecipeSteps[1].WaterAdded != 0 || orig.Origin != "Kenya" {
		t.Error("clone shares state with the original")
	}

	bare := (&Log{ID: "b"}).Clone()
	if bare.RecipeSteps == nil {
		t.Error("clone of a log without steps should carry an empty list")
	}
	if (*Log)(nil).Clone() != nil {
		t.Error("nil clone should be nil")
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{"defaults", func(*Settings) {}, ""},
		{"bounded pours", func(s *Settings) { s.Recipe.MaxPours = 6 }, ""},
		{"sqlite", func(s *Settings) { s.Storage.Driver = "SQLite" }, ""},
		{"zero pours", func(s *Settings) { s.Recipe.DefaultPours = 0 }, "default_pours"},
		{"negative max", func(s *Settings) { s.Recipe.MaxPours = -1 }, "max_pours"},
		{"default above max", func(s *Settings) { s.Recipe.MaxPours = 2 }, "exceeds"},
		{"unknown driver", func(s *Settings) { s.Storage.Driver = "bolt" }, "storage.driver"},
		{"sqlite without path", func(s *Settings) { s.Storage.Driver = DriverSQLite; s.Storage.SQLitePath = "" }, "sqlite_path"},
		{"narrow wrap", func(s *Settings) { s.Display.WrapWidth = 10 }, "wrap_width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
