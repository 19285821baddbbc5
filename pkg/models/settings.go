package models

import (
	"fmt"
	"slices"
	"strings"
)

// Settings represents the journal configuration stored in settings.yaml.
// Every field can be overridden from the environment.
type Settings struct {
	Recipe  RecipeSettings  `yaml:"recipe"`
	Storage StorageSettings `yaml:"storage"`
	Log     LogSettings     `yaml:"log"`
	Display DisplaySettings `yaml:"display"`
}

// RecipeSettings controls the recipe step editor
type RecipeSettings struct {
	DefaultPours int `yaml:"default_pours" env:"BREWLOG_DEFAULT_POURS" env-default:"3"`
	// MaxPours caps the pour count; 0 means unbounded.
	MaxPours int `yaml:"max_pours" env:"BREWLOG_MAX_POURS" env-default:"0"`
}

// StorageSettings selects the journal backend
type StorageSettings struct {
	Driver     string `yaml:"driver" env:"BREWLOG_STORAGE_DRIVER" env-default:"files"`
	SQLitePath string `yaml:"sqlite_path" env:"BREWLOG_SQLITE_PATH" env-default:"brewlog.db"`
}

// LogSettings controls diagnostic logging
type LogSettings struct {
	Level  string `yaml:"level" env:"BREWLOG_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"BREWLOG_LOG_FORMAT" env-default:"text"`
}

// DisplaySettings controls text rendering
type DisplaySettings struct {
	WrapWidth int `yaml:"wrap_width" env:"BREWLOG_WRAP_WIDTH" env-default:"72"`
}

const (
	DriverFiles  = "files"
	DriverSQLite = "sqlite"
)

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Recipe: RecipeSettings{
			DefaultPours: 3,
			MaxPours:     0,
		},
		Storage: StorageSettings{
			Driver:     DriverFiles,
			SQLitePath: "brewlog.db",
		},
		Log: LogSettings{
			Level:  "info",
			Format: "text",
		},
		Display: DisplaySettings{
			WrapWidth: 72,
		},
	}
}

// Validate checks the settings for values the journal cannot work with.
func (s *Settings) Validate() error {
	if s.Recipe.DefaultPours < 1 {
		return fmt.Errorf("recipe.default_pours must be at least 1, got %d", s.Recipe.DefaultPours)
	}
	if s.Recipe.MaxPours < 0 {
		return fmt.Errorf("recipe.max_pours must not be negative, got %d", s.Recipe.MaxPours)
	}
	if s.Recipe.MaxPours > 0 && s.Recipe.DefaultPours > s.Recipe.MaxPours {
		return fmt.Errorf("recipe.default_pours (%d) exceeds recipe.max_pours (%d)", s.Recipe.DefaultPours, s.Recipe.MaxPours)
	}
	driver := strings.ToLower(s.Storage.Driver)
	if !slices.Contains([]string{DriverFiles, DriverSQLite}, driver) {
		return fmt.Errorf("storage.driver must be %q or %q, got %q", DriverFiles, DriverSQLite, s.Storage.Driver)
	}
	if driver == DriverSQLite && s.Storage.SQLitePath == "" {
		return fmt.Errorf("storage.sqlite_path is required for the sqlite driver")
	}
	if s.Display.WrapWidth < 20 {
		return fmt.Errorf("display.wrap_width must be at least 20, got %d", s.Display.WrapWidth)
	}
	return nil
}
