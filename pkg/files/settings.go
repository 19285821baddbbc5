package files

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/brewlog/brewlog-terminal/pkg/models"
)

// ConfigEnv names an explicit settings file, overriding <root>/settings.yaml.
const ConfigEnv = "BREWLOG_CONFIG"

// ReadSettings loads settings for the journal at root.
// Priority: environment > settings file > defaults.
// A missing settings file is not an error unless it was named via
// BREWLOG_CONFIG.
func ReadSettings(root string) (*models.Settings, error) {
	var settings models.Settings

	path := os.Getenv(ConfigEnv)
	explicit := path != ""
	if !explicit {
		path = filepath.Join(root, SettingsFile)
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &settings); err != nil {
			return nil, fmt.Errorf("settings: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("settings: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&settings); err != nil {
		return nil, fmt.Errorf("settings: read env: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings: validate: %w", err)
	}

	return &settings, nil
}

// WriteSettings stores settings as <root>/settings.yaml. nil writes the
// defaults.
func WriteSettings(root string, settings *models.Settings) error {
	if settings == nil {
		settings = models.DefaultSettings()
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("settings: validate: %w", err)
	}

	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	if err := writeFileAtomic(filepath.Join(root, SettingsFile), content); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}
