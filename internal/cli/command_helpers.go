package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/brewlog/brewlog-terminal/internal/logging"
	"github.com/brewlog/brewlog-terminal/pkg/draft"
	"github.com/brewlog/brewlog-terminal/pkg/files"
	"github.com/brewlog/brewlog-terminal/pkg/journal"
	"github.com/brewlog/brewlog-terminal/pkg/models"
	"github.com/brewlog/brewlog-terminal/pkg/sqlstore"
)

// journalDir is the --journal flag; empty means ./.brewlog
var journalDir string

// SetJournalDir sets the journal location from the cmd package
func SetJournalDir(dir string) {
	journalDir = dir
}

// JournalDir returns the journal directory commands operate on
func JournalDir() string {
	if journalDir != "" {
		return journalDir
	}
	return files.JournalDir
}

// CommandContext manages journal validation and common command context
type CommandContext struct {
	JournalPath string
	Settings    *models.Settings
	Logger      *slog.Logger
	validated   bool
}

// NewCommandContext creates a new command context. Diagnostics go to w.
func NewCommandContext(w io.Writer) (*CommandContext, error) {
	if w == nil {
		w = os.Stderr
	}
	c := &CommandContext{JournalPath: JournalDir()}
	c.Logger = logging.New(c.LoadSettingsWithDefault().Log, w)
	return c, nil
}

// ValidateJournal ensures the journal is initialized
func (c *CommandContext) ValidateJournal() error {
	if c.validated {
		return nil
	}

	if err := files.EnsureJournal(c.JournalPath); err != nil {
		return err
	}

	c.validated = true
	return nil
}

// LoadSettings loads and validates settings, failing on a bad file
func (c *CommandContext) LoadSettings() (*models.Settings, error) {
	if c.Settings != nil {
		return c.Settings, nil
	}
	settings, err := files.ReadSettings(c.JournalPath)
	if err != nil {
		return nil, err
	}
	c.Settings = settings
	return settings, nil
}

// LoadSettingsWithDefault loads settings or returns default if error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	settings, err := c.LoadSettings()
	if err != nil {
		settings = models.DefaultSettings()
		c.Settings = settings
	}
	return settings
}

// DraftOptions maps the recipe settings onto draft options
func (c *CommandContext) DraftOptions() draft.Options {
	s := c.LoadSettingsWithDefault()
	return draft.Options{
		DefaultPours: s.Recipe.DefaultPours,
		MaxPours:     s.Recipe.MaxPours,
	}
}

// OpenStore validates the journal and opens the configured backend
func (c *CommandContext) OpenStore(ctx context.Context) (journal.Store, error) {
	if err := c.ValidateJournal(); err != nil {
		return nil, err
	}
	settings, err := c.LoadSettings()
	if err != nil {
		return nil, err
	}
	return OpenStore(ctx, c.JournalPath, settings, c.Logger)
}

// OpenStore returns the backend selected by settings.Storage.Driver.
// A relative sqlite path is resolved inside the journal directory.
func OpenStore(ctx context.Context, root string, settings *models.Settings, log *slog.Logger) (journal.Store, error) {
	switch settings.Storage.Driver {
	case models.DriverFiles, "":
		store, err := files.NewStore(root, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	case models.DriverSQLite:
		path := settings.Storage.SQLitePath
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		store, err := sqlstore.Open(ctx, path, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", settings.Storage.Driver)
	}
}
