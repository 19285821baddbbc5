package files

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/brewlog/brewlog-terminal/pkg/journal"
	"github.com/brewlog/brewlog-terminal/pkg/models"
	"github.com/brewlog/brewlog-terminal/pkg/recipe"
)

// Compile-time interface check.
var _ journal.Store = (*Store)(nil)

// Store keeps one YAML document per log under <root>/logs.
type Store struct {
	mu   sync.RWMutex
	root string
	log  *slog.Logger
}

// NewStore opens the file journal at root. The journal must already exist.
func NewStore(root string, log *slog.Logger) (*Store, error) {
	if err := EnsureJournal(root); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(filepath.Join(root, LogsDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}
	return &Store{root: root, log: log.With("store", "files")}, nil
}

// Save writes a new log, assigning an id when it has none.
func (s *Store) Save(ctx context.Context, l *models.Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l.ID == "" {
		l.ID = journal.NewID()
	}
	if err := validateID(l.ID); err != nil {
		return err
	}
	path := logPath(s.root, l.ID)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("log %s: %w", l.ID, journal.ErrAlreadyExists)
	}

	if err := s.write(path, l); err != nil {
		return err
	}
	s.log.Debug("saved log", "id", l.ID, "steps", len(l.RecipeSteps))
	return nil
}

// Update overwrites an existing log.
func (s *Store) Update(ctx context.Context, l *models.Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateID(l.ID); err != nil {
		return err
	}
	path := logPath(s.root, l.ID)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("log %s: %w", l.ID, journal.ErrNotFound)
	}

	if err := s.write(path, l); err != nil {
		return err
	}
	s.log.Debug("updated log", "id", l.ID)
	return nil
}

// Delete removes a log.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateID(id); err != nil {
		return err
	}
	if err := os.Remove(logPath(s.root, id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("log %s: %w", id, journal.ErrNotFound)
		}
		return fmt.Errorf("failed to delete log %s: %w", id, err)
	}
	s.log.Debug("deleted log", "id", id)
	return nil
}

// Get reads one log by id.
func (s *Store) Get(ctx context.Context, id string) (*models.Log, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := validateID(id); err != nil {
		return nil, journal.ErrNotFound
	}
	return s.read(logPath(s.root, id))
}

// List returns every log matching q, newest first. Unreadable documents are
// skipped with a warning so one corrupt file does not hide the journal.
func (s *Store) List(ctx context.Context, q journal.Query) ([]*models.Log, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(filepath.Join(s.root, LogsDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []*models.Log{}, nil
		}
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}

	logs := []*models.Log{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), logExt) {
			continue
		}
		l, err := s.read(filepath.Join(s.root, LogsDir, entry.Name()))
		if err != nil {
			s.log.Warn("skipping unreadable log", "file", entry.Name(), "err", err)
			continue
		}
		if q.Matches(l) {
			logs = append(logs, l)
		}
	}

	journal.SortNewestFirst(logs)
	return logs, nil
}

// Latest returns the most recently brewed log.
func (s *Store) Latest(ctx context.Context) (*models.Log, error) {
	logs, err := s.List(ctx, journal.Query{})
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, journal.ErrNotFound
	}
	return logs[0], nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) write(path string, l *models.Log) error {
	doc := l.Clone()
	content, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal log to YAML: %w", err)
	}
	return writeFileAtomic(path, content)
}

func (s *Store) read(path string) (*models.Log, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("log %s: %w", strings.TrimSuffix(filepath.Base(path), logExt), journal.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read log %s: %w", path, err)
	}

	var l models.Log
	if err := yaml.Unmarshal(content, &l); err != nil {
		return nil, fmt.Errorf("failed to parse log YAML %s: %w", path, err)
	}
	if l.ID == "" {
		l.ID = strings.TrimSuffix(filepath.Base(path), logExt)
	}
	if l.RecipeSteps == nil {
		l.RecipeSteps = recipe.Steps{}
	}
	if l.Turbulence == "" {
		l.Turbulence = models.TurbulenceNone
	}
	return &l, nil
}
