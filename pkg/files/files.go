package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	JournalDir   = ".brewlog"
	LogsDir      = "logs"
	SettingsFile = "settings.yaml"
	LogFile      = "brewlog.log"
	logExt       = ".yaml"
)

// ErrNoJournal is returned when the journal directory has not been created.
var ErrNoJournal = errors.New("no .brewlog directory found. Run 'brewlog init' first")

// InitJournalStructure creates the journal folders under root and writes
// default settings if none exist yet.
func InitJournalStructure(root string) error {
	dirs := []string{
		root,
		filepath.Join(root, LogsDir),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	settingsPath := filepath.Join(root, SettingsFile)
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		if err := WriteSettings(root, nil); err != nil {
			return err
		}
	}

	return nil
}

// EnsureJournal reports ErrNoJournal when root does not exist.
func EnsureJournal(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNoJournal
		}
		return fmt.Errorf("failed to access journal %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("journal path %s is not a directory", root)
	}
	return nil
}

// validateID rejects ids that would escape the logs directory.
func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("log id cannot be empty")
	}
	invalid := []string{"/", "\\", "..", "~", "$", "`"}
	for _, c := range invalid {
		if strings.Contains(id, c) {
			return fmt.Errorf("log id contains invalid character: %s", c)
		}
	}
	return nil
}

func logPath(root, id string) string {
	return filepath.Join(root, LogsDir, id+logExt)
}

// writeFileAtomic writes through a temp file in the same directory so a
// crash never leaves a half-written log behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
