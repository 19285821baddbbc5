package files

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brewlog/brewlog-terminal/pkg/journal"
	"github.com/brewlog/brewlog-terminal/pkg/journal/journaltest"
	"github.com/brewlog/brewlog-terminal/pkg/models"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), JournalDir)
	if err := InitJournalStructure(root); err != nil {
		t.Fatalf("InitJournalStructure failed: %v", err)
	}
	store, err := NewStore(root, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store, root
}

func TestStore(t *testing.T) {
	journaltest.RunStoreSuite(t, func(t *testing.T) journal.Store {
		s, _ := newTestStore(t)
		return s
	})
}

func TestNewStore_NoJournal(t *testing.T) {
	_, err := NewStore(filepath.Join(t.TempDir(), "missing"), nil)
	if !errors.Is(err, ErrNoJournal) {
		t.Errorf("expected ErrNoJournal, got %v", err)
	}
}

func TestStore_WritesOneYAMLFilePerLog(t *testing.T) {
	s, root := newTestStore(t)
	l := journaltest.MakeTestLog("kenya-1", "Kenya", 0)
	if err := s.Save(context.Background(), l); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(root, LogsDir, "kenya-1.yaml"))
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	for _, want := range []string{"origin: Kenya", "recipe_steps:", "phase: Bloom", "total_weight: 250", "turbulence: SWIRL"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("log file missing %q:\n%s", want, content)
		}
	}
	if strings.Contains(string(content), "sweetness") {
		t.Error("unset scores should be omitted")
	}

	entries, _ := os.ReadDir(filepath.Join(root, LogsDir))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestStore_SkipsCorruptFiles(t *testing.T) {
	s, root := newTestStore(t)
	ctx := context.Background()
	if err := s.Save(ctx, journaltest.MakeTestLog("good", "Kenya", 0)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, LogsDir, "bad.yaml"), []byte("origin: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, LogsDir, "notes.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}

	logs, err := s.List(ctx, journal.Query{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	journaltest.AssertIDs(t, logs, "good")

	if _, err := s.Get(ctx, "bad"); err == nil || errors.Is(err, journal.ErrNotFound) {
		t.Errorf("Get on a corrupt file should report a parse error, got %v", err)
	}
}

func TestStore_LegacyDocuments(t *testing.T) {
	s, root := newTestStore(t)

	// a log written before recipes and turbulence were recorded, named only
	// by its file
	doc := "origin: Colombia\nmethod: V60\ncoffee: 15\nwater: 250\nrating: 3\nbrewed_at: 2025-01-02T08:00:00Z\n"
	if err := os.WriteFile(filepath.Join(root, LogsDir, "legacy.yaml"), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	l, err := s.Get(context.Background(), "legacy")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if l.ID != "legacy" {
		t.Errorf("expected id from file name, got %q", l.ID)
	}
	if l.RecipeSteps == nil || len(l.RecipeSteps) != 0 {
		t.Errorf("expected empty steps, got %#v", l.RecipeSteps)
	}
	if l.Turbulence != models.TurbulenceNone {
		t.Errorf("expected NONE turbulence, got %q", l.Turbulence)
	}
}

func TestStore_UnknownTurbulenceReadsAsNone(t *testing.T) {
	s, root := newTestStore(t)
	doc := "id: odd\norigin: Peru\nturbulence: SHAKE\nbrewed_at: 2025-01-02T08:00:00Z\n"
	if err := os.WriteFile(filepath.Join(root, LogsDir, "odd.yaml"), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	l, err := s.Get(context.Background(), "odd")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if l.Turbulence != models.TurbulenceNone {
		t.Errorf("expected NONE, got %q", l.Turbulence)
	}
}

func TestStore_RejectsPathTraversal(t *testing.T) {
	s, root := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"../escape", "a/b", `a\b`, "~root"} {
		l := journaltest.MakeTestLog(id, "Kenya", 0)
		if err := s.Save(ctx, l); err == nil {
			t.Errorf("Save(%q) should fail", id)
		}
		if _, err := s.Get(ctx, id); !errors.Is(err, journal.ErrNotFound) {
			t.Errorf("Get(%q): expected ErrNotFound, got %v", id, err)
		}
		if err := s.Delete(ctx, id); err == nil {
			t.Errorf("Delete(%q) should fail", id)
		}
	}

	if _, err := os.Stat(filepath.Join(root, "escape.yaml")); !os.IsNotExist(err) {
		t.Error("a log was written outside the logs directory")
	}
}
