package tui

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brewlog/brewlog-terminal/pkg/files"
	"github.com/brewlog/brewlog-terminal/pkg/models"
	"github.com/brewlog/brewlog-terminal/pkg/recipe"
)

func newTestEnv(t *testing.T, logs ...*models.Log) env {
	t.Helper()
	root := filepath.Join(t.TempDir(), files.JournalDir)
	if err := files.InitJournalStructure(root); err != nil {
		t.Fatalf("init journal: %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := files.NewStore(root, log)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	for _, l := range logs {
		if err := store.Save(context.Background(), l); err != nil {
			t.Fatalf("seed log: %v", err)
		}
	}
	return env{ctx: context.Background(), store: store, settings: models.DefaultSettings(), log: log}
}

func sampleLog(id, origin string, daysAgo int) *models.Log {
	return &models.Log{
		ID:          id,
		Origin:      origin,
		Process:     "Washed",
		Roast:       "Light",
		Method:      "V60",
		Coffee:      15,
		Water:       250,
		Ratio:       250.0 / 15,
		Rating:      4,
		RecipeSteps: recipe.Initialize(2),
		BrewedAt:    time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC).AddDate(0, 0, -daysAgo),
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// exec runs cmd and returns its message, unwrapping a batch into the first
// message of the wanted type when one is present.
func exec(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func findMsg[T any](t *testing.T, cmd tea.Cmd) (T, bool) {
	t.Helper()
	var zero T
	msg := exec(cmd)
	if m, ok := msg.(T); ok {
		return m, true
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if m, ok := findMsg[T](t, c); ok {
				return m, true
			}
		}
	}
	return zero, false
}

func TestApp_SwitchViews(t *testing.T) {
	e := newTestEnv(t, sampleLog("a1", "Kenya", 0))
	app := NewApp(e.ctx, e.store, e.settings, e.log)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	tests := []struct {
		name string
		msg  SwitchViewMsg
		want sessionState
	}{
		{"calculator", SwitchViewMsg{view: calculatorView}, calculatorView},
		{"detail", SwitchViewMsg{view: brewDetailView, logID: "a1"}, brewDetailView},
		{"new brew", SwitchViewMsg{view: brewEditorView}, brewEditorView},
		{"edit brew", SwitchViewMsg{view: brewEditorView, logID: "a1"}, brewEditorView},
		{"back to list", SwitchViewMsg{view: brewListView}, brewListView},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.Update(tt.msg)
			if app.state != tt.want {
				t.Errorf("state = %v, want %v", app.state, tt.want)
			}
			if app.View() == "" {
				t.Error("view should render")
			}
		})
	}
}

func TestApp_StatusMessage(t *testing.T) {
	e := newTestEnv(t)
	app := NewApp(e.ctx, e.store, e.settings, e.log)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	app.Update(StatusMsg("✓ Saved"))
	if app.statusMsg != "✓ Saved" {
		t.Fatalf("statusMsg = %q", app.statusMsg)
	}
	app.Update(runes("j"))
	if app.statusMsg != "" {
		t.Errorf("status should clear on key press, got %q", app.statusMsg)
	}
}

func TestApp_CtrlCQuits(t *testing.T) {
	e := newTestEnv(t)
	app := NewApp(e.ctx, e.store, e.settings, e.log)
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if _, ok := exec(cmd).(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}
