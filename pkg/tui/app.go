package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/brewlog/brewlog-terminal/pkg/journal"
	"github.com/brewlog/brewlog-terminal/pkg/models"
)

type sessionState int

const (
	brewListView sessionState = iota
	brewDetailView
	brewEditorView
	calculatorView
)

// env is what every view needs to reach the journal.
type env struct {
	ctx      context.Context
	store    journal.Store
	settings *models.Settings
	log      *slog.Logger
}

type App struct {
	env       env
	state     sessionState
	list      *BrewListModel
	detail    *BrewDetailModel
	editor    *BrewEditorModel
	calc      *CalculatorModel
	width     int
	height    int
	statusMsg string
}

func NewApp(ctx context.Context, store journal.Store, settings *models.Settings, log *slog.Logger) *App {
	if settings == nil {
		settings = models.DefaultSettings()
	}
	if log == nil {
		log = slog.Default()
	}
	e := env{ctx: ctx, store: store, settings: settings, log: log.With("component", "tui")}
	return &App{
		env:   e,
		state: brewListView,
		list:  NewBrewListModel(e),
	}
}

func (a *App) Init() tea.Cmd {
	return a.list.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.list.SetSize(msg.Width, msg.Height)
		if a.detail != nil {
			a.detail.SetSize(msg.Width, msg.Height)
		}
		if a.editor != nil {
			a.editor.SetSize(msg.Width, msg.Height)
		}
		if a.calc != nil {
			a.calc.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		// any key press clears a stale status message
		a.statusMsg = ""

	case StatusMsg:
		a.statusMsg = string(msg)
		return a, nil

	case SwitchViewMsg:
		return a, a.switchView(msg)
	}

	// Route updates to the active view
	var cmd tea.Cmd
	switch a.state {
	case brewListView:
		cmd = a.list.Update(msg)
	case brewDetailView:
		cmd = a.detail.Update(msg)
	case brewEditorView:
		cmd = a.editor.Update(msg)
	case calculatorView:
		cmd = a.calc.Update(msg)
	}
	return a, cmd
}

func (a *App) switchView(msg SwitchViewMsg) tea.Cmd {
	a.env.log.Debug("switch view", "view", msg.view, "id", msg.logID)
	a.state = msg.view

	switch msg.view {
	case brewListView:
		return a.list.Reload()

	case brewDetailView:
		if a.detail == nil {
			a.detail = NewBrewDetailModel(a.env)
		}
		a.detail.SetSize(a.width, a.height)
		return a.detail.Load(msg.logID)

	case brewEditorView:
		a.editor = NewBrewEditorModel(a.env)
		a.editor.SetSize(a.width, a.height)
		if msg.logID == "" {
			return a.editor.StartNew()
		}
		return a.editor.StartEdit(msg.logID)

	case calculatorView:
		if a.calc == nil {
			a.calc = NewCalculatorModel()
		}
		a.calc.SetSize(a.width, a.height)
		return a.calc.Init()
	}
	return nil
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var content string
	switch a.state {
	case brewListView:
		content = a.list.View()
	case brewDetailView:
		content = a.detail.View()
	case brewEditorView:
		content = a.editor.View()
	case calculatorView:
		content = a.calc.View()
	default:
		content = "Unknown view"
	}

	if a.statusMsg != "" {
		content = lipgloss.JoinVertical(lipgloss.Top, content, StatusBarStyle.Render(a.statusMsg))
	}
	return content
}
