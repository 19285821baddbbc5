package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/brewlog/brewlog-terminal/pkg/display"
	"github.com/brewlog/brewlog-terminal/pkg/journal"
	"github.com/brewlog/brewlog-terminal/pkg/models"
)

// BrewDetailModel shows one brew with its recipe in a scrollable pane.
type BrewDetailModel struct {
	env      env
	log      *models.Log
	err      error
	width    int
	height   int
	viewport viewport.Model
}

func NewBrewDetailModel(e env) *BrewDetailModel {
	return &BrewDetailModel{
		env:      e,
		viewport: viewport.New(80, 20),
	}
}

// Load fetches the brew to show.
func (m *BrewDetailModel) Load(id string) tea.Cmd {
	m.log = nil
	m.err = nil
	return loadLogCmd(m.env.ctx, m.env.store, id)
}

func (m *BrewDetailModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-6, 20)
	m.viewport.Height = max(height-12, 5)
	m.refresh()
}

func (m *BrewDetailModel) wrapWidth() int {
	return min(m.viewport.Width-2, m.env.settings.Display.WrapWidth)
}

func (m *BrewDetailModel) refresh() {
	if m.log == nil {
		return
	}
	m.viewport.SetContent(display.Summary(m.log, m.wrapWidth()))
}

func (m *BrewDetailModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case logLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.env.log.Error("loading brew", "err", msg.err)
			return nil
		}
		m.log = msg.log
		m.viewport.GotoTop()
		m.refresh()
		return nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return switchTo(brewListView, "")
		case "e":
			if m.log != nil {
				return switchTo(brewEditorView, m.log.ID)
			}
			return nil
		case "y":
			if m.log != nil {
				if err := copyToClipboard(display.Summary(m.log, m.env.settings.Display.WrapWidth)); err != nil {
					return statusCmd("✗ Copy failed: " + err.Error())
				}
				return statusCmd(m.log.Origin + " → clipboard")
			}
			return nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *BrewDetailModel) View() string {
	if m.err != nil {
		if errors.Is(m.err, journal.ErrNotFound) {
			return "This brew no longer exists.\n\nPress 'Esc' to return"
		}
		return fmt.Sprintf("Error: Failed to load brew: %v\n\nPress 'Esc' to return", m.err)
	}
	if m.log == nil {
		return "Loading brew..."
	}

	var b strings.Builder
	b.WriteString(renderHeader(m.width, "BREW"))
	b.WriteString("\n\n")

	body := headingWithRule(strings.ToUpper(m.log.Origin), m.viewport.Width) + "\n\n" + m.viewport.View()
	b.WriteString(ActiveBorderStyle.Width(max(m.width-4, 24)).Render(ContentPaddingStyle.Render(body)))
	b.WriteString("\n")

	scroll := ""
	if !m.viewport.AtTop() || !m.viewport.AtBottom() {
		scroll = fmt.Sprintf(" %3.f%% •", m.viewport.ScrollPercent()*100)
	}
	b.WriteString(HelpStyle.Render(scroll + " ↑/↓ scroll • e edit • y copy • esc back"))
	return b.String()
}
