package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/brewlog/brewlog-terminal/pkg/calculator"
	"github.com/brewlog/brewlog-terminal/pkg/display"
	"github.com/brewlog/brewlog-terminal/pkg/journal"
	"github.com/brewlog/brewlog-terminal/pkg/models"
)

// copyToClipboard is swapped in tests
var copyToClipboard = clipboard.WriteAll

// BrewListModel shows every logged brew, newest first.
type BrewListModel struct {
	env     env
	logs    []*models.Log
	visible []*models.Log
	cursor  int
	width   int
	height  int
	err     error
	loaded  bool

	searching bool
	search    textinput.Model
	confirm   *ConfirmationModel
}

func NewBrewListModel(e env) *BrewListModel {
	search := textinput.New()
	search.Placeholder = "origin..."
	search.Prompt = "/ "
	search.CharLimit = 60
	return &BrewListModel{
		env:     e,
		search:  search,
		confirm: NewConfirmation(),
	}
}

func (m *BrewListModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload fetches the journal again.
func (m *BrewListModel) Reload() tea.Cmd {
	return loadLogsCmd(m.env.ctx, m.env.store, journal.Query{})
}

func (m *BrewListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the brew under the cursor, or nil.
func (m *BrewListModel) Selected() *models.Log {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return m.visible[m.cursor]
}

func (m *BrewListModel) setLogs(logs []*models.Log) {
	m.logs = logs
	m.applyFilter()
}

func (m *BrewListModel) applyFilter() {
	q := journal.Query{Origin: strings.TrimSpace(m.search.Value())}
	m.visible = m.visible[:0:0]
	for _, l := range m.logs {
		if q.Matches(l) {
			m.visible = append(m.visible, l)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
}

func (m *BrewListModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case logsLoadedMsg:
		m.loaded = true
		m.err = msg.err
		if msg.err != nil {
			m.env.log.Error("loading brews", "err", msg.err)
			return nil
		}
		m.setLogs(msg.logs)
		return nil

	case logDeletedMsg:
		if msg.err != nil {
			m.env.log.Error("deleting brew", "id", msg.id, "err", msg.err)
			return statusCmd("✗ Delete failed: " + msg.err.Error())
		}
		return tea.Batch(m.Reload(), statusCmd("✓ Brew deleted"))

	case tea.KeyMsg:
		if m.confirm.Active() {
			return m.confirm.Update(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}
	return nil
}

func (m *BrewListModel) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.applyFilter()
		return nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyFilter()
	return cmd
}

func (m *BrewListModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(0, len(m.visible)-1)

	case "/":
		m.searching = true
		return m.search.Focus()

	case "r":
		return m.Reload()

	case "enter":
		if l := m.Selected(); l != nil {
			return switchTo(brewDetailView, l.ID)
		}
	case "n":
		return switchTo(brewEditorView, "")
	case "e":
		if l := m.Selected(); l != nil {
			return switchTo(brewEditorView, l.ID)
		}
	case "c":
		return switchTo(calculatorView, "")

	case "y":
		if l := m.Selected(); l != nil {
			if err := copyToClipboard(display.Summary(l, m.env.settings.Display.WrapWidth)); err != nil {
				return statusCmd("✗ Copy failed: " + err.Error())
			}
			return statusCmd(l.Origin + " → clipboard")
		}

	case "d":
		if l := m.Selected(); l != nil {
			id := l.ID
			m.confirm.ShowInline(
				fmt.Sprintf("Delete brew '%s' from %s?", l.Origin, l.BrewedAt.Local().Format("Jan 2")),
				true,
				func() tea.Cmd { return deleteLogCmd(m.env.ctx, m.env.store, id) },
				nil,
			)
		}
	}
	return nil
}

func (m *BrewListModel) View() string {
	var b strings.Builder
	b.WriteString(renderHeader(m.width, "BREWS"))
	b.WriteString("\n\n")

	contentWidth := max(m.width-4, 40)
	body := m.renderBody(contentWidth)
	b.WriteString(ActiveBorderStyle.Width(contentWidth).Render(ContentPaddingStyle.Render(body)))
	b.WriteString("\n")

	switch {
	case m.confirm.Active():
		b.WriteString(ContentPaddingStyle.Render(m.confirm.View()))
	case m.searching || m.search.Value() != "":
		b.WriteString(ContentPaddingStyle.Render(m.search.View()))
	default:
		b.WriteString(HelpStyle.Render("enter view • n new • e edit • d delete • y copy • / search • c calculator • q quit"))
	}
	return b.String()
}

func (m *BrewListModel) renderBody(width int) string {
	if m.err != nil {
		return ErrorStyle.Render("Failed to load brews: " + m.err.Error())
	}
	if !m.loaded {
		return DimStyle.Render("Loading brews...")
	}
	if len(m.logs) == 0 {
		return EmptyStyle.Render("No brews yet. Press 'n' to log your first one.")
	}
	if len(m.visible) == 0 {
		return EmptyStyle.Render("No brews match the search.")
	}

	var b strings.Builder
	b.WriteString(headingWithRule(fmt.Sprintf("BREWS (%d)", len(m.visible)), width-2))
	b.WriteString("\n\n")

	// rows that fit under the header, help and borders
	rows := max(m.height-16, 5)
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(start+rows, len(m.visible))

	originWidth := max(width-52, 12)
	for i := start; i < end; i++ {
		line := renderListRow(m.visible[i], originWidth)
		if i == m.cursor {
			line = SelectedStyle.Render("▸ " + line)
		} else {
			line = NormalStyle.Render("  " + line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderListRow(l *models.Log, originWidth int) string {
	origin := l.Origin
	if lipgloss.Width(origin) > originWidth {
		runes := []rune(origin)
		origin = string(runes[:min(len(runes), max(0, originWidth-1))]) + "…"
	}
	return fmt.Sprintf("%-11s %-*s %-12s %-7s %s",
		l.BrewedAt.Local().Format("Jan 02 '06"),
		originWidth, origin,
		l.Method,
		calculator.FormatRatio(l.Ratio),
		display.Stars(l.Rating))
}
