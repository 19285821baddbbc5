package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/brewlog/brewlog-terminal/pkg/calculator"
)

const (
	calcWater = iota
	calcCoffee
	calcRatio
)

// CalculatorModel edits water, coffee and ratio; changing one rewrites its
// counterpart.
type CalculatorModel struct {
	calc   *calculator.Calculator
	inputs []textinput.Model
	focus  int
	width  int
	height int
}

func NewCalculatorModel() *CalculatorModel {
	m := &CalculatorModel{calc: calculator.New()}
	for _, placeholder := range []string{"250", "15", calculator.DefaultRatio} {
		in := newInput(10, placeholder)
		in.CharLimit = 10
		m.inputs = append(m.inputs, in)
	}
	m.sync()
	return m
}

func (m *CalculatorModel) Init() tea.Cmd {
	return m.setFocus(m.focus)
}

func (m *CalculatorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *CalculatorModel) setFocus(i int) tea.Cmd {
	m.focus = (i + len(m.inputs)) % len(m.inputs)
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	return m.inputs[m.focus].Focus()
}

// sync copies the calculator state into the inputs.
func (m *CalculatorModel) sync() {
	m.inputs[calcWater].SetValue(m.calc.Water())
	m.inputs[calcCoffee].SetValue(m.calc.Coffee())
	m.inputs[calcRatio].SetValue(m.calc.Ratio())
}

func (m *CalculatorModel) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "esc":
		return switchTo(brewListView, "")
	case "tab", "down", "enter":
		return m.setFocus(m.focus + 1)
	case "shift+tab", "up":
		return m.setFocus(m.focus - 1)
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(key)
	v := m.inputs[m.focus].Value()
	if v == before {
		return cmd
	}

	switch m.focus {
	case calcWater:
		m.calc.SetWater(v)
	case calcCoffee:
		m.calc.SetCoffee(v)
	case calcRatio:
		m.calc.SetRatio(v)
	}
	m.sync()
	m.inputs[m.focus].CursorEnd()
	return cmd
}

func (m *CalculatorModel) View() string {
	var b strings.Builder
	b.WriteString(renderHeader(m.width, "RATIO CALCULATOR"))
	b.WriteString("\n\n")

	labels := []string{"Water (g)", "Coffee (g)", "Ratio  1:"}
	var body strings.Builder
	body.WriteString(headingWithRule("CALCULATOR", 40))
	body.WriteString("\n\n")
	for i, in := range m.inputs {
		label := LabelStyle.Render(labels[i])
		if i == m.focus {
			label = FocusedLabelStyle.Render(labels[i])
		}
		body.WriteString(label + " " + in.View())
		if i < len(m.inputs)-1 {
			body.WriteString("\n")
		}
	}

	b.WriteString(ActiveBorderStyle.Width(min(max(m.width-4, 40), 60)).Render(ContentPaddingStyle.Render(body.String())))
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("tab/↑/↓ move • type to recalculate • esc back"))
	return b.String()
}
