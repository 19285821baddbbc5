package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/brewlog/brewlog-terminal/pkg/calculator"
	"github.com/brewlog/brewlog-terminal/pkg/display"
	"github.com/brewlog/brewlog-terminal/pkg/draft"
	"github.com/brewlog/brewlog-terminal/pkg/models"
	"github.com/brewlog/brewlog-terminal/pkg/recipe"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldChoice
)

// formField is one row of the brew form. Text fields edit through a
// textinput; choice fields cycle through a fixed list with left/right.
type formField struct {
	label   string
	kind    fieldKind
	input   textinput.Model
	choices []string
	labels  []string
	choice  int
	apply   func(string)
	value   func(draft.Snapshot) string
}

func (f *formField) current() string {
	if f.kind == fieldChoice {
		return f.choices[f.choice]
	}
	return f.input.Value()
}

func (f *formField) display() string {
	if f.kind == fieldText {
		return f.input.View()
	}
	if f.labels != nil {
		return "‹ " + f.labels[f.choice] + " ›"
	}
	return "‹ " + f.choices[f.choice] + " ›"
}

// sync loads the field from a snapshot without applying it back.
func (f *formField) sync(s draft.Snapshot) {
	v := f.value(s)
	if f.kind == fieldText {
		f.input.SetValue(v)
		return
	}
	if i := slices.Index(f.choices, v); i >= 0 {
		f.choice = i
		return
	}
	f.choices = append(f.choices, v)
	if f.labels != nil {
		f.labels = append(f.labels, v)
	}
	f.choice = len(f.choices) - 1
}

type stepInputs struct {
	time  textinput.Model
	water textinput.Model
}

// BrewEditorModel composes a new brew or edits a saved one.
type BrewEditorModel struct {
	env     env
	draft   *draft.Draft
	snap    draft.Snapshot
	fields  []*formField
	steps   []stepInputs
	focus   int
	ready   bool
	dirty   bool
	saving  bool
	loadErr error
	formErr string
	width   int
	height  int
	confirm *ConfirmationModel
}

func NewBrewEditorModel(e env) *BrewEditorModel {
	return &BrewEditorModel{
		env:     e,
		confirm: NewConfirmation(),
	}
}

func (m *BrewEditorModel) options() draft.Options {
	return draft.Options{
		DefaultPours: m.env.settings.Recipe.DefaultPours,
		MaxPours:     m.env.settings.Recipe.MaxPours,
	}
}

// StartNew opens an empty draft and looks up the latest brew so its beans
// can be offered for reuse.
func (m *BrewEditorModel) StartNew() tea.Cmd {
	m.attach(draft.New(m.options()))
	return loadLatestCmd(m.env.ctx, m.env.store)
}

// StartEdit loads a saved brew into the form.
func (m *BrewEditorModel) StartEdit(id string) tea.Cmd {
	return loadLogCmd(m.env.ctx, m.env.store, id)
}

func (m *BrewEditorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *BrewEditorModel) attach(d *draft.Draft) {
	m.draft = d
	m.snap = d.Snapshot()
	d.Subscribe(func(s draft.Snapshot) {
		m.snap = s
		m.dirty = true
	})
	m.buildFields()
	m.steps = nil
	m.syncSteps()
	m.setFocus(0)
	m.ready = true
}

func newInput(width int, placeholder string) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Width = width
	in.CharLimit = 200
	in.Placeholder = placeholder
	return in
}

func (m *BrewEditorModel) buildFields() {
	d := m.draft
	text := func(label, placeholder string, width int, apply func(string), value func(draft.Snapshot) string) *formField {
		return &formField{label: label, kind: fieldText, input: newInput(width, placeholder), apply: apply, value: value}
	}
	choice := func(label string, choices, labels []string, apply func(string), value func(draft.Snapshot) string) *formField {
		return &formField{label: label, kind: fieldChoice, choices: slices.Clone(choices), labels: slices.Clone(labels), apply: apply, value: value}
	}

	turbulences := make([]string, len(models.Turbulences))
	turbulenceLabels := make([]string, len(models.Turbulences))
	for i, t := range models.Turbulences {
		turbulences[i] = string(t)
		turbulenceLabels[i] = display.TurbulenceLabel(t)
	}
	ratings := []string{"0", "1", "2", "3", "4", "5"}
	scoreLabels := []string{"-", "1", "2", "3", "4", "5"}

	m.fields = []*formField{
		text("Origin", "Ethiopia Guji", 30, d.SetOrigin, func(s draft.Snapshot) string { return s.Origin }),
		text("Process", "Washed", 30, d.SetProcess, func(s draft.Snapshot) string { return s.Process }),
		choice("Roast", models.Roasts, nil, d.SetRoast, func(s draft.Snapshot) string { return s.Roast }),
		choice("Method", models.Methods, nil, d.SetMethod, func(s draft.Snapshot) string { return s.Method }),
		text("Coffee (g)", "15", 8, d.SetCoffee, func(s draft.Snapshot) string { return s.Coffee }),
		text("Water (g)", "250", 8, d.SetWater, func(s draft.Snapshot) string { return s.Water }),
		text("Grind", "medium-fine", 20, d.SetGrindSize, func(s draft.Snapshot) string { return s.GrindSize }),
		text("Temp (°C)", "93", 8, d.SetWaterTemperature, func(s draft.Snapshot) string { return s.WaterTemperature }),
		choice("Turbulence", turbulences, turbulenceLabels, d.SetTurbulence, func(s draft.Snapshot) string { return s.Turbulence.String() }),
		text("Bloom time", "0:45", 8, d.SetBloomTime, func(s draft.Snapshot) string { return s.BloomTime }),
		text("Total time", "3:00", 8, d.SetTotalTime, func(s draft.Snapshot) string { return s.TotalTime }),
		choice("Rating", ratings, nil, func(v string) { d.SetRating(atoi(v)) }, func(s draft.Snapshot) string { return strconv.Itoa(s.Rating) }),
	}
	for _, k := range draft.ScoreKinds {
		m.fields = append(m.fields, choice(
			capitalize(string(k)), scoreLabels, nil,
			func(v string) { d.SetScore(k, atoi(v)) },
			func(s draft.Snapshot) string {
				if v, ok := s.Scores[k].Get(); ok {
					return strconv.Itoa(v)
				}
				return "-"
			},
		))
	}
	m.fields = append(m.fields,
		text("Notes", "tasting notes", 40, d.SetNotes, func(s draft.Snapshot) string { return s.Notes }))

	m.syncFields()
}

func (m *BrewEditorModel) syncFields() {
	for _, f := range m.fields {
		f.sync(m.snap)
	}
}

// syncSteps resizes the step inputs to the recipe. Rows that already exist
// keep what the user typed.
func (m *BrewEditorModel) syncSteps() {
	steps := m.snap.Steps
	if len(m.steps) > len(steps) {
		m.steps = m.steps[:len(steps)]
	}
	for i := len(m.steps); i < len(steps); i++ {
		row := stepInputs{time: newInput(5, "m:ss"), water: newInput(6, "g")}
		row.time.SetValue(steps[i].Time)
		if steps[i].WaterAdded != 0 {
			row.water.SetValue(recipe.FormatWater(steps[i].WaterAdded))
		}
		m.steps = append(m.steps, row)
	}
}

func (m *BrewEditorModel) focusCount() int {
	return len(m.fields) + 2*len(m.steps)
}

// inRecipe reports whether focus is on a step cell and which one.
func (m *BrewEditorModel) inRecipe() (step, col int, ok bool) {
	i := m.focus - len(m.fields)
	if i < 0 {
		return 0, 0, false
	}
	return i / 2, i % 2, true
}

func (m *BrewEditorModel) setFocus(i int) tea.Cmd {
	n := m.focusCount()
	if n == 0 {
		return nil
	}
	m.focus = (i%n + n) % n

	for _, f := range m.fields {
		f.input.Blur()
	}
	for i := range m.steps {
		m.steps[i].time.Blur()
		m.steps[i].water.Blur()
	}

	if m.focus < len(m.fields) {
		if f := m.fields[m.focus]; f.kind == fieldText {
			return f.input.Focus()
		}
		return nil
	}
	step, col, _ := m.inRecipe()
	if col == 0 {
		return m.steps[step].time.Focus()
	}
	return m.steps[step].water.Focus()
}

func (m *BrewEditorModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case logLoadedMsg:
		if msg.err != nil {
			m.loadErr = msg.err
			m.env.log.Error("loading brew for edit", "err", msg.err)
			return nil
		}
		m.attach(draft.FromLog(msg.log, m.options()))
		return nil

	case latestLoadedMsg:
		if msg.err != nil {
			m.env.log.Warn("looking up latest brew", "err", msg.err)
			return nil
		}
		if msg.log != nil && m.draft != nil && !m.draft.Editing() {
			m.offerReuse(msg.log)
		}
		return nil

	case logSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.env.log.Error("saving brew", "err", msg.err)
			m.formErr = msg.err.Error()
			return statusCmd("✗ Save failed")
		}
		m.dirty = false
		m.env.log.Info("brew saved", "id", msg.log.ID, "created", msg.created, "pours", msg.log.RecipeSteps.PourCount())
		verb := "Updated"
		if msg.created {
			verb = "Logged"
		}
		return tea.Batch(
			statusCmd(fmt.Sprintf("✓ %s brew %s", verb, msg.log.Origin)),
			switchTo(brewDetailView, msg.log.ID),
		)

	case tea.KeyMsg:
		if !m.ready {
			if msg.String() == "esc" {
				return switchTo(brewListView, "")
			}
			return nil
		}
		if m.confirm.Active() {
			return m.confirm.Update(msg)
		}
		return m.handleKey(msg)
	}
	return nil
}

func (m *BrewEditorModel) offerReuse(last *models.Log) {
	details := []string{}
	if last.Process != "" {
		details = append(details, "Process: "+last.Process)
	}
	if last.Roast != "" {
		details = append(details, "Roast: "+last.Roast)
	}
	m.confirm.Show(ConfirmationConfig{
		Title:    "Same beans as last time?",
		Message:  fmt.Sprintf("Reuse %s from %s", last.Origin, last.BrewedAt.Local().Format("Jan 2")),
		Details:  details,
		Type:     ConfirmTypeDialog,
		YesLabel: "reuse",
		NoLabel:  "start fresh",
		Width:    56,
	}, func() tea.Cmd {
		m.draft.ReuseFrom(last)
		m.syncFields()
		return statusCmd("Reusing " + last.Origin)
	}, nil)
}

func (m *BrewEditorModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+s":
		return m.save()

	case "esc":
		back := switchTo(brewListView, "")
		if m.draft.Editing() {
			back = switchTo(brewDetailView, m.draft.ID())
		}
		if !m.dirty {
			return back
		}
		m.confirm.ShowInline("Discard changes to this brew?", true, func() tea.Cmd { return back }, nil)
		return nil

	case "tab", "down":
		return m.setFocus(m.focus + 1)
	case "shift+tab", "up":
		return m.setFocus(m.focus - 1)
	}

	if _, _, ok := m.inRecipe(); ok {
		switch msg.String() {
		case "+", "=":
			return m.resizeRecipe(m.snap.PourCount + 1)
		case "-":
			return m.resizeRecipe(m.snap.PourCount - 1)
		}
		return m.updateStepInput(msg)
	}

	f := m.fields[m.focus]
	if f.kind == fieldChoice {
		switch msg.String() {
		case "right", "l", " ":
			f.choice = (f.choice + 1) % len(f.choices)
			f.apply(f.current())
		case "left", "h":
			f.choice = (f.choice - 1 + len(f.choices)) % len(f.choices)
			f.apply(f.current())
		}
		return nil
	}

	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if v := f.input.Value(); v != before {
		f.apply(v)
		m.formErr = ""
	}
	return cmd
}

func (m *BrewEditorModel) resizeRecipe(pours int) tea.Cmd {
	step, col, _ := m.inRecipe()
	m.draft.SetPourCount(pours)
	m.syncSteps()
	step = min(step, len(m.steps)-1)
	return m.setFocus(len(m.fields) + step*2 + col)
}

func (m *BrewEditorModel) updateStepInput(msg tea.KeyMsg) tea.Cmd {
	step, col, _ := m.inRecipe()
	row := &m.steps[step]
	var cmd tea.Cmd
	if col == 0 {
		before := row.time.Value()
		row.time, cmd = row.time.Update(msg)
		if v := row.time.Value(); v != before {
			m.draft.SetStepTime(step, v)
		}
		return cmd
	}
	before := row.water.Value()
	row.water, cmd = row.water.Update(msg)
	if v := row.water.Value(); v != before {
		m.draft.SetStepWater(step, v)
	}
	return cmd
}

func (m *BrewEditorModel) save() tea.Cmd {
	if m.saving {
		return nil
	}
	l, err := m.draft.Build(time.Now())
	if err != nil {
		m.formErr = strings.TrimPrefix(err.Error(), draft.ErrInvalidDraft.Error()+": ")
		return statusCmd("✗ " + m.formErr)
	}
	m.saving = true
	m.formErr = ""
	return saveLogCmd(m.env.ctx, m.env.store, l)
}

func (m *BrewEditorModel) View() string {
	if m.loadErr != nil {
		return fmt.Sprintf("Error: Failed to load brew: %v\n\nPress 'Esc' to return", m.loadErr)
	}
	if !m.ready {
		return "Loading brew..."
	}

	title := "NEW BREW"
	if m.draft.Editing() {
		title = "EDIT BREW"
	}

	var b strings.Builder
	b.WriteString(renderHeader(m.width, title))
	b.WriteString("\n\n")

	if m.confirm.Active() && m.confirm.config.Type == ConfirmTypeDialog {
		b.WriteString(lipgloss.Place(m.width, max(m.height-10, 12), lipgloss.Center, lipgloss.Center, m.confirm.View()))
		return b.String()
	}

	form := m.renderForm()
	steps := m.renderRecipe()

	var body string
	if m.width >= 110 {
		half := (m.width - 8) / 2
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.pane(form, half, m.focus < len(m.fields)),
			" ",
			m.pane(steps, half, m.focus >= len(m.fields)),
		)
	} else {
		w := max(m.width-4, 40)
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.pane(form, w, m.focus < len(m.fields)),
			m.pane(steps, w, m.focus >= len(m.fields)),
		)
	}
	b.WriteString(body)
	b.WriteString("\n")

	switch {
	case m.confirm.Active():
		b.WriteString(ContentPaddingStyle.Render(m.confirm.View()))
	case m.formErr != "":
		b.WriteString(ContentPaddingStyle.Render(ErrorStyle.Render(m.formErr)))
	default:
		b.WriteString(HelpStyle.Render("tab/↑/↓ move • ←/→ change choice • +/- pours (in recipe) • ctrl+s save • esc back"))
	}
	return b.String()
}

func (m *BrewEditorModel) pane(content string, width int, active bool) string {
	style := InactiveBorderStyle
	if active {
		style = ActiveBorderStyle
	}
	return style.Width(width).Render(ContentPaddingStyle.Render(content))
}

func (m *BrewEditorModel) renderForm() string {
	var b strings.Builder
	b.WriteString(headingWithRule("DETAILS", 40))
	b.WriteString("\n\n")
	for i, f := range m.fields {
		label := LabelStyle.Render(f.label)
		if i == m.focus {
			label = FocusedLabelStyle.Render(f.label)
		}
		b.WriteString(label + " " + f.display())
		if i < len(m.fields)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *BrewEditorModel) renderRecipe() string {
	var b strings.Builder
	b.WriteString(headingWithRule(fmt.Sprintf("RECIPE (%d pours)", m.snap.PourCount), 40))
	b.WriteString("\n\n")
	b.WriteString(DimStyle.Render(fmt.Sprintf("%-8s %-6s %-7s %s", "STEP", "TIME", "WATER", "TOTAL")))
	b.WriteString("\n")

	focusStep, focusCol, inRecipe := m.inRecipe()
	for i, s := range m.snap.Steps {
		if i >= len(m.steps) {
			break
		}
		phase := fmt.Sprintf("%-8s", s.Phase)
		if inRecipe && i == focusStep {
			phase = FocusedLabelStyle.UnsetWidth().Render(phase)
		}
		timeCell := cell(m.steps[i].time.View(), 6, inRecipe && i == focusStep && focusCol == 0)
		waterCell := cell(m.steps[i].water.View(), 7, inRecipe && i == focusStep && focusCol == 1)
		fmt.Fprintf(&b, "%s %s %s %s\n", phase, timeCell, waterCell, recipe.FormatTotal(s.TotalWeight)+"g")
	}

	b.WriteString("\n")
	target := recipe.ParseAmount(m.snap.Water)
	total := m.snap.Steps.Total()
	fmt.Fprintf(&b, "Poured %sg of %sg\n", recipe.FormatTotal(total), recipe.FormatTotal(target))
	if m.snap.Ratio > 0 {
		fmt.Fprintf(&b, "Ratio  %s", calculator.FormatRatio(m.snap.Ratio))
	} else {
		b.WriteString("Ratio  -")
	}
	return b.String()
}

func cell(content string, width int, focused bool) string {
	style := lipgloss.NewStyle().Width(width)
	if focused {
		style = style.Underline(true)
	}
	return style.Render(content)
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
