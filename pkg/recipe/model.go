package recipe

import "slices"

// Model owns one recipe list for the lifetime of an edit session. It is
// single-writer: callers serialize mutations, and every mutator returns the
// complete updated list after recomputing totals.
type Model struct {
	steps     Steps
	maxPours  int
	version   uint64
	observers map[int]func(Steps)
	nextID    int
}

// Option configures a Model.
type Option func(*Model)

// WithMaxPours caps how far SetPourCount may grow the list. n <= 0 leaves
// the model unbounded.
func WithMaxPours(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.maxPours = n
		}
	}
}

// NewModel creates a model holding Initialize(pourCount).
func NewModel(pourCount int, opts ...Option) *Model {
	m := &Model{observers: make(map[int]func(Steps))}
	for _, opt := range opts {
		opt(m)
	}
	if m.maxPours > 0 && pourCount > m.maxPours {
		pourCount = m.maxPours
	}
	m.steps = Initialize(pourCount)
	return m
}

// FromSteps re-hydrates a model from a stored list. An empty list falls back
// to Initialize(defaultPourCount). Phases are relabelled by position and
// totals recomputed, so a stored list with stale totals is repaired.
func FromSteps(stored Steps, defaultPourCount int, opts ...Option) *Model {
	if len(stored) == 0 {
		return NewModel(defaultPourCount, opts...)
	}
	m := &Model{observers: make(map[int]func(Steps))}
	for _, opt := range opts {
		opt(m)
	}
	steps := stored.Clone()
	if len(steps) == 1 {
		// a bloom alone still needs its one pour
		steps = append(steps, PourStep{Phase: PourPhase(1)})
	}
	relabel(steps)
	Recompute(steps)
	m.steps = steps
	return m
}

// Steps returns a snapshot of the current list.
func (m *Model) Steps() Steps {
	return m.steps.Clone()
}

// PourCount returns the number of pours after the bloom.
func (m *Model) PourCount() int {
	return m.steps.PourCount()
}

// Version increments once per published snapshot.
func (m *Model) Version() uint64 {
	return m.version
}

// SetPourCount resizes the list to newCount pours. Counts below one are
// ignored. Growth appends empty pours; shrinking drops pours from the tail.
// Steps that survive keep their time and water.
func (m *Model) SetPourCount(newCount int) Steps {
	if newCount < 1 {
		return m.Steps()
	}
	if m.maxPours > 0 && newCount > m.maxPours {
		newCount = m.maxPours
	}
	target := newCount + 1
	if target == len(m.steps) {
		return m.Steps()
	}

	if target < len(m.steps) {
		m.steps = m.steps[:target:target]
	} else {
		for i := len(m.steps); i < target; i++ {
			m.steps = append(m.steps, PourStep{Phase: PourPhase(i)})
		}
	}
	Recompute(m.steps)
	m.publish()
	return m.Steps()
}

// SetStepWater sets the water added at index from user text. Text that does
// not parse counts as 0. An out-of-range index leaves the list untouched.
func (m *Model) SetStepWater(index int, amountText string) Steps {
	if index < 0 || index >= len(m.steps) {
		return m.Steps()
	}
	m.steps[index].WaterAdded = ParseAmount(amountText)
	Recompute(m.steps)
	m.publish()
	return m.Steps()
}

// SetStepTime stores the time label at index verbatim.
func (m *Model) SetStepTime(index int, timeText string) Steps {
	if index < 0 || index >= len(m.steps) {
		return m.Steps()
	}
	m.steps[index].Time = timeText
	m.publish()
	return m.Steps()
}

// Reset replaces the list with Initialize(pourCount).
func (m *Model) Reset(pourCount int) Steps {
	if m.maxPours > 0 && pourCount > m.maxPours {
		pourCount = m.maxPours
	}
	m.steps = Initialize(pourCount)
	m.publish()
	return m.Steps()
}

// Subscribe registers fn to receive every new snapshot. The returned func
// removes the subscription.
func (m *Model) Subscribe(fn func(Steps)) (cancel func()) {
	id := m.nextID
	m.nextID++
	m.observers[id] = fn
	return func() { delete(m.observers, id) }
}

func (m *Model) publish() {
	m.version++
	if len(m.observers) == 0 {
		return
	}
	ids := make([]int, 0, len(m.observers))
	for id := range m.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := m.observers[id]; ok {
			fn(m.Steps())
		}
	}
}

func relabel(steps Steps) {
	for i := range steps {
		if i == 0 {
			steps[i].Phase = BloomPhase
			continue
		}
		steps[i].Phase = PourPhase(i)
	}
}
