package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestCalculatorModel(t *testing.T) {
	tests := []struct {
		name       string
		keys       []tea.KeyMsg
		wantWater  string
		wantCoffee string
		wantRatio  string
	}{
		{
			name:       "typing water derives coffee",
			keys:       []tea.KeyMsg{runes("320")},
			wantWater:  "320",
			wantCoffee: "20.0",
			wantRatio:  "16.0",
		},
		{
			name:       "typing coffee derives water",
			keys:       []tea.KeyMsg{{Type: tea.KeyTab}, runes("18")},
			wantWater:  "288.0",
			wantCoffee: "18",
			wantRatio:  "16.0",
		},
		{
			name: "clearing water clears coffee",
			keys: []tea.KeyMsg{
				runes("32"),
				{Type: tea.KeyBackspace},
				{Type: tea.KeyBackspace},
			},
			wantWater:  "",
			wantCoffee: "",
			wantRatio:  "16.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewCalculatorModel()
			m.Init()
			for _, k := range tt.keys {
				m.Update(k)
			}
			if got := m.inputs[calcWater].Value(); got != tt.wantWater {
				t.Errorf("water = %q, want %q", got, tt.wantWater)
			}
			if got := m.inputs[calcCoffee].Value(); got != tt.wantCoffee {
				t.Errorf("coffee = %q, want %q", got, tt.wantCoffee)
			}
			if got := m.inputs[calcRatio].Value(); got != tt.wantRatio {
				t.Errorf("ratio = %q, want %q", got, tt.wantRatio)
			}
		})
	}
}

func TestCalculatorModel_EscReturns(t *testing.T) {
	m := NewCalculatorModel()
	sw, ok := exec(m.Update(tea.KeyMsg{Type: tea.KeyEsc})).(SwitchViewMsg)
	if !ok || sw.view != brewListView {
		t.Errorf("got %+v", sw)
	}
}
