package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	c := New()
	assert.Equal(t, DefaultRatio, c.Ratio())
	assert.Empty(t, c.Water())
	assert.Empty(t, c.Coffee())
}

func TestCalculator(t *testing.T) {
	tests := []struct {
		name       string
		apply      func(c *Calculator)
		wantWater  string
		wantCoffee string
		wantRatio  string
	}{
		{
			name:       "water derives coffee",
			apply:      func(c *Calculator) { c.SetWater("320") },
			wantWater:  "320",
			wantCoffee: "20.0",
			wantRatio:  "16.0",
		},
		{
			name:       "coffee derives water",
			apply:      func(c *Calculator) { c.SetCoffee("18") },
			wantWater:  "288.0",
			wantCoffee: "18",
			wantRatio:  "16.0",
		},
		{
			name: "ratio recomputes water from coffee",
			apply: func(c *Calculator) {
				c.SetCoffee("18")
				c.SetRatio("15")
			},
			wantWater:  "270.0",
			wantCoffee: "18",
			wantRatio:  "15",
		},
		{
			name: "lone dot becomes 0.",
			apply: func(c *Calculator) {
				c.SetCoffee("10")
				c.SetRatio(".")
			},
			wantWater:  "160.0",
			wantCoffee: "10",
			wantRatio:  "0.",
		},
		{
			name: "clearing water clears coffee",
			apply: func(c *Calculator) {
				c.SetWater("300")
				c.SetWater("")
			},
			wantWater:  "",
			wantCoffee: "",
			wantRatio:  "16.0",
		},
		{
			name: "clearing ratio clears water",
			apply: func(c *Calculator) {
				c.SetCoffee("15")
				c.SetRatio("")
			},
			wantWater:  "",
			wantCoffee: "15",
			wantRatio:  "",
		},
		{
			name: "unparsable water leaves coffee",
			apply: func(c *Calculator) {
				c.SetWater("320")
				c.SetWater("32x")
			},
			wantWater:  "32x",
			wantCoffee: "20.0",
			wantRatio:  "16.0",
		},
		{
			name: "zero ratio does not divide",
			apply: func(c *Calculator) {
				c.SetRatio("0")
				c.SetWater("300")
			},
			wantWater:  "300",
			wantCoffee: "",
			wantRatio:  "0",
		},
		{
			name:       "decimal comma",
			apply:      func(c *Calculator) { c.SetCoffee("12,5") },
			wantWater:  "200.0",
			wantCoffee: "12,5",
			wantRatio:  "16.0",
		},
		{
			name:       "thousands comma is not a dose",
			apply:      func(c *Calculator) { c.SetCoffee("1,000") },
			wantWater:  "",
			wantCoffee: "1,000",
			wantRatio:  "16.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			tt.apply(c)
			assert.Equal(t, tt.wantWater, c.Water(), "water")
			assert.Equal(t, tt.wantCoffee, c.Coffee(), "coffee")
			assert.Equal(t, tt.wantRatio, c.Ratio(), "ratio")
		})
	}
}

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "1:16.0", FormatRatio(16))
	assert.Equal(t, "1:16.7", FormatRatio(250.0/15))
	assert.Equal(t, "1:0.0", FormatRatio(0))
}
