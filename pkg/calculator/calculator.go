// Package calculator converts between coffee dose, water and brew ratio.
// All three values are kept as the text the user typed; editing one of them
// rewrites its counterpart with one decimal place.
package calculator

import (
	"fmt"

	"github.com/brewlog/brewlog-terminal/pkg/recipe"
)

// DefaultRatio is the water:coffee ratio a fresh calculator starts with.
const DefaultRatio = "16.0"

// Calculator holds the three linked fields.
type Calculator struct {
	water  string
	coffee string
	ratio  string
}

// New returns a calculator with empty amounts and the default ratio.
func New() *Calculator {
	return &Calculator{ratio: DefaultRatio}
}

func (c *Calculator) Water() string  { return c.water }
func (c *Calculator) Coffee() string { return c.coffee }
func (c *Calculator) Ratio() string  { return c.ratio }

// SetWater updates the water amount and derives the coffee dose from it.
// Clearing the water clears the dose.
func (c *Calculator) SetWater(text string) {
	c.water = text
	if text == "" {
		c.coffee = ""
		return
	}
	water, ok := parse(text)
	ratio, rok := parse(c.ratio)
	if ok && rok && ratio > 0 {
		c.coffee = format(water / ratio)
	}
}

// SetCoffee updates the dose and derives the water amount from it.
// Clearing the dose clears the water.
func (c *Calculator) SetCoffee(text string) {
	c.coffee = text
	if text == "" {
		c.water = ""
		return
	}
	c.recomputeWater()
}

// SetRatio updates the ratio and derives the water amount from the current
// dose. A lone "." is completed to "0." so it can still be typed into.
func (c *Calculator) SetRatio(text string) {
	if text == "." {
		c.ratio = "0."
		return
	}
	c.ratio = text
	if text == "" {
		c.water = ""
		return
	}
	c.recomputeWater()
}

func (c *Calculator) recomputeWater() {
	coffee, ok := parse(c.coffee)
	ratio, rok := parse(c.ratio)
	if ok && rok {
		c.water = format(coffee * ratio)
	}
}

// FormatRatio renders a ratio the way brew logs show it, e.g. "1:16.0".
func FormatRatio(r float64) string {
	return fmt.Sprintf("1:%.1f", r)
}

func format(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// parse distinguishes a real zero from text that does not parse.
func parse(text string) (float64, bool) {
	return recipe.ParseDecimal(text)
}
