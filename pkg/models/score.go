package models

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	MinScore = 1
	MaxScore = 5
)

// Score is an optional sensory rating in 1..5. The zero value is unset.
type Score struct {
	value int
	set   bool
}

// NewScore returns a set score, or an unset one when n is outside 1..5.
func NewScore(n int) Score {
	if n < MinScore || n > MaxScore {
		return Score{}
	}
	return Score{value: n, set: true}
}

// Get returns the value and whether it is set.
func (s Score) Get() (int, bool) {
	return s.value, s.set
}

func (s Score) IsZero() bool {
	return !s.set
}

func (s Score) String() string {
	if !s.set {
		return "-"
	}
	return fmt.Sprintf("%d", s.value)
}

func (s Score) MarshalYAML() (interface{}, error) {
	if !s.set {
		return nil, nil
	}
	return s.value, nil
}

func (s *Score) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*s = Score{}
		return nil
	}
	var n int
	if err := node.Decode(&n); err != nil {
		return fmt.Errorf("score: %w", err)
	}
	*s = NewScore(n)
	return nil
}

func (s Score) MarshalJSON() ([]byte, error) {
	if !s.set {
		return []byte("null"), nil
	}
	return json.Marshal(s.value)
}

func (s *Score) UnmarshalJSON(b []byte) error {
	var n *int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("score: %w", err)
	}
	if n == nil {
		*s = Score{}
		return nil
	}
	*s = NewScore(*n)
	return nil
}
