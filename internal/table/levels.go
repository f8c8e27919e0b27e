package table

import (
	"errors"
	"fmt"
)

const (
	MinLevel = 1
	MaxLevel = 8
)

var ErrInvalidLevel = errors.New("level out of range")

// tiers[n] holds the rules added on top of the previous levels at level n+2.
var tiers = [][]Rule{
	{{'t', '7'}, {'b', '8'}},
	{{'g', '9'}, {'z', '2'}},
	{{'e', '€'}, {'o', '°'}},
	{{'a', '^'}, {'c', '('}},
	{{'t', '+'}, {'h', '#'}},
	{{'s', '§'}, {'x', '%'}},
	{{'g', '6'}, {'b', '6'}},
}

// CheckLevel returns ErrInvalidLevel unless level is within MinLevel..MaxLevel.
func CheckLevel(level int) error {
	if level < MinLevel || level > MaxLevel {
		return fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidLevel, level, MinLevel, MaxLevel)
	}
	return nil
}

// ForLevel returns DefaultRules plus every tier up to level. Level 1 is
// DefaultRules on its own.
func ForLevel(level int) ([]Rule, error) {
	if err := CheckLevel(level); err != nil {
		return nil, err
	}
	out := append([]Rule(nil), DefaultRules...)
	for _, tier := range tiers[:level-1] {
		out = append(out, tier...)
	}
	return out, nil
}
