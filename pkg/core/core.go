package core

import (
	"context"

	"github.com/munge/munge/internal/engine"
	"github.com/munge/munge/internal/table"
)

// Re-export selected internal types as a stable public API surface.
type Config = engine.Config
type Result = engine.Result
type Rule = table.Rule

// DefaultRules returns a copy of the built-in substitution rules.
func DefaultRules() []Rule { return append([]Rule(nil), table.DefaultRules...) }

// Run is the stable entrypoint for other programs.
func Run(ctx context.Context, cfg Config, words []string) (Result, error) {
	return engine.Run(ctx, cfg, words)
}

// Mutate returns the sorted variants of a single word under the built-in rules.
func Mutate(word string) ([]string, error) {
	return MutateAll([]string{word})
}

// MutateAll returns the sorted union of the variants of every word under the
// built-in rules.
func MutateAll(words []string) ([]string, error) {
	res, err := engine.Run(context.Background(), Config{}, words)
	if err != nil {
		return nil, err
	}
	return res.Variants.Sorted(), nil
}

// MutateWithRules is MutateAll with rules replacing the built-in table.
func MutateWithRules(rules []Rule, words []string) ([]string, error) {
	res, err := engine.Run(context.Background(), Config{NoDefaultRules: true, Rules: rules}, words)
	if err != nil {
		return nil, err
	}
	return res.Variants.Sorted(), nil
}
