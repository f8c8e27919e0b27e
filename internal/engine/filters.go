package engine

import (
	"fmt"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

type selection struct {
	words   []string
	lines   []int
	skipped int
}

// selectWords applies the skip-empty and glob filters, remembering each kept
// word's 1-based position in the input. Whitespace-only words are words and
// are not skipped.
func selectWords(words []string, cfg Config) (selection, error) {
	includes, err := parseGlobsList(cfg.IncludeGlobs)
	if err != nil {
		return selection{}, err
	}
	excludes, err := parseGlobsList(cfg.ExcludeGlobs)
	if err != nil {
		return selection{}, err
	}
	sel := selection{
		words: make([]string, 0, len(words)),
		lines: make([]int, 0, len(words)),
	}
	for i, w := range words {
		if cfg.SkipEmpty && w == "" {
			sel.skipped++
			continue
		}
		if w != "" && !allowedByGlobs(w, includes, excludes) {
			sel.skipped++
			continue
		}
		sel.words = append(sel.words, w)
		sel.lines = append(sel.lines, i+1)
	}
	return sel, nil
}

// allowedByGlobs returns true if word matches at least one include glob (when
// any are given) and no exclude glob.
func allowedByGlobs(word string, includes, excludes []string) bool {
	if len(includes) > 0 && !matchAnyGlob(word, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(word, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob %q", p)
		}
		out = append(out, p)
	}
	return out, nil
}

func matchAnyGlob(word string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, word); ok {
			return true
		}
	}
	return false
}
