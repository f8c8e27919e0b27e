package table

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Rule maps a single source character to a single replacement character.
type Rule struct {
	From rune `yaml:"from"`
	To   rune `yaml:"to"`
}

func (r Rule) String() string { return string(r.From) + "=" + string(r.To) }

// DefaultRules is the built-in leet-speak rule list.
var DefaultRules = []Rule{
	{'e', '3'},
	{'a', '4'}, {'a', '@'},
	{'o', '0'},
	{'i', '1'}, {'i', '!'},
	{'l', '1'},
	{'s', '5'}, {'s', '$'},
}

// Class is one source character together with its candidates. Candidates[0]
// is always Source.
type Class struct {
	Source     rune
	Candidates []rune
}

// Table is an immutable, ordered set of character classes.
type Table struct {
	classes []Class
	index   map[rune]int
	rules   []Rule
}

// New groups rules into classes ordered by first registration of each
// source character. Duplicate candidates are dropped.
func New(rules []Rule) *Table {
	t := &Table{index: make(map[rune]int)}
	for _, r := range rules {
		i, ok := t.index[r.From]
		if !ok {
			i = len(t.classes)
			t.index[r.From] = i
			t.classes = append(t.classes, Class{Source: r.From, Candidates: []rune{r.From}})
		}
		if containsRune(t.classes[i].Candidates, r.To) {
			continue
		}
		t.classes[i].Candidates = append(t.classes[i].Candidates, r.To)
		t.rules = append(t.rules, r)
	}
	return t
}

// Default returns a table built from DefaultRules.
func Default() *Table { return New(DefaultRules) }

// Classes returns a copy of the ordered class list.
func (t *Table) Classes() []Class {
	out := make([]Class, len(t.classes))
	for i, c := range t.classes {
		out[i] = Class{Source: c.Source, Candidates: append([]rune(nil), c.Candidates...)}
	}
	return out
}

// Rules returns the rules that contributed a candidate, in registration order.
func (t *Table) Rules() []Rule { return append([]Rule(nil), t.rules...) }

// Len reports the number of classes.
func (t *Table) Len() int { return len(t.classes) }

// Lookup returns the class index for source character r.
func (t *Table) Lookup(r rune) (int, bool) {
	i, ok := t.index[r]
	return i, ok
}

// Candidate returns candidate j of class i.
func (t *Table) Candidate(i, j int) rune { return t.classes[i].Candidates[j] }

// CandidateCount returns the number of candidates of class i.
func (t *Table) CandidateCount(i int) int { return len(t.classes[i].Candidates) }

// PlanCount is the product of candidate counts across all classes, saturating
// at math.MaxInt. An empty table has exactly one (trivial) plan.
func (t *Table) PlanCount() int {
	n := 1
	for _, c := range t.classes {
		k := len(c.Candidates)
		if n > math.MaxInt/k {
			return math.MaxInt
		}
		n *= k
	}
	return n
}

// ParseRule parses "a=4" or "a:4". Both sides must be exactly one character.
func ParseRule(s string) (Rule, error) {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, "=:")
	// "==4" / "::4" style rules map the separator itself
	if sep == 0 && len(s) > 1 && (s[1] == '=' || s[1] == ':') {
		sep = 1
	}
	if sep < 0 {
		return Rule{}, fmt.Errorf("invalid rule %q: expected from=to", s)
	}
	from, to := s[:sep], s[sep+1:]
	if utf8.RuneCountInString(from) != 1 || utf8.RuneCountInString(to) != 1 {
		return Rule{}, fmt.Errorf("invalid rule %q: both sides must be a single character", s)
	}
	f, _ := utf8.DecodeRuneInString(from)
	t, _ := utf8.DecodeRuneInString(to)
	return Rule{From: f, To: t}, nil
}

// ParseRules parses each entry with ParseRule, skipping blank entries.
func ParseRules(specs []string) ([]Rule, error) {
	var out []Rule
	for _, s := range specs {
		if strings.TrimSpace(s) == "" {
			continue
		}
		r, err := ParseRule(s)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func containsRune(rs []rune, r rune) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}
