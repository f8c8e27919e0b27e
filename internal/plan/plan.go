package plan

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/munge/munge/internal/table"
)

// Plan holds, for class i of a table, the index of the chosen candidate.
type Plan []int

// IsIdentity reports whether every class keeps its source character.
func (p Plan) IsIdentity() bool {
	for _, c := range p {
		if c != 0 {
			return false
		}
	}
	return true
}

// Expand builds every plan for t by folding over the classes. With no
// classes the result is a single empty plan.
func Expand(t *table.Table) []Plan {
	n := t.Len()
	plans := []Plan{make(Plan, 0, n)}
	for i := 0; i < n; i++ {
		k := t.CandidateCount(i)
		next := make([]Plan, 0, len(plans)*k)
		for j := 0; j < k; j++ {
			for _, p := range plans {
				q := make(Plan, len(p), n)
				copy(q, p)
				next = append(next, append(q, j))
			}
		}
		plans = next
	}
	return plans
}

// Expander memoizes Expand for one table. The returned plans are shared and
// must be treated as read-only.
type Expander struct {
	table *table.Table
	once  sync.Once
	plans []Plan
}

func NewExpander(t *table.Table) *Expander {
	return &Expander{table: t}
}

func (e *Expander) Table() *table.Table { return e.table }

func (e *Expander) Plans() []Plan {
	e.once.Do(func() { e.plans = Expand(e.table) })
	return e.plans
}

// Apply substitutes every character of word that belongs to a class with the
// candidate chosen by p. Each character is looked up against the original
// word only, so a replacement is never substituted again by a later class.
// Bytes that are not valid UTF-8 are copied through unchanged.
func Apply(word string, t *table.Table, p Plan) string {
	var b strings.Builder
	b.Grow(len(word))
	for i := 0; i < len(word); {
		r, n := utf8.DecodeRuneInString(word[i:])
		if r == utf8.RuneError && n == 1 {
			b.WriteByte(word[i])
			i++
			continue
		}
		if c, ok := t.Lookup(r); ok {
			b.WriteRune(t.Candidate(c, p[c]))
		} else {
			b.WriteString(word[i : i+n])
		}
		i += n
	}
	return b.String()
}

// Applier applies every plan of an Expander to words.
type Applier struct {
	exp *Expander
}

func NewApplier(e *Expander) *Applier { return &Applier{exp: e} }

// ApplyAll calls emit with the result of every plan applied to word. Plans
// that choose a replacement for a class absent from word would repeat an
// earlier result and are skipped.
func (a *Applier) ApplyAll(word string, emit func(string)) {
	t := a.exp.Table()
	present, found := presentClasses(word, t)
	if !found {
		emit(word)
		return
	}
	for _, p := range a.exp.Plans() {
		if !relevant(p, present) {
			continue
		}
		emit(Apply(word, t, p))
	}
}

func presentClasses(word string, t *table.Table) ([]bool, bool) {
	present := make([]bool, t.Len())
	found := false
	for i := 0; i < len(word); {
		r, n := utf8.DecodeRuneInString(word[i:])
		i += n
		if r == utf8.RuneError && n == 1 {
			continue
		}
		if c, ok := t.Lookup(r); ok {
			present[c] = true
			found = true
		}
	}
	return present, found
}

func relevant(p Plan, present []bool) bool {
	for i, c := range p {
		if c != 0 && !present[i] {
			return false
		}
	}
	return true
}
