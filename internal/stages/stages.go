package stages

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/munge/munge/internal/plan"
	"github.com/munge/munge/internal/table"
	"github.com/munge/munge/internal/variant"
)

// ErrEmptyInput is returned for a word with no characters.
var ErrEmptyInput = errors.New("empty input word")

// Stage generates the variants of a single word.
type Stage interface {
	ID() string
	Generate(word string) (variant.Set, error)
}

const (
	IDIdentity     = "identity"
	IDSubstitution = "substitution"
	IDCase         = "case"
)

// IDs lists the built-in stage IDs in run order.
func IDs() []string {
	return []string{IDIdentity, IDSubstitution, IDCase}
}

// Default returns the built-in stages, with substitution plans drawn from t.
func Default(t *table.Table) []Stage {
	return []Stage{
		Identity{},
		NewSubstitution(t),
		Case{},
	}
}

// Identity emits the word unchanged.
type Identity struct{}

func (Identity) ID() string { return IDIdentity }

func (Identity) Generate(word string) (variant.Set, error) {
	if word == "" {
		return nil, ErrEmptyInput
	}
	return variant.New(word), nil
}

// Substitution emits the word under every substitution plan of its table.
type Substitution struct {
	applier *plan.Applier
}

func NewSubstitution(t *table.Table) *Substitution {
	return &Substitution{applier: plan.NewApplier(plan.NewExpander(t))}
}

func (*Substitution) ID() string { return IDSubstitution }

func (s *Substitution) Generate(word string) (variant.Set, error) {
	if word == "" {
		return nil, ErrEmptyInput
	}
	out := variant.New()
	s.applier.ApplyAll(word, out.Add)
	return out, nil
}

// Case emits the capitalization variants of the word.
type Case struct{}

func (Case) ID() string { return IDCase }

func (Case) Generate(word string) (variant.Set, error) {
	vs, err := CaseVariants(word)
	if err != nil {
		return nil, err
	}
	return variant.New(vs...), nil
}

// CaseVariants returns the word as-is, lower-cased, upper-cased, and with
// only its first character upper-cased (the rest kept as-is).
func CaseVariants(word string) ([]string, error) {
	if word == "" {
		return nil, ErrEmptyInput
	}
	return []string{
		word,
		mapCase(word, strings.ToLower, unicode.ToLower),
		mapCase(word, strings.ToUpper, unicode.ToUpper),
		capitalize(word),
	}, nil
}

// mapCase applies whole to valid UTF-8. Otherwise each rune is mapped on its
// own and invalid bytes are kept as-is, since strings.Map would replace them
// with U+FFFD.
func mapCase(word string, whole func(string) string, each func(rune) rune) string {
	if utf8.ValidString(word) {
		return whole(word)
	}
	var b strings.Builder
	b.Grow(len(word))
	for i := 0; i < len(word); {
		r, n := utf8.DecodeRuneInString(word[i:])
		if r == utf8.RuneError && n == 1 {
			b.WriteByte(word[i])
		} else {
			b.WriteRune(each(r))
		}
		i += n
	}
	return b.String()
}

func capitalize(word string) string {
	r, n := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return strings.ToUpper(word[:n]) + word[n:]
}

// Filter narrows stages by comma-separated enable/disable ID lists. An empty
// enable list keeps every stage. Unknown IDs are rejected.
func Filter(all []Stage, enable, disable string) ([]Stage, error) {
	known := map[string]bool{}
	for _, s := range all {
		known[s.ID()] = true
	}
	allowed, err := parseIDs(enable, known)
	if err != nil {
		return nil, err
	}
	blocked, err := parseIDs(disable, known)
	if err != nil {
		return nil, err
	}
	var out []Stage
	for _, s := range all {
		if len(allowed) > 0 && !allowed[s.ID()] {
			continue
		}
		if blocked[s.ID()] {
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, errors.New("no stages left after enable/disable filters")
	}
	return out, nil
}

func parseIDs(list string, known map[string]bool) (map[string]bool, error) {
	ids := map[string]bool{}
	for _, id := range strings.Split(list, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if !known[id] {
			return nil, fmt.Errorf("unknown stage %q", id)
		}
		ids[id] = true
	}
	return ids, nil
}
