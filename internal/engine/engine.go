package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/munge/munge/internal/stages"
	"github.com/munge/munge/internal/table"
	"github.com/munge/munge/internal/variant"
)

// Config controls table construction, stage selection, word filtering and
// parallelism for a batch run.
type Config struct {
	Level          int
	Rules          []table.Rule
	NoDefaultRules bool
	MaxPlans       int
	EnableStages   string
	DisableStages  string
	IncludeGlobs   string
	ExcludeGlobs   string
	SkipEmpty      bool
	Threads        int
	Progress       func()
}

// Result contains the variant set of a batch and basic statistics.
type Result struct {
	Variants  variant.Set
	Words     int
	Skipped   int
	Classes   int
	Plans     int
	Generated map[string]int
	Duration  time.Duration
}

// WordError reports which input word aborted a batch.
type WordError struct {
	Line int
	Word string
	Err  error
}

func (e *WordError) Error() string {
	return fmt.Sprintf("word %d %q: %v", e.Line, e.Word, e.Err)
}

func (e *WordError) Unwrap() error { return e.Err }

var ErrTooManyPlans = errors.New("substitution table expands to too many plans")

// Mutator runs an ordered list of stages over words.
type Mutator struct {
	// Threads caps concurrent words in MutateAll; <= 0 means GOMAXPROCS.
	Threads int
	// Progress, when set, is called once per finished word. Calls are
	// serialized.
	Progress func()

	stages     []stages.Stage
	generated  []atomic.Int64
	progressMu sync.Mutex
}

func NewMutator(st []stages.Stage) *Mutator {
	return &Mutator{
		stages:    st,
		generated: make([]atomic.Int64, len(st)),
	}
}

// Mutate returns the union of every stage's variants of word.
func (m *Mutator) Mutate(word string) (variant.Set, error) {
	if word == "" {
		return nil, stages.ErrEmptyInput
	}
	out := variant.New()
	for i, s := range m.stages {
		vs, err := s.Generate(word)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.ID(), err)
		}
		m.generated[i].Add(int64(vs.Len()))
		out.Union(vs)
	}
	return out, nil
}

// Generated reports, per stage ID, how many variants each stage produced
// before deduplication across stages and words.
func (m *Mutator) Generated() map[string]int {
	out := make(map[string]int, len(m.stages))
	for i, s := range m.stages {
		out[s.ID()] = int(m.generated[i].Load())
	}
	return out
}

// MutateAll mutates every word and returns the union of the results. The
// first failing word aborts the batch with a *WordError carrying its 1-based
// position in words.
func (m *Mutator) MutateAll(ctx context.Context, words []string) (variant.Set, error) {
	threads := m.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads == 1 || len(words) < 2 {
		return m.mutateSequential(ctx, words)
	}

	acc := variant.NewSharded(threads * 4)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i, w := range words {
		i, w := i, w
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			vs, err := m.Mutate(w)
			if err != nil {
				return &WordError{Line: i + 1, Word: w, Err: err}
			}
			acc.Merge(vs)
			m.progress()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return acc.Set(), nil
}

func (m *Mutator) mutateSequential(ctx context.Context, words []string) (variant.Set, error) {
	out := variant.New()
	for i, w := range words {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vs, err := m.Mutate(w)
		if err != nil {
			return nil, &WordError{Line: i + 1, Word: w, Err: err}
		}
		out.Union(vs)
		m.progress()
	}
	return out, nil
}

func (m *Mutator) progress() {
	if m.Progress == nil {
		return
	}
	m.progressMu.Lock()
	m.Progress()
	m.progressMu.Unlock()
}

// BuildTable returns the substitution table described by cfg: the rules for
// cfg.Level (unless NoDefaultRules) followed by cfg.Rules.
func BuildTable(cfg Config) (*table.Table, error) {
	var rules []table.Rule
	if !cfg.NoDefaultRules {
		level := cfg.Level
		if level == 0 {
			level = table.MinLevel
		}
		lr, err := table.ForLevel(level)
		if err != nil {
			return nil, err
		}
		rules = lr
	}
	rules = append(rules, cfg.Rules...)
	t := table.New(rules)
	if cfg.MaxPlans > 0 && t.PlanCount() > cfg.MaxPlans {
		return nil, fmt.Errorf("%w: %d classes, %d plans (max %d)", ErrTooManyPlans, t.Len(), t.PlanCount(), cfg.MaxPlans)
	}
	return t, nil
}

// Run builds the table and stages from cfg, filters words and mutates them.
func Run(ctx context.Context, cfg Config, words []string) (Result, error) {
	var res Result
	started := time.Now()

	t, err := BuildTable(cfg)
	if err != nil {
		return res, err
	}
	st, err := stages.Filter(stages.Default(t), cfg.EnableStages, cfg.DisableStages)
	if err != nil {
		return res, err
	}
	sel, err := selectWords(words, cfg)
	if err != nil {
		return res, err
	}

	m := NewMutator(st)
	m.Threads = cfg.Threads
	m.Progress = cfg.Progress
	set, err := m.MutateAll(ctx, sel.words)
	if err != nil {
		var we *WordError
		if errors.As(err, &we) {
			we.Line = sel.lines[we.Line-1]
		}
		return res, err
	}

	res.Variants = set
	res.Words = len(sel.words)
	res.Skipped = sel.skipped
	res.Classes = t.Len()
	res.Plans = t.PlanCount()
	res.Generated = m.Generated()
	res.Duration = time.Since(started)
	return res, nil
}

// Mutate runs the default stages over words with the built-in table.
func Mutate(ctx context.Context, words []string) (variant.Set, error) {
	res, err := Run(ctx, Config{Threads: 1}, words)
	if err != nil {
		return nil, err
	}
	return res.Variants, nil
}
