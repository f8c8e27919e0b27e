// Package variant provides the deduplicated string sets produced by the
// mutation engine.
package variant

import (
	"sort"
	"sync"

	xxhash "github.com/cespare/xxhash/v2"
)

// Set is an unordered collection of unique strings.
type Set map[string]struct{}

func New(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s Set) Add(w string) { s[w] = struct{}{} }

func (s Set) Has(w string) bool {
	_, ok := s[w]
	return ok
}

func (s Set) Len() int { return len(s) }

// Union adds every member of o to s.
func (s Set) Union(o Set) {
	for w := range o {
		s[w] = struct{}{}
	}
}

// Slice returns the members in unspecified order.
func (s Set) Slice() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	return out
}

// Sorted returns the members in byte-wise ascending order.
func (s Set) Sorted() []string {
	out := s.Slice()
	sort.Strings(out)
	return out
}

func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for w := range s {
		if _, ok := o[w]; !ok {
			return false
		}
	}
	return true
}

type shard struct {
	mu  sync.Mutex
	set Set
}

// Sharded is a Set safe for concurrent merges. Members are spread across
// shards by xxhash so that merges of unrelated words rarely contend.
type Sharded struct {
	shards []*shard
}

// NewSharded returns a set with n shards; n < 1 means one shard.
func NewSharded(n int) *Sharded {
	if n < 1 {
		n = 1
	}
	s := &Sharded{shards: make([]*shard, n)}
	for i := range s.shards {
		s.shards[i] = &shard{set: Set{}}
	}
	return s
}

func (s *Sharded) shardFor(w string) int {
	return int(xxhash.Sum64String(w) % uint64(len(s.shards)))
}

// Merge adds every member of o.
func (s *Sharded) Merge(o Set) {
	if len(s.shards) == 1 {
		sh := s.shards[0]
		sh.mu.Lock()
		sh.set.Union(o)
		sh.mu.Unlock()
		return
	}
	buckets := make([][]string, len(s.shards))
	for w := range o {
		i := s.shardFor(w)
		buckets[i] = append(buckets[i], w)
	}
	for i, ws := range buckets {
		if len(ws) == 0 {
			continue
		}
		sh := s.shards[i]
		sh.mu.Lock()
		for _, w := range ws {
			sh.set[w] = struct{}{}
		}
		sh.mu.Unlock()
	}
}

func (s *Sharded) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		n += len(sh.set)
		sh.mu.Unlock()
	}
	return n
}

// Set flattens the shards into a single Set.
func (s *Sharded) Set() Set {
	out := make(Set, s.Len())
	for _, sh := range s.shards {
		sh.mu.Lock()
		out.Union(sh.set)
		sh.mu.Unlock()
	}
	return out
}
