package variant

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_Basics(t *testing.T) {
	s := New("cat", "Cat", "cat")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("cat"))
	assert.False(t, s.Has("CAT"))

	s.Add("CAT")
	s.Union(New("c4t", "cat"))
	assert.Equal(t, []string{"CAT", "Cat", "c4t", "cat"}, s.Sorted())
	assert.ElementsMatch(t, s.Sorted(), s.Slice())
}

func TestSet_Equal(t *testing.T) {
	assert.True(t, New("a", "b").Equal(New("b", "a")))
	assert.False(t, New("a", "b").Equal(New("a")))
	assert.False(t, New("a", "b").Equal(New("a", "c")))
	assert.True(t, New().Equal(Set{}))
}

func TestSharded_ConcurrentMergeMatchesUnion(t *testing.T) {
	want := New()
	parts := make([]Set, 32)
	for i := range parts {
		parts[i] = New()
		for j := 0; j < 50; j++ {
			// overlapping members across parts
			w := fmt.Sprintf("w%d", (i*7+j)%120)
			parts[i].Add(w)
			want.Add(w)
		}
	}

	for _, n := range []int{0, 1, 4, 16} {
		t.Run(fmt.Sprintf("shards_%d", n), func(t *testing.T) {
			sh := NewSharded(n)
			var wg sync.WaitGroup
			for _, p := range parts {
				wg.Add(1)
				go func(p Set) {
					defer wg.Done()
					sh.Merge(p)
				}(p)
			}
			wg.Wait()
			require.Equal(t, want.Len(), sh.Len())
			assert.True(t, want.Equal(sh.Set()))
		})
	}
}

func TestSharded_MergeIsIdempotent(t *testing.T) {
	sh := NewSharded(4)
	p := New("a", "b", "c")
	sh.Merge(p)
	sh.Merge(p)
	assert.Equal(t, 3, sh.Len())
}
