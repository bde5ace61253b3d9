package stats

import (
	"container/heap"
	"sort"
)

// TopK keeps the k largest string-keyed entries seen, using a bounded
// min-heap so memory stays O(k) regardless of how many keys are offered.
// Ordering on equal values is deterministic: the ascending key wins, both
// for retention and in the final ranking.
type TopK[V any] struct {
	k    int
	less func(a, b V) bool
	h    entryHeap[V]
}

// Entry is one ranked key/value pair.
type Entry[V any] struct {
	Key   string
	Value V
}

// NewTopK creates a Top-K selector for k entries ordered by less on values.
func NewTopK[V any](k int, less func(a, b V) bool) *TopK[V] {
	return &TopK[V]{
		k:    k,
		less: less,
		h:    entryHeap[V]{less: less},
	}
}

// Offer considers a key/value pair for the top set.
func (t *TopK[V]) Offer(key string, value V) {
	if t.k <= 0 {
		return
	}
	e := Entry[V]{Key: key, Value: value}
	if t.h.Len() < t.k {
		heap.Push(&t.h, e)
		return
	}
	if t.h.beats(e, t.h.entries[0]) {
		t.h.entries[0] = e
		heap.Fix(&t.h, 0)
	}
}

// Ranking returns the retained entries sorted by descending value, ties
// broken by ascending key.
func (t *TopK[V]) Ranking() []Entry[V] {
	out := make([]Entry[V], len(t.h.entries))
	copy(out, t.h.entries)
	sort.Slice(out, func(i, j int) bool {
		return t.h.beats(out[i], out[j])
	})
	return out
}

// entryHeap is a min-heap whose root is the weakest retained entry.
type entryHeap[V any] struct {
	entries []Entry[V]
	less    func(a, b V) bool
}

// beats reports whether a outranks b: larger value, or equal value and
// lexicographically smaller key.
func (h *entryHeap[V]) beats(a, b Entry[V]) bool {
	if h.less(a.Value, b.Value) {
		return false
	}
	if h.less(b.Value, a.Value) {
		return true
	}
	return a.Key < b.Key
}

func (h *entryHeap[V]) Len() int { return len(h.entries) }

func (h *entryHeap[V]) Less(i, j int) bool {
	return h.beats(h.entries[j], h.entries[i])
}

func (h *entryHeap[V]) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
}

func (h *entryHeap[V]) Push(x any) {
	h.entries = append(h.entries, x.(Entry[V]))
}

func (h *entryHeap[V]) Pop() any {
	old := h.entries
	n := len(old)
	e := old[n-1]
	h.entries = old[:n-1]
	return e
}
