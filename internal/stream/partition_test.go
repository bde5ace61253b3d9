package stream

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionSplitsByPredicate(t *testing.T) {
	evens, odds := Partition(FromSlice([]int{1, 2, 3, 4, 5, 6}), func(v int) bool { return v%2 == 0 })

	assert.Equal(t, []int{2, 4, 6}, Collect(evens))
	assert.Equal(t, []int{1, 3, 5}, Collect(odds))
}

func TestPartitionPreservesMultiset(t *testing.T) {
	src := []int{5, 1, 5, 2, 2, 9, 5}
	matched, rest := Partition(FromSlice(src), func(v int) bool { return v >= 5 })

	combined := append(Collect(matched), Collect(rest)...)
	sort.Ints(combined)

	want := append([]int(nil), src...)
	sort.Ints(want)
	assert.Equal(t, want, combined)
}

func TestPartitionOneSideDrainedFirst(t *testing.T) {
	// Draining one side fully buffers the other side's elements; they must
	// all still arrive, in order.
	src := []int{1, 2, 3, 4, 5, 6, 7, 8}
	evens, odds := Partition(FromSlice(src), func(v int) bool { return v%2 == 0 })

	assert.Equal(t, []int{2, 4, 6, 8}, Collect(evens))
	assert.Equal(t, []int{1, 3, 5, 7}, Collect(odds))
}

func TestPartitionAllOneSide(t *testing.T) {
	matched, rest := Partition(FromSlice([]int{1, 2, 3}), func(int) bool { return true })
	assert.Equal(t, []int{1, 2, 3}, Collect(matched))
	assert.Nil(t, Collect(rest))
}

func TestPartitionEmptySource(t *testing.T) {
	matched, rest := Partition(Empty[int](), func(int) bool { return true })
	assert.Nil(t, Collect(matched))
	assert.Nil(t, Collect(rest))
}
