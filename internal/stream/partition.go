package stream

import "sync"

// Partition splits a source into two disjoint views by a predicate
// evaluated once per element. Elements for which the predicate is true
// appear on the first view, all others on the second; relative order is
// preserved within each view. Unlike Broadcast, every element is routed to
// exactly one view.
//
// The split is lazy: pulling one view advances the shared source, queueing
// elements that belong to the other side. If one view is never drained its
// queue grows with every element routed to it, so callers should drain both
// views (in either order). Views are safe for use from separate goroutines.
func Partition[T any](src Stream[T], pred func(T) bool) (matched, rest Stream[T]) {
	p := &partitioner[T]{src: src, pred: pred}
	return &partitionView[T]{p: p, side: 0}, &partitionView[T]{p: p, side: 1}
}

type partitioner[T any] struct {
	mu      sync.Mutex
	src     Stream[T]
	pred    func(T) bool
	pending [2]queue[T]
	done    bool
}

type partitionView[T any] struct {
	p    *partitioner[T]
	side int
}

func (v *partitionView[T]) Next() (T, bool) {
	p := v.p
	p.mu.Lock()
	defer p.mu.Unlock()

	for {
		if item, ok := p.pending[v.side].popFront(); ok {
			return item, true
		}
		if p.done {
			var zero T
			return zero, false
		}
		item, ok := p.src.Next()
		if !ok {
			p.done = true
			continue
		}
		side := 1
		if p.pred(item) {
			side = 0
		}
		if side == v.side {
			return item, true
		}
		p.pending[side].pushBack(item)
	}
}

// queue is a FIFO over a slice with a moving head, compacted once the
// consumed prefix dominates the backing array.
type queue[T any] struct {
	items []T
	head  int
}

func (q *queue[T]) pushBack(item T) {
	q.items = append(q.items, item)
}

func (q *queue[T]) popFront() (T, bool) {
	if q.head >= len(q.items) {
		var zero T
		return zero, false
	}
	item := q.items[q.head]
	var zero T
	q.items[q.head] = zero
	q.head++
	if q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		for i := n; i < len(q.items); i++ {
			q.items[i] = zero
		}
		q.items = q.items[:n]
		q.head = 0
	}
	return item, true
}
