package stream

import (
	"fmt"
	"sync"
)

// Broadcast fans a single-consumption source out into n independent views
// of the identical element sequence. Every element of the source appears in
// every view exactly once, in source order. Views may be consumed out of
// lock-step; elements already read by some views but not yet by the slowest
// one are buffered, so memory cost is proportional to the lag of the
// slowest view. Views are safe for use from separate goroutines.
func Broadcast[T any](src Stream[T], n int) ([]Stream[T], error) {
	if n < 1 {
		return nil, fmt.Errorf("broadcast requires at least 1 view, got %d", n)
	}
	b := &broadcaster[T]{
		src: src,
		pos: make([]int, n),
	}
	views := make([]Stream[T], n)
	for i := range views {
		views[i] = &broadcastView[T]{b: b, id: i}
	}
	return views, nil
}

// broadcaster holds the shared sliding buffer between views. buf starts at
// absolute element index base; pos tracks the next absolute index each view
// will read. The mutex makes views safe for concurrent consumers and is the
// only shared mutable state in the fan-out.
type broadcaster[T any] struct {
	mu   sync.Mutex
	src  Stream[T]
	buf  []T
	base int
	pos  []int
	done bool
}

type broadcastView[T any] struct {
	b  *broadcaster[T]
	id int
}

func (v *broadcastView[T]) Next() (T, bool) {
	b := v.b
	b.mu.Lock()
	defer b.mu.Unlock()

	p := b.pos[v.id]
	for p >= b.base+len(b.buf) {
		if b.done {
			var zero T
			return zero, false
		}
		item, ok := b.src.Next()
		if !ok {
			b.done = true
			var zero T
			return zero, false
		}
		b.buf = append(b.buf, item)
	}

	item := b.buf[p-b.base]
	b.pos[v.id] = p + 1
	b.compact()
	return item, true
}

// compact discards buffered elements already consumed by every view. To
// amortize the copy it only fires once the consumed prefix covers at least
// half the buffer.
func (b *broadcaster[T]) compact() {
	min := b.pos[0]
	for _, p := range b.pos[1:] {
		if p < min {
			min = p
		}
	}
	consumed := min - b.base
	if consumed <= 0 || consumed*2 < len(b.buf) {
		return
	}
	remaining := copy(b.buf, b.buf[consumed:])
	for i := remaining; i < len(b.buf); i++ {
		var zero T
		b.buf[i] = zero
	}
	b.buf = b.buf[:remaining]
	b.base = min
}
