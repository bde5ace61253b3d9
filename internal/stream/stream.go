// Package stream provides pull-based sequence primitives for single-pass
// processing: a Stream abstraction, a broadcast (tee) fan-out, a lazy
// two-way partition, and functional combinators over streams.
//
// A Stream is consumed exactly once. Broadcast and Partition are the only
// primitives that let more than one consumer observe a single source.
package stream

// Stream is a pull-based sequence of elements. Next returns the next
// element and true, or the zero value and false once the stream is
// exhausted. After the first false, all subsequent calls return false.
type Stream[T any] interface {
	Next() (T, bool)
}

// Func adapts a function to the Stream interface.
type Func[T any] func() (T, bool)

// Next implements Stream.
func (f Func[T]) Next() (T, bool) { return f() }

type sliceStream[T any] struct {
	items []T
	pos   int
}

func (s *sliceStream[T]) Next() (T, bool) {
	if s.pos >= len(s.items) {
		var zero T
		return zero, false
	}
	item := s.items[s.pos]
	s.pos++
	return item, true
}

// FromSlice returns a stream over the given slice. The slice is not copied.
func FromSlice[T any](items []T) Stream[T] {
	return &sliceStream[T]{items: items}
}

// Empty returns a stream with no elements.
func Empty[T any]() Stream[T] {
	return &sliceStream[T]{}
}

// Collect drains a stream into a slice.
func Collect[T any](s Stream[T]) []T {
	var out []T
	for {
		item, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, item)
	}
}

// Fold reduces a stream to a single value using the reducer function.
func Fold[T, U any](s Stream[T], initial U, reducer func(U, T) U) U {
	acc := initial
	for {
		item, ok := s.Next()
		if !ok {
			return acc
		}
		acc = reducer(acc, item)
	}
}

// Map applies fn to every element of the source stream.
func Map[T, U any](s Stream[T], fn func(T) U) Stream[U] {
	return Func[U](func() (U, bool) {
		item, ok := s.Next()
		if !ok {
			var zero U
			return zero, false
		}
		return fn(item), true
	})
}

// Filter yields only the elements for which pred returns true.
func Filter[T any](s Stream[T], pred func(T) bool) Stream[T] {
	return Func[T](func() (T, bool) {
		for {
			item, ok := s.Next()
			if !ok {
				var zero T
				return zero, false
			}
			if pred(item) {
				return item, true
			}
		}
	})
}

// Take yields at most n elements from the source stream.
func Take[T any](s Stream[T], n int) Stream[T] {
	remaining := n
	return Func[T](func() (T, bool) {
		if remaining <= 0 {
			var zero T
			return zero, false
		}
		remaining--
		return s.Next()
	})
}

// Drop skips the first n elements of the source stream and yields the rest.
func Drop[T any](s Stream[T], n int) Stream[T] {
	dropped := false
	return Func[T](func() (T, bool) {
		if !dropped {
			dropped = true
			for i := 0; i < n; i++ {
				if _, ok := s.Next(); !ok {
					break
				}
			}
		}
		return s.Next()
	})
}

// Chunk groups the source stream into batches of up to size elements.
// The final chunk may be shorter.
func Chunk[T any](s Stream[T], size int) Stream[[]T] {
	return Func[[]T](func() ([]T, bool) {
		chunk := make([]T, 0, size)
		for len(chunk) < size {
			item, ok := s.Next()
			if !ok {
				break
			}
			chunk = append(chunk, item)
		}
		if len(chunk) == 0 {
			return nil, false
		}
		return chunk, true
	})
}

// Count drains a stream and returns the number of elements it produced.
func Count[T any](s Stream[T]) int {
	n := 0
	for {
		if _, ok := s.Next(); !ok {
			return n
		}
		n++
	}
}
