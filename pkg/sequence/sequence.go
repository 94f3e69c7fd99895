// Package sequence provides a small chainable iterator over iter.Seq.
package sequence

import (
	"iter"
	"sort"
)

// Iterator is a generic, immutable, chainable iterator for any type T.
// Chained steps are lazy; only Collect, Count, Find and Each traverse.
type Iterator[T any] struct {
	seq iter.Seq[T]
}

// From creates an Iterator over a slice.
func From[T any](data []T) *Iterator[T] {
	return FromSeq(func(yield func(T) bool) {
		for _, v := range data {
			if !yield(v) {
				return
			}
		}
	})
}

// FromMap creates an Iterator over a map's values. Traversal order follows
// Go map iteration and is not deterministic; use Sort when order matters.
func FromMap[T any, K comparable](data map[K]T) *Iterator[T] {
	return FromSeq(func(yield func(T) bool) {
		for _, v := range data {
			if !yield(v) {
				return
			}
		}
	})
}

// FromSeq wraps an existing iter.Seq.
func FromSeq[T any](seq iter.Seq[T]) *Iterator[T] {
	return &Iterator[T]{seq: seq}
}

// Seq exposes the underlying sequence for direct ranging.
func (i *Iterator[T]) Seq() iter.Seq[T] {
	return i.seq
}

// Filter keeps only elements satisfying pred.
func (i *Iterator[T]) Filter(pred func(T) bool) *Iterator[T] {
	return FromSeq(func(yield func(T) bool) {
		i.seq(func(v T) bool {
			if pred(v) {
				return yield(v)
			}
			return true
		})
	})
}

// Sort returns a new Iterator with elements ordered by less. Sorting is
// eager: the source is collected first.
func (i *Iterator[T]) Sort(less func(a, b T) bool) *Iterator[T] {
	data := i.Collect()
	sort.SliceStable(data, func(a, b int) bool {
		return less(data[a], data[b])
	})
	return From(data)
}

// Collect exhausts the iterator and returns all elements.
func (i *Iterator[T]) Collect() []T {
	var out []T
	i.seq(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Count exhausts the iterator and returns the number of elements.
func (i *Iterator[T]) Count() int {
	n := 0
	i.seq(func(T) bool {
		n++
		return true
	})
	return n
}

// Find returns the first element matching pred.
func (i *Iterator[T]) Find(pred func(T) bool) (T, bool) {
	var found T
	ok := false
	i.seq(func(v T) bool {
		if pred(v) {
			found = v
			ok = true
			return false
		}
		return true
	})
	return found, ok
}

// Each applies action to every element.
func (i *Iterator[T]) Each(action func(T)) {
	i.seq(func(v T) bool {
		action(v)
		return true
	})
}
