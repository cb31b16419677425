// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package loopsync

import (
	"container/heap"
)

// container is the storage a [Queue] is parametrized by. The queue variants
// differ only in push/pop ordering; suspension, timeout, and hand-off are
// identical, so the variants are constructions over this interface rather
// than distinct types.
type container[T any] interface {
	Len() int
	Push(T)
	Pop() T
}

// fifoContainer pops in insertion order.
type fifoContainer[T any] struct {
	items []T
}

func (c *fifoContainer[T]) Len() int {
	return len(c.items)
}

func (c *fifoContainer[T]) Push(v T) {
	c.items = append(c.items, v)
}

func (c *fifoContainer[T]) Pop() T {
	v := c.items[0]
	var zero T
	c.items[0] = zero
	c.items = c.items[1:]
	return v
}

// lifoContainer pops the most recently pushed item.
type lifoContainer[T any] struct {
	items []T
}

func (c *lifoContainer[T]) Len() int {
	return len(c.items)
}

func (c *lifoContainer[T]) Push(v T) {
	c.items = append(c.items, v)
}

func (c *lifoContainer[T]) Pop() T {
	n := len(c.items) - 1
	v := c.items[n]
	var zero T
	c.items[n] = zero
	c.items = c.items[:n]
	return v
}

// heapContainer pops the least item first, per the ordering function.
type heapContainer[T any] struct {
	h itemHeap[T]
}

func (c *heapContainer[T]) Len() int {
	return c.h.Len()
}

func (c *heapContainer[T]) Push(v T) {
	heap.Push(&c.h, v)
}

func (c *heapContainer[T]) Pop() T {
	return heap.Pop(&c.h).(T)
}

// itemHeap is a binary min-heap over a caller-supplied ordering.
type itemHeap[T any] struct {
	items []T
	less  func(a, b T) bool
}

// Implement heap.Interface for itemHeap
func (h *itemHeap[T]) Len() int           { return len(h.items) }
func (h *itemHeap[T]) Less(i, j int) bool { return h.less(h.items[i], h.items[j]) }
func (h *itemHeap[T]) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *itemHeap[T]) Push(x any) {
	h.items = append(h.items, x.(T))
}

func (h *itemHeap[T]) Pop() any {
	old := h.items
	n := len(old)
	x := old[n-1]
	var zero T
	old[n-1] = zero
	h.items = old[:n-1]
	return x
}

// countingContainer invokes a hook on every push; [JoinableQueue] uses it to
// track unfinished tasks, counting an item exactly once no matter which
// hand-off path carried it into the container.
type countingContainer[T any] struct {
	inner  container[T]
	onPush func()
}

func (c *countingContainer[T]) Len() int {
	return c.inner.Len()
}

func (c *countingContainer[T]) Push(v T) {
	c.inner.Push(v)
	c.onPush()
}

func (c *countingContainer[T]) Pop() T {
	return c.inner.Pop()
}
