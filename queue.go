// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package loopsync

import (
	"fmt"
)

// Queue is a FIFO with optional capacity and producer/consumer back-pressure.
// [NewPriorityQueue] and [NewLifoQueue] build the same Queue over a
// different internal container; everything but pop ordering is shared.
//
// With a bounded queue, a put against a full queue suspends the producer
// until a consumer frees a slot; a get against an empty queue suspends the
// consumer until a producer delivers. Capacity zero is a rendezvous queue:
// the container never holds an item, and every put pairs directly with a
// get.
//
// At any moment either the getter queue or the putter queue is empty:
// getters only accumulate while the container is empty, putters only while
// it is full.
type Queue[T any] struct {
	base
	kind    string
	items   container[T]
	getters []*waiter[getOutcome[T]]
	putters []pendingPut[T]
	maxsize int
	bounded bool
}

// pendingPut is a suspended producer: the item it wants to deliver and the
// waiter that completes its put.
type pendingPut[T any] struct {
	item T
	w    *waiter[bool]
}

// NewQueue creates a FIFO queue. It is unbounded unless [WithCapacity] is
// supplied.
func NewQueue[T any](loop Loop, opts ...Option) (*Queue[T], error) {
	return newQueue[T](loop, "Queue", &fifoContainer[T]{}, opts)
}

// NewPriorityQueue creates a queue that pops the least item first, per less.
// Entries are typically (priority, payload) pairs with less comparing the
// priority.
func NewPriorityQueue[T any](loop Loop, less func(a, b T) bool, opts ...Option) (*Queue[T], error) {
	if less == nil {
		return nil, &TypeError{Message: "loopsync: NewPriorityQueue requires an ordering function"}
	}
	return newQueue[T](loop, "PriorityQueue", &heapContainer[T]{h: itemHeap[T]{less: less}}, opts)
}

// NewLifoQueue creates a queue that pops the most recently added item first.
func NewLifoQueue[T any](loop Loop, opts ...Option) (*Queue[T], error) {
	return newQueue[T](loop, "LifoQueue", &lifoContainer[T]{}, opts)
}

func newQueue[T any](loop Loop, kind string, items container[T], opts []Option) (*Queue[T], error) {
	b, err := newBase(loop, opts)
	if err != nil {
		return nil, err
	}
	return &Queue[T]{
		base:    b,
		kind:    kind,
		items:   items,
		maxsize: b.opts.maxsize,
		bounded: b.opts.bounded,
	}, nil
}

// String returns a short diagnostic representation.
func (q *Queue[T]) String() string {
	return "<" + q.kind + q.format() + ">"
}

func (q *Queue[T]) format() string {
	var s string
	if q.bounded {
		s = fmt.Sprintf(" maxsize=%d", q.maxsize)
	} else {
		s = " unbounded"
	}
	if n := q.items.Len(); n > 0 {
		s += fmt.Sprintf(" size=%d", n)
	}
	if len(q.getters) > 0 {
		s += fmt.Sprintf(" getters[%d]", len(q.getters))
	}
	if len(q.putters) > 0 {
		s += fmt.Sprintf(" putters[%d]", len(q.putters))
	}
	return s
}

// Size returns the number of items in the container.
func (q *Queue[T]) Size() int {
	return q.items.Len()
}

// Empty reports whether the container holds no items.
func (q *Queue[T]) Empty() bool {
	return q.items.Len() == 0
}

// Full reports whether a put would suspend or fail. An unbounded queue is
// never full; a rendezvous queue always is.
func (q *Queue[T]) Full() bool {
	if !q.bounded {
		return false
	}
	return q.items.Len() >= q.maxsize
}

// Capacity returns the configured capacity. bounded is false for an
// unbounded queue, in which case n is meaningless.
func (q *Queue[T]) Capacity() (n int, bounded bool) {
	return q.maxsize, q.bounded
}

// GetterCount returns the number of suspended consumers, including any
// whose timeout has fired but which have not yet been pruned.
func (q *Queue[T]) GetterCount() int {
	return len(q.getters)
}

// PutterCount returns the number of suspended producers, including any
// whose timeout has fired but which have not yet been pruned.
func (q *Queue[T]) PutterCount() int {
	return len(q.putters)
}

func (q *Queue[T]) pruneExpiredGetters() {
	for len(q.getters) > 0 && q.getters[0].expired() {
		q.getters[0] = nil
		q.getters = q.getters[1:]
	}
}

func (q *Queue[T]) pruneExpiredPutters() {
	for len(q.putters) > 0 && q.putters[0].w.expired() {
		q.putters[0] = pendingPut[T]{}
		q.putters = q.putters[1:]
	}
}

// popGetter removes and returns the first suspended consumer, or nil.
func (q *Queue[T]) popGetter() *waiter[getOutcome[T]] {
	q.pruneExpiredGetters()
	if len(q.getters) == 0 {
		return nil
	}
	g := q.getters[0]
	q.getters[0] = nil
	q.getters = q.getters[1:]
	return g
}

// popPutter removes and returns the first suspended producer, reporting
// whether one existed.
func (q *Queue[T]) popPutter() (pendingPut[T], bool) {
	q.pruneExpiredPutters()
	if len(q.putters) == 0 {
		return pendingPut[T]{}, false
	}
	p := q.putters[0]
	q.putters[0] = pendingPut[T]{}
	q.putters = q.putters[1:]
	return p, true
}

// deliver hands item to a suspended consumer. The item passes through the
// container rather than directly, so the container's pop ordering applies
// even on the hand-off path.
func (q *Queue[T]) deliver(g *waiter[getOutcome[T]], item T) {
	q.items.Push(item)
	g.run(getOutcome[T]{value: q.items.Pop()})
}

// TryPut adds item without suspending, failing with [ErrFull] when no slot
// is free and no consumer is waiting.
func (q *Queue[T]) TryPut(item T) error {
	if g := q.popGetter(); g != nil {
		q.deliver(g, item)
		return nil
	}
	if q.Full() {
		return ErrFull
	}
	q.items.Push(item)
	return nil
}

// Put adds item, completing via callback. If a consumer is suspended, the
// item is handed to it and callback is scheduled on the next tick with
// ok == true. If the queue is full, the producer suspends until a slot
// frees or the configured timeout fires, and callback receives the outcome
// (false on timeout). Otherwise the item is stored and callback is
// scheduled on the next tick with ok == true.
//
// When a consumer frees a slot for a suspended producer, the producer's
// callback is deferred one extra loop turn past the consumer's own
// completion, so producers and consumers alternate strictly.
func (q *Queue[T]) Put(item T, callback func(ok bool), opts ...WaitOption) error {
	if callback == nil {
		return &TypeError{Message: "loopsync: Queue.Put requires a callback"}
	}
	cfg, err := resolveWaitOptions(opts)
	if err != nil {
		return err
	}
	if g := q.popGetter(); g != nil {
		q.deliver(g, item)
		q.nextTick(func() {
			callback(true)
		})
		return nil
	}
	if q.Full() {
		deferred := func(ok bool) {
			q.loop.ScheduleSoon(func() {
				callback(ok)
			})
		}
		q.putters = append(q.putters, pendingPut[T]{
			item: item,
			w:    newWaiter(&q.base, cfg, deferred, false),
		})
		return nil
	}
	q.items.Push(item)
	q.nextTick(func() {
		callback(true)
	})
	return nil
}

// TryGet removes and returns an item without suspending, failing with
// [ErrEmpty] when the container is empty and no producer is waiting. If a
// producer was suspended, its item enters the container, its waiter is woken
// on the next tick (so its callback runs on the tick after), and the popped
// head is returned.
func (q *Queue[T]) TryGet() (T, error) {
	if p, ok := q.popPutter(); ok {
		q.items.Push(p.item)
		q.loop.ScheduleSoon(func() {
			p.w.run(true)
		})
		return q.items.Pop(), nil
	}
	if q.items.Len() > 0 {
		return q.items.Pop(), nil
	}
	var zero T
	return zero, ErrEmpty
}

// Get removes an item, delivering it via callback. If an item is available
// (or a producer is suspended), callback is invoked inline with the item;
// a suspended producer's own completion then follows on later ticks.
// Otherwise the consumer suspends until a producer delivers or the
// configured timeout fires; a timed-out consumer receives the zero value
// and [ErrEmpty].
func (q *Queue[T]) Get(callback func(T, error), opts ...WaitOption) error {
	if callback == nil {
		return &TypeError{Message: "loopsync: Queue.Get requires a callback"}
	}
	cfg, err := resolveWaitOptions(opts)
	if err != nil {
		return err
	}
	if p, ok := q.popPutter(); ok {
		q.items.Push(p.item)
		item := q.items.Pop()
		runProtected(q.opts.logger, cfg.onPanic, func() {
			callback(item, nil)
		})
		p.w.run(true)
		return nil
	}
	if q.items.Len() > 0 {
		item := q.items.Pop()
		runProtected(q.opts.logger, cfg.onPanic, func() {
			callback(item, nil)
		})
		return nil
	}
	q.getters = append(q.getters, newWaiter(&q.base, cfg, func(out getOutcome[T]) {
		callback(out.value, out.err)
	}, getOutcome[T]{err: ErrEmpty}))
	return nil
}
