// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package loopsync

import (
	"fmt"
)

// JoinableQueue is a FIFO [Queue] that additionally tracks unfinished tasks:
// every item entering the queue increments the count, every
// [JoinableQueue.TaskDone] decrements it, and [JoinableQueue.Join] completes
// once the count reaches zero.
//
// Items are counted when they enter the internal container, so an item
// handed directly from a suspended producer to a consumer is still counted
// exactly once.
type JoinableQueue[T any] struct {
	*Queue[T]
	done       *Event
	unfinished int
}

// NewJoinableQueue creates a joinable FIFO queue. It is unbounded unless
// [WithCapacity] is supplied.
func NewJoinableQueue[T any](loop Loop, opts ...Option) (*JoinableQueue[T], error) {
	jq := &JoinableQueue[T]{}
	q, err := newQueue[T](loop, "JoinableQueue", &countingContainer[T]{
		inner:  &fifoContainer[T]{},
		onPush: jq.notePut,
	}, opts)
	if err != nil {
		return nil, err
	}
	done, err := NewEvent(loop, opts...)
	if err != nil {
		return nil, err
	}
	done.Set()
	jq.Queue = q
	jq.done = done
	return jq, nil
}

// String returns a short diagnostic representation.
func (q *JoinableQueue[T]) String() string {
	s := "<JoinableQueue" + q.format()
	if q.unfinished > 0 {
		s += fmt.Sprintf(" tasks=%d", q.unfinished)
	}
	return s + ">"
}

// notePut records an item entering the container.
func (q *JoinableQueue[T]) notePut() {
	q.unfinished++
	q.done.Clear()
}

// UnfinishedTasks returns the number of items put that have not yet been
// acknowledged via [JoinableQueue.TaskDone].
func (q *JoinableQueue[T]) UnfinishedTasks() int {
	return q.unfinished
}

// TaskDone records that a formerly gotten item has been fully processed.
// Consumers call it once per item. When the count of unfinished tasks
// reaches zero, every suspended [JoinableQueue.Join] caller is woken.
// Calling it more times than items were put fails with a [*RangeError].
func (q *JoinableQueue[T]) TaskDone() error {
	if q.unfinished <= 0 {
		return &RangeError{Message: "loopsync: TaskDone called too many times"}
	}
	q.unfinished--
	if q.unfinished == 0 {
		q.done.Set()
	}
	return nil
}

// Join registers callback to run once every item put has been acknowledged
// via [JoinableQueue.TaskDone]. If no tasks are outstanding, callback is
// scheduled on the next loop tick.
//
// With a timeout, callback may run before the work drains; check
// [JoinableQueue.UnfinishedTasks] afterward to tell completion from
// expiry.
func (q *JoinableQueue[T]) Join(callback func(), opts ...WaitOption) error {
	if callback == nil {
		return &TypeError{Message: "loopsync: JoinableQueue.Join requires a callback"}
	}
	if _, err := resolveWaitOptions(opts); err != nil {
		return err
	}
	if q.unfinished == 0 {
		q.nextTick(callback)
		return nil
	}
	return q.done.Wait(callback, opts...)
}
