// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package loopsync

import (
	"fmt"
)

// getOutcome is what an [AsyncResult] waiter delivers: the value on success,
// or [ErrTimeout] when the wait expired first.
type getOutcome[V any] struct {
	value V
	err   error
}

// AsyncResult is a one-shot slot carrying a value of type V. Like [Event] it
// wakes every waiter when set, but waiters receive the stored value, and the
// slot cannot be reset: it transitions unready to ready exactly once and is
// immutable thereafter. Late arrivals observe the value synchronously via
// [AsyncResult.TryGet].
type AsyncResult[V any] struct {
	base
	value   V
	waiters []*waiter[getOutcome[V]]
	ready   bool
}

// NewAsyncResult creates an unset AsyncResult.
func NewAsyncResult[V any](loop Loop, opts ...Option) (*AsyncResult[V], error) {
	b, err := newBase(loop, opts)
	if err != nil {
		return nil, err
	}
	return &AsyncResult[V]{base: b}, nil
}

// String returns a short diagnostic representation.
func (r *AsyncResult[V]) String() string {
	if r.ready {
		return fmt.Sprintf("<AsyncResult value=%v>", r.value)
	}
	return "<AsyncResult unset>"
}

// Ready reports whether the value has been set.
func (r *AsyncResult[V]) Ready() bool {
	return r.ready
}

// Set stores the value, marks the result ready, and runs every queued waiter
// in insertion order with the value. A second Set fails with [ErrAlreadySet]
// and leaves the stored value untouched.
func (r *AsyncResult[V]) Set(value V) error {
	if r.ready {
		return ErrAlreadySet
	}
	r.value = value
	r.ready = true
	waiters := r.waiters
	r.waiters = nil
	for _, w := range waiters {
		w.run(getOutcome[V]{value: value})
	}
	return nil
}

// TryGet returns the value synchronously, or [ErrNotReady] if it has not
// been set.
func (r *AsyncResult[V]) TryGet() (V, error) {
	if !r.ready {
		var zero V
		return zero, ErrNotReady
	}
	return r.value, nil
}

// Get registers callback to receive the value. If the result is already
// ready, callback is scheduled on the next loop tick with the value and a
// nil error. Otherwise the caller suspends until [AsyncResult.Set] or the
// configured timeout; a timed-out waiter receives the zero value and
// [ErrTimeout].
func (r *AsyncResult[V]) Get(callback func(V, error), opts ...WaitOption) error {
	if callback == nil {
		return &TypeError{Message: "loopsync: AsyncResult.Get requires a callback"}
	}
	cfg, err := resolveWaitOptions(opts)
	if err != nil {
		return err
	}
	if r.ready {
		value := r.value
		r.nextTick(func() {
			callback(value, nil)
		})
		return nil
	}
	r.waiters = append(r.waiters, newWaiter(&r.base, cfg, func(out getOutcome[V]) {
		callback(out.value, out.err)
	}, getOutcome[V]{err: ErrTimeout}))
	return nil
}
