// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package loopsync

import (
	stdlog "log"

	"github.com/joeycumines/logiface"
)

// waiter is the unit of suspension: a one-shot deferred callback, optionally
// armed with a timeout, owned by the wait queue of exactly one primitive.
//
// T is whatever the owning operation delivers to its callback. Construction
// arms the timeout (when configured) via the loop; whichever of timeout
// expiry and primitive signal occurs first consumes the callback, and the
// loser observes an expired waiter and does nothing. Expired waiters are
// pruned lazily from the heads of their queues, so embedding the timeout in
// the waiter keeps every wake path O(1).
type waiter[T any] struct {
	// callback is nil once the waiter has fired, by either path. Clearing
	// the slot also drops the reference to the user closure, so a timed-out
	// waiter does not keep it alive past its deadline.
	callback func(T)
	onPanic  func(recovered any)
	log      *logiface.Logger[logiface.Event]
}

// newWaiter creates a waiter delivering to callback, arming a timeout per
// cfg. A timed-out waiter fires callback(timeoutArg).
func newWaiter[T any](b *base, cfg *waitOptions, callback func(T), timeoutArg T) *waiter[T] {
	w := &waiter[T]{
		callback: callback,
		onPanic:  cfg.onPanic,
		log:      b.opts.logger,
	}
	if cfg.hasTimeout {
		b.loop.ScheduleAfter(cfg.timeout, func() {
			w.run(timeoutArg)
		})
	}
	return w
}

// run fires the callback with v, unless the waiter already fired. The slot
// is cleared before the callback is invoked, so a callback that re-waits on
// the same primitive observes a consistent queue.
func (w *waiter[T]) run(v T) {
	if w.callback == nil {
		return
	}
	callback := w.callback
	w.callback = nil
	runProtected(w.log, w.onPanic, func() {
		callback(v)
	})
}

// expired reports whether the callback slot is empty (fired or timed out).
func (w *waiter[T]) expired() bool {
	return w.callback == nil
}

// runProtected invokes fn, routing any panic to the handler captured when
// the wait began, falling back to logging. Nothing escapes into the
// signaler: one signal may wake many waiters and a faulty one must not
// prevent the rest.
func runProtected(log *logiface.Logger[logiface.Event], onPanic func(recovered any), fn func()) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}
		if onPanic == nil {
			logCallbackPanic(log, recovered)
			return
		}
		defer func() {
			if again := recover(); again != nil {
				logCallbackPanic(log, again)
			}
		}()
		onPanic(recovered)
	}()
	fn()
}

func logCallbackPanic(log *logiface.Logger[logiface.Event], recovered any) {
	if log != nil {
		log.Err().
			Interface("recovered", recovered).
			Log("loopsync: panic in waiter callback")
		return
	}
	stdlog.Printf("ERROR: loopsync: panic in waiter callback: %v", recovered)
}

// nullary adapts a no-argument completion callback to the waiter machinery.
func nullary(callback func()) func(struct{}) {
	return func(struct{}) {
		callback()
	}
}
