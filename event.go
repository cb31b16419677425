// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package loopsync

import (
	"fmt"
)

// Event is a latched boolean flag that one task can set to wake any number
// of others. It mirrors the interface of a thread event: [Event.Set] flips
// the flag and wakes every waiter, [Event.Clear] resets it, and [Event.Wait]
// completes immediately (on the next tick) while the flag is set.
//
// The flag persists across any number of set/clear cycles; waiters only
// accumulate while it is clear.
type Event struct {
	base
	waiters []*waiter[struct{}]
	flag    bool
}

// NewEvent creates an Event with the flag clear.
func NewEvent(loop Loop, opts ...Option) (*Event, error) {
	b, err := newBase(loop, opts)
	if err != nil {
		return nil, err
	}
	return &Event{base: b}, nil
}

// String returns a short diagnostic representation.
func (e *Event) String() string {
	state := "clear"
	if e.flag {
		state = "set"
	}
	return fmt.Sprintf("<Event %s>", state)
}

// IsSet reports whether the internal flag is set.
func (e *Event) IsSet() bool {
	return e.flag
}

// Ready is an alias for [Event.IsSet], for symmetry with
// [AsyncResult.Ready].
func (e *Event) Ready() bool {
	return e.flag
}

// Set flips the internal flag to true and runs every queued waiter in
// insertion order. The queue is detached before iteration, so a callback
// that waits again is enqueued afresh and is not woken in this round.
func (e *Event) Set() {
	e.flag = true
	waiters := e.waiters
	e.waiters = nil
	for _, w := range waiters {
		w.run(struct{}{})
	}
}

// Clear resets the internal flag to false. Subsequent [Event.Wait] calls
// suspend until [Event.Set] is called again.
func (e *Event) Clear() {
	e.flag = false
}

// Wait registers callback to run once the flag is set. If the flag is
// already set, callback is scheduled on the next loop tick rather than run
// inline, keeping wake-up ordering uniform with the suspending path.
//
// A timed-out waiter is invoked with no distinguished argument; check
// [Event.IsSet] to tell the two apart.
func (e *Event) Wait(callback func(), opts ...WaitOption) error {
	if callback == nil {
		return &TypeError{Message: "loopsync: Event.Wait requires a callback"}
	}
	cfg, err := resolveWaitOptions(opts)
	if err != nil {
		return err
	}
	if e.flag {
		e.nextTick(callback)
		return nil
	}
	e.waiters = append(e.waiters, newWaiter(&e.base, cfg, nullary(callback), struct{}{}))
	return nil
}
