// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package loopsync

import (
	"time"
)

// Loop is the contract the primitives require from the host event loop.
//
// The engine behind it is an external collaborator: any single-threaded
// cooperative scheduler that can run callbacks now-ish, run callbacks after
// a delay, and report monotonic time. All three methods are only ever called
// from the loop goroutine itself.
type Loop interface {
	// ScheduleSoon appends fn to be run in a future loop turn, once, with no
	// arguments. It must not run fn inline.
	ScheduleSoon(fn func())

	// ScheduleAfter runs fn once, after at least d has elapsed.
	ScheduleAfter(d time.Duration, fn func())

	// Now returns the current monotonic time.
	Now() time.Time
}

// base carries the per-primitive plumbing shared by every primitive: the
// host loop and the resolved construction options.
type base struct {
	loop Loop
	opts *options
}

func newBase(loop Loop, opts []Option) (base, error) {
	if loop == nil {
		return base{}, &TypeError{Message: "loopsync: loop must not be nil"}
	}
	cfg, err := resolveOptions(opts)
	if err != nil {
		return base{}, err
	}
	return base{loop: loop, opts: cfg}, nil
}

// nextTick schedules callback on a future loop turn, if one was supplied.
// Used on every synchronous fast path so that completion callbacks are never
// invoked inside the operation that satisfied them.
func (b *base) nextTick(callback func()) {
	if callback != nil {
		b.loop.ScheduleSoon(callback)
	}
}
