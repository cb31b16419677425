// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package loopsync

import (
	"fmt"
)

// Semaphore manages a counter representing the number of [Semaphore.Release]
// calls minus the number of successful acquisitions, plus the initial value.
// The counter never goes negative: an acquire that cannot decrement it
// either suspends (callback form) or reports failure (TryAcquire).
//
// Releasing while acquirers are suspended hands the permit directly to the
// first live waiter without touching the counter, so a late TryAcquire
// cannot steal a permit out from under a suspended acquirer.
type Semaphore struct {
	base
	// slot queues suspended acquirers; unlocked queues Wait callers, who
	// want to observe counter > 0 but not take a permit.
	slot     *Condition
	unlocked *Condition
	counter  int
}

// NewSemaphore creates a Semaphore with the given initial counter value.
// Negative value fails with a [*RangeError].
func NewSemaphore(loop Loop, value int, opts ...Option) (*Semaphore, error) {
	b, err := newBase(loop, opts)
	if err != nil {
		return nil, err
	}
	if value < 0 {
		return nil, &RangeError{Message: "loopsync: semaphore initial value must be >= 0"}
	}
	slot, err := NewCondition(loop, opts...)
	if err != nil {
		return nil, err
	}
	unlocked, err := NewCondition(loop, opts...)
	if err != nil {
		return nil, err
	}
	return &Semaphore{base: b, counter: value, slot: slot, unlocked: unlocked}, nil
}

// String returns a short diagnostic representation.
func (s *Semaphore) String() string {
	return fmt.Sprintf("<Semaphore counter=%d waiters[%d]>", s.counter, s.slot.Len())
}

// Counter returns the current permit count.
func (s *Semaphore) Counter() int {
	return s.counter
}

// Locked reports whether the counter is zero, i.e. an acquire would suspend.
func (s *Semaphore) Locked() bool {
	return s.counter <= 0
}

// TryAcquire acquires a permit if one is available, without suspending.
// It reports whether the permit was acquired.
func (s *Semaphore) TryAcquire() bool {
	if s.counter > 0 {
		s.counter--
		return true
	}
	return false
}

// Acquire attempts to take a permit. If one is available it is taken
// synchronously: Acquire returns true, and callback (if non-nil) is
// scheduled on the next loop tick. Otherwise callback suspends until a
// release hands it a permit or the configured timeout fires, and Acquire
// returns false; with a nil callback nothing suspends, and the false return
// is the only indication.
//
// A timed-out acquirer is invoked with no distinguished argument and holds
// no permit. Callers mixing timeouts with acquisition must track which
// releases they own; prefer TryAcquire when a non-suspending form is enough.
func (s *Semaphore) Acquire(callback func(), opts ...WaitOption) (bool, error) {
	cfg, err := resolveWaitOptions(opts)
	if err != nil {
		return false, err
	}
	if s.counter > 0 {
		s.counter--
		s.nextTick(callback)
		return true, nil
	}
	if callback != nil {
		s.slot.wait(callback, cfg)
	}
	return false, nil
}

// Release returns a permit. If an acquirer is suspended, the permit is
// handed to it directly and the counter is unchanged; otherwise the counter
// is incremented. Every release also wakes all [Semaphore.Wait] callers.
func (s *Semaphore) Release() {
	if !s.slot.notifyOne() {
		s.counter++
	}
	s.unlocked.NotifyAll(nil)
}

// Wait registers callback to run once the semaphore is not locked, without
// acquiring a permit. If the semaphore is already unlocked, callback is
// scheduled on the next loop tick.
//
// Wait does not reserve anything: by the time callback runs, the permit that
// unlocked the semaphore may already be gone again.
func (s *Semaphore) Wait(callback func(), opts ...WaitOption) error {
	if callback == nil {
		return &TypeError{Message: "loopsync: Semaphore.Wait requires a callback"}
	}
	cfg, err := resolveWaitOptions(opts)
	if err != nil {
		return err
	}
	if !s.Locked() {
		s.nextTick(callback)
		return nil
	}
	s.unlocked.wait(callback, cfg)
	return nil
}

// BoundedSemaphore is a [Semaphore] that refuses to be released above its
// initial value. Semaphores usually guard resources of fixed capacity;
// releasing more permits than were acquired is a sign of a bug, and the
// bounded variant turns it into a [*RangeError].
type BoundedSemaphore struct {
	sem     *Semaphore
	initial int
}

// NewBoundedSemaphore creates a BoundedSemaphore whose counter may never
// exceed value. Negative value fails with a [*RangeError].
func NewBoundedSemaphore(loop Loop, value int, opts ...Option) (*BoundedSemaphore, error) {
	sem, err := NewSemaphore(loop, value, opts...)
	if err != nil {
		return nil, err
	}
	return &BoundedSemaphore{sem: sem, initial: value}, nil
}

// String returns a short diagnostic representation.
func (s *BoundedSemaphore) String() string {
	return fmt.Sprintf("<BoundedSemaphore counter=%d/%d waiters[%d]>",
		s.sem.counter, s.initial, s.sem.slot.Len())
}

// Counter returns the current permit count.
func (s *BoundedSemaphore) Counter() int { return s.sem.Counter() }

// Locked reports whether the counter is zero.
func (s *BoundedSemaphore) Locked() bool { return s.sem.Locked() }

// TryAcquire acquires a permit if one is available, without suspending.
func (s *BoundedSemaphore) TryAcquire() bool { return s.sem.TryAcquire() }

// Acquire attempts to take a permit; see [Semaphore.Acquire].
func (s *BoundedSemaphore) Acquire(callback func(), opts ...WaitOption) (bool, error) {
	return s.sem.Acquire(callback, opts...)
}

// Wait registers callback to run once the semaphore is not locked; see
// [Semaphore.Wait].
func (s *BoundedSemaphore) Wait(callback func(), opts ...WaitOption) error {
	return s.sem.Wait(callback, opts...)
}

// Release returns a permit, failing with a [*RangeError] if the counter is
// already at its initial value.
func (s *BoundedSemaphore) Release() error {
	if s.sem.counter >= s.initial {
		return &RangeError{Message: "loopsync: semaphore released too many times"}
	}
	s.sem.Release()
	return nil
}
