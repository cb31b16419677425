// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package loopsync

import (
	"fmt"
)

// Condition is an unlatched notification primitive: it remembers nothing
// about past notifications, only its queue of suspended waiters.
// [Condition.Notify] wakes up to n of them in FIFO order; a waiter whose
// timeout already fired never consumes a notify slot.
type Condition struct {
	base
	waiters []*waiter[struct{}]
}

// NewCondition creates an empty Condition.
func NewCondition(loop Loop, opts ...Option) (*Condition, error) {
	b, err := newBase(loop, opts)
	if err != nil {
		return nil, err
	}
	return &Condition{base: b}, nil
}

// String returns a short diagnostic representation.
func (c *Condition) String() string {
	return fmt.Sprintf("<Condition waiters[%d]>", len(c.waiters))
}

// Len returns the number of queued waiters, including any whose timeout has
// already fired but which have not yet been pruned.
func (c *Condition) Len() int {
	return len(c.waiters)
}

// pruneExpired drops waiters at the head of the queue whose timeout has
// fired.
func (c *Condition) pruneExpired() {
	for len(c.waiters) > 0 && c.waiters[0].expired() {
		c.waiters[0] = nil
		c.waiters = c.waiters[1:]
	}
}

// Wait suspends callback on the condition. There is no fast path: every
// caller queues until a notification or its timeout, whichever comes first.
//
// A timed-out waiter is invoked with no distinguished argument.
func (c *Condition) Wait(callback func(), opts ...WaitOption) error {
	if callback == nil {
		return &TypeError{Message: "loopsync: Condition.Wait requires a callback"}
	}
	cfg, err := resolveWaitOptions(opts)
	if err != nil {
		return err
	}
	c.wait(callback, cfg)
	return nil
}

// wait appends a waiter with already-resolved options. The semaphore paths
// use this to avoid resolving the caller's options twice.
func (c *Condition) wait(callback func(), cfg *waitOptions) {
	c.waiters = append(c.waiters, newWaiter(&c.base, cfg, nullary(callback), struct{}{}))
}

// Notify wakes up to n live waiters in insertion order. The waiters to wake
// are collected under a snapshot before any callback runs, so a callback
// that immediately re-waits joins the next notification round. If callback
// is non-nil it is scheduled on a subsequent loop tick, after the waiters
// have been run.
func (c *Condition) Notify(n int, callback func()) {
	c.pruneExpired()
	var woken []*waiter[struct{}]
	for n > 0 && len(c.waiters) > 0 {
		w := c.waiters[0]
		c.waiters[0] = nil
		c.waiters = c.waiters[1:]
		n--
		woken = append(woken, w)
		c.pruneExpired()
	}
	for _, w := range woken {
		w.run(struct{}{})
	}
	c.nextTick(callback)
}

// NotifyAll wakes every currently queued live waiter. Equivalent to
// Notify([Condition.Len], callback).
func (c *Condition) NotifyAll(callback func()) {
	c.Notify(len(c.waiters), callback)
}

// notifyOne pops and runs the first live waiter, reporting whether one was
// woken. The semaphore release path uses this to decide between a direct
// permit hand-off and a counter increment.
func (c *Condition) notifyOne() bool {
	c.pruneExpired()
	if len(c.waiters) == 0 {
		return false
	}
	w := c.waiters[0]
	c.waiters[0] = nil
	c.waiters = c.waiters[1:]
	w.run(struct{}{})
	return true
}
