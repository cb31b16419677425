// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package loopsync

import (
	"time"

	"github.com/joeycumines/logiface"
)

// options holds configuration shared by all primitive constructors.
type options struct {
	logger  *logiface.Logger[logiface.Event]
	maxsize int
	bounded bool
}

// Option configures a primitive at construction time.
type Option interface {
	apply(*options) error
}

// optionImpl implements Option.
type optionImpl struct {
	applyFunc func(*options) error
}

func (o *optionImpl) apply(opts *options) error {
	return o.applyFunc(opts)
}

// WithLogger sets the structured logger used to report panics recovered from
// user callbacks when no per-wait panic handler was captured. A nil logger is
// accepted and disables structured reporting (the standard library log
// package is used as a last resort).
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *options) error {
		opts.logger = logger
		return nil
	}}
}

// WithCapacity bounds a [Queue]. n is the maximum number of items the queue
// holds at once; n == 0 configures a rendezvous queue, where every put must
// pair with a get. Queues are unbounded by default. Negative n fails
// construction with a [*RangeError].
//
// Capacity is fixed for the life of the queue; there is no resize.
//
// WithCapacity has no effect on primitives other than the Queue family.
func WithCapacity(n int) Option {
	return &optionImpl{func(opts *options) error {
		if n < 0 {
			return &RangeError{Message: "loopsync: capacity must not be negative"}
		}
		opts.maxsize = n
		opts.bounded = true
		return nil
	}}
}

// resolveOptions applies Option instances to options.
func resolveOptions(opts []Option) (*options, error) {
	cfg := &options{}
	for _, opt := range opts {
		if opt == nil {
			continue // Skip nil options gracefully
		}
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// waitOptions holds per-call configuration for the suspending operations.
type waitOptions struct {
	timeout    time.Duration
	hasTimeout bool
	onPanic    func(recovered any)
}

// WaitOption configures a single suspending call ([Event.Wait],
// [Condition.Wait], [AsyncResult.Get], [Semaphore.Acquire],
// [Semaphore.Wait], [Queue.Put], [Queue.Get], [JoinableQueue.Join]).
type WaitOption interface {
	applyWait(*waitOptions) error
}

// waitOptionImpl implements WaitOption.
type waitOptionImpl struct {
	applyWaitFunc func(*waitOptions) error
}

func (o *waitOptionImpl) applyWait(opts *waitOptions) error {
	return o.applyWaitFunc(opts)
}

// WithTimeout arms a timeout for a single suspending call. d is a duration
// from now, not a deadline. When the timeout fires before the primitive
// signals the waiter, the callback is invoked exactly once with the
// operation's timeout indication; the later signal then skips the waiter.
// Negative d fails the call with a [*RangeError].
func WithTimeout(d time.Duration) WaitOption {
	return &waitOptionImpl{func(opts *waitOptions) error {
		if d < 0 {
			return &RangeError{Message: "loopsync: timeout must not be negative"}
		}
		opts.timeout = d
		opts.hasTimeout = true
		return nil
	}}
}

// WithPanicHandler captures the failure-reporting context of the waiting
// task for a single suspending call. If the completion callback panics, the
// recovered value is passed to fn instead of being logged, and never escapes
// into whichever task signaled the primitive. Each suspended task gets its
// own handler; the primitive does not share one.
func WithPanicHandler(fn func(recovered any)) WaitOption {
	return &waitOptionImpl{func(opts *waitOptions) error {
		opts.onPanic = fn
		return nil
	}}
}

// resolveWaitOptions applies WaitOption instances to waitOptions.
func resolveWaitOptions(opts []WaitOption) (*waitOptions, error) {
	cfg := &waitOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyWait(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
