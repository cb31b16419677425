package loopsync

import (
	"errors"
)

// Standard errors.
var (
	// ErrEmpty is returned by [Queue.TryGet] when the queue holds no items,
	// and delivered to a [Queue.Get] callback whose timeout fired before an
	// item arrived.
	ErrEmpty = errors.New("loopsync: queue is empty")

	// ErrFull is returned by [Queue.TryPut] when the queue is at capacity.
	ErrFull = errors.New("loopsync: queue is full")

	// ErrNotReady is returned by [AsyncResult.TryGet] before the result has
	// been set.
	ErrNotReady = errors.New("loopsync: result is not ready")

	// ErrAlreadySet is returned by [AsyncResult.Set] on the second and
	// subsequent calls.
	ErrAlreadySet = errors.New("loopsync: result was already set")

	// ErrTimeout is delivered to an [AsyncResult.Get] callback whose timeout
	// fired before the result was set.
	ErrTimeout = errors.New("loopsync: wait timed out")
)

// TypeError reports that an argument had the wrong type, most commonly a nil
// callback where one was required, or a nil [Loop].
type TypeError struct {
	Cause   error
	Message string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	if e.Message == "" {
		return "type error"
	}
	return e.Message
}

// Unwrap returns the underlying cause for use with [errors.Is] and [errors.As].
func (e *TypeError) Unwrap() error {
	return e.Cause
}

// RangeError reports that a value was outside its permitted range: a
// negative queue capacity or semaphore value, a [BoundedSemaphore.Release]
// beyond the initial value, or a [JoinableQueue.TaskDone] with no
// outstanding tasks.
type RangeError struct {
	Cause   error
	Message string
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	if e.Message == "" {
		return "range error"
	}
	return e.Message
}

// Unwrap returns the underlying cause for use with [errors.Is] and [errors.As].
func (e *RangeError) Unwrap() error {
	return e.Cause
}
