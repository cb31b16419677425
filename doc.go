// Package loopsync provides asynchronous synchronization primitives for
// tasks that share a single-threaded, cooperative event loop: [Event],
// [Condition], [AsyncResult], [Semaphore], [BoundedSemaphore], the [Queue]
// family, and [JoinableQueue].
//
// # Architecture
//
// The primitives do not block. Operations that would block in a thread-based
// library instead accept a completion callback and an optional timeout; the
// callback is invoked on a later loop tick, once the primitive has been
// signaled (or the timeout fires, whichever comes first). Every primitive is
// backed by the same waiter-queue machinery: an ordered sequence of one-shot
// deferred callbacks, each firing at most once.
//
// The host event loop is an external collaborator, abstracted by the [Loop]
// interface:
//
//   - [Loop.ScheduleSoon] runs a callback in a future loop turn
//   - [Loop.ScheduleAfter] runs a callback after a delay
//   - [Loop.Now] reports the current monotonic time
//
// The looptest subpackage provides a deterministic, manual-time
// implementation suitable for tests and examples.
//
// # Execution Model
//
// Every operation must be called from the loop goroutine; the primitives
// perform no internal locking, and calling them from any other goroutine is
// undefined behavior. When a wait can complete at once ([Event.Wait],
// [AsyncResult.Get], [Semaphore.Acquire], [Semaphore.Wait],
// [JoinableQueue.Join], [Queue.Put]), its callback is scheduled on the next
// loop tick rather than run inside the call; [Queue.Get] is the exception
// and delivers an available item inline. Suspended waiters are run inside
// the signaling call that wakes them (such as [Event.Set] or
// [Condition.Notify]).
//
// Within one wait queue, live waiters wake in insertion order. A signaling
// call (such as [Event.Set] or [Condition.NotifyAll]) snapshots the eligible
// waiters before running any of them, so a callback that immediately
// re-waits joins the next round rather than the current one.
//
// # Timeouts
//
// A timeout is supplied per call via [WithTimeout] and is a duration from
// now, not a deadline. Timeouts are the sole cancellation path: there is no
// explicit cancel API. A timed-out waiter is reported through the same
// callback as a successful wake-up, with a distinguished argument where the
// operation carries data ([Queue.Get] delivers [ErrEmpty], [AsyncResult.Get]
// delivers [ErrTimeout], [Queue.Put] delivers ok == false); operations that
// carry no data invoke the callback with no indication, and the caller
// inspects primitive state.
//
// # Error Types
//
// Protocol errors are sentinel values: [ErrEmpty], [ErrFull], [ErrNotReady],
// [ErrAlreadySet], [ErrTimeout]. Argument validation fails with [*TypeError]
// (nil callback or loop) or [*RangeError] (negative capacity, over-release,
// excess TaskDone). A panic raised by a user callback never escapes the
// signaling call: it is recovered and routed to the panic handler captured
// when the wait began ([WithPanicHandler]), or logged.
package loopsync
