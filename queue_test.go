package loopsync_test

import (
	"fmt"
	"testing"
	"time"

	loopsync "github.com/joeycumines/go-loopsync"
	"github.com/joeycumines/go-loopsync/looptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_TryPutTryGet(t *testing.T) {
	loop := looptest.New()
	q, err := loopsync.NewQueue[string](loop)
	require.NoError(t, err)

	require.True(t, q.Empty())
	require.False(t, q.Full(), "unbounded queues are never full")

	require.NoError(t, q.TryPut("a"))
	require.NoError(t, q.TryPut("b"))
	assert.Equal(t, 2, q.Size())

	v, err := q.TryGet()
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	v, err = q.TryGet()
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	_, err = q.TryGet()
	assert.ErrorIs(t, err, loopsync.ErrEmpty)
}

func TestQueue_TryPutFull(t *testing.T) {
	loop := looptest.New()
	q, err := loopsync.NewQueue[int](loop, loopsync.WithCapacity(1))
	require.NoError(t, err)

	require.NoError(t, q.TryPut(1))
	require.True(t, q.Full())
	assert.ErrorIs(t, q.TryPut(2), loopsync.ErrFull)
}

func TestQueue_BoundedBackPressure(t *testing.T) {
	loop := looptest.New()
	q, err := loopsync.NewQueue[string](loop, loopsync.WithCapacity(1))
	require.NoError(t, err)

	require.NoError(t, q.TryPut("A"))

	var putOK *bool
	require.NoError(t, q.Put("B", func(ok bool) { putOK = &ok }))
	require.Equal(t, 1, q.PutterCount())

	v, err := q.TryGet()
	require.NoError(t, err)
	assert.Equal(t, "A", v)
	assert.Nil(t, putOK, "the suspended put completes on a later tick, not inside the get")

	// One tick wakes the putter, a second delivers its completion: the
	// extra deferral keeps producers and consumers strictly interleaved.
	loop.RunReady()
	assert.Nil(t, putOK)
	loop.RunReady()
	require.NotNil(t, putOK)
	assert.True(t, *putOK)

	v, err = q.TryGet()
	require.NoError(t, err)
	assert.Equal(t, "B", v)
	assert.Equal(t, 0, q.PutterCount())
}

func TestQueue_Rendezvous(t *testing.T) {
	loop := looptest.New()
	q, err := loopsync.NewQueue[string](loop, loopsync.WithCapacity(0))
	require.NoError(t, err)

	require.True(t, q.Full(), "a rendezvous queue is always full")
	assert.ErrorIs(t, q.TryPut("X"), loopsync.ErrFull)

	var putOK *bool
	require.NoError(t, q.Put("X", func(ok bool) { putOK = &ok }))
	require.Equal(t, 1, q.PutterCount())

	var got string
	require.NoError(t, q.Get(func(v string, err error) {
		require.NoError(t, err)
		got = v
	}))
	assert.Equal(t, "X", got, "the getter receives the item inside Get")
	assert.Nil(t, putOK)

	loop.RunReady()
	require.NotNil(t, putOK)
	assert.True(t, *putOK)

	assert.True(t, q.Empty())
	assert.Equal(t, 0, q.GetterCount())
	assert.Equal(t, 0, q.PutterCount())
}

func TestQueue_PutToWaitingGetter(t *testing.T) {
	loop := looptest.New()
	q, err := loopsync.NewQueue[int](loop)
	require.NoError(t, err)

	var got *int
	require.NoError(t, q.Get(func(v int, err error) {
		require.NoError(t, err)
		got = &v
	}))
	require.Equal(t, 1, q.GetterCount())

	var putDone bool
	require.NoError(t, q.Put(9, func(ok bool) { putDone = ok }))
	require.NotNil(t, got)
	assert.Equal(t, 9, *got, "the item reaches the getter inside Put")
	assert.False(t, putDone)
	assert.True(t, q.Empty(), "the item passed through the container, not around it")

	loop.RunReady()
	assert.True(t, putDone)
}

func TestQueue_HandOffAlternation(t *testing.T) {
	loop := looptest.New()
	q, err := loopsync.NewQueue[int](loop, loopsync.WithCapacity(1))
	require.NoError(t, err)

	const total = 4
	var order []string

	var putNext func(i int)
	putNext = func(i int) {
		require.NoError(t, q.Put(i, func(ok bool) {
			require.True(t, ok)
			order = append(order, fmt.Sprintf("put%d", i))
			if i+1 < total {
				putNext(i + 1)
			}
		}))
	}

	var gets int
	var getNext func()
	getNext = func() {
		require.NoError(t, q.Get(func(v int, err error) {
			require.NoError(t, err)
			order = append(order, fmt.Sprintf("get%d", v))
			gets++
			if gets < total {
				getNext()
			}
		}))
	}

	putNext(0)
	getNext()
	loop.RunUntilIdle()

	assert.Equal(t, []string{
		"get0", "put0",
		"get1", "put1",
		"get2", "put2",
		"get3", "put3",
	}, order, "producer and consumer completions alternate perfectly")
	assert.True(t, q.Empty())
}

func TestQueue_GetTimeout(t *testing.T) {
	loop := looptest.New()
	q, err := loopsync.NewQueue[int](loop)
	require.NoError(t, err)

	var gotErr error
	require.NoError(t, q.Get(func(_ int, err error) { gotErr = err },
		loopsync.WithTimeout(5*time.Millisecond)))

	loop.Advance(4 * time.Millisecond)
	assert.NoError(t, gotErr)

	loop.Advance(time.Millisecond)
	assert.ErrorIs(t, gotErr, loopsync.ErrEmpty)

	// Expired getters linger until the next signaling operation prunes them.
	assert.Equal(t, 1, q.GetterCount())
	require.NoError(t, q.TryPut(5))
	assert.Equal(t, 0, q.GetterCount())
	assert.Equal(t, 1, q.Size(), "the item is stored, not fed to the expired getter")
}

func TestQueue_PutTimeout(t *testing.T) {
	loop := looptest.New()
	q, err := loopsync.NewQueue[string](loop, loopsync.WithCapacity(1))
	require.NoError(t, err)

	require.NoError(t, q.TryPut("A"))

	var putOK *bool
	require.NoError(t, q.Put("B", func(ok bool) { putOK = &ok },
		loopsync.WithTimeout(5*time.Millisecond)))

	loop.Advance(5 * time.Millisecond)
	require.NotNil(t, putOK)
	assert.False(t, *putOK)

	// The timed-out item never entered the queue.
	v, err := q.TryGet()
	require.NoError(t, err)
	assert.Equal(t, "A", v)
	_, err = q.TryGet()
	assert.ErrorIs(t, err, loopsync.ErrEmpty)
}

func TestQueue_Conservation(t *testing.T) {
	loop := looptest.New()
	q, err := loopsync.NewQueue[int](loop, loopsync.WithCapacity(2))
	require.NoError(t, err)

	var gotten, putsCompleted int

	require.NoError(t, q.TryPut(1))
	require.NoError(t, q.TryPut(2))
	putsCompleted += 2

	require.NoError(t, q.Put(3, func(ok bool) {
		require.True(t, ok)
		putsCompleted++
	}))

	assert.Equal(t, 2, putsCompleted)
	assert.Equal(t, 2, q.Size())
	assert.Equal(t, 1, q.PutterCount())

	v, err := q.TryGet()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	gotten++
	loop.RunUntilIdle()

	assert.Equal(t, 3, putsCompleted)
	assert.Equal(t, 2, q.Size())
	assert.Equal(t, 0, q.PutterCount())
	assert.Equal(t, putsCompleted, gotten+q.Size()+q.PutterCount())

	for q.Size() > 0 {
		_, err := q.TryGet()
		require.NoError(t, err)
		gotten++
	}
	assert.Equal(t, putsCompleted, gotten)
}

func TestPriorityQueue_Ordering(t *testing.T) {
	loop := looptest.New()
	q, err := loopsync.NewPriorityQueue[int](loop, func(a, b int) bool { return a < b })
	require.NoError(t, err)

	require.NoError(t, q.TryPut(3))
	require.NoError(t, q.TryPut(1))
	require.NoError(t, q.TryPut(2))

	for _, want := range []int{1, 2, 3} {
		v, err := q.TryGet()
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
}

func TestPriorityQueue_HandOffHonorsOrdering(t *testing.T) {
	loop := looptest.New()
	type job struct {
		priority int
		name     string
	}
	q, err := loopsync.NewPriorityQueue[job](loop,
		func(a, b job) bool { return a.priority < b.priority },
		loopsync.WithCapacity(2))
	require.NoError(t, err)

	require.NoError(t, q.TryPut(job{2, "low"}))
	require.NoError(t, q.TryPut(job{1, "high"}))

	var done bool
	require.NoError(t, q.Put(job{0, "urgent"}, func(ok bool) { done = ok }))

	// The suspended putter's item enters the heap before the head pops, so
	// the urgent job jumps the queue.
	v, err := q.TryGet()
	require.NoError(t, err)
	assert.Equal(t, "urgent", v.name)

	loop.RunUntilIdle()
	assert.True(t, done)

	v, err = q.TryGet()
	require.NoError(t, err)
	assert.Equal(t, "high", v.name)
}

func TestLifoQueue_Ordering(t *testing.T) {
	loop := looptest.New()
	q, err := loopsync.NewLifoQueue[string](loop)
	require.NoError(t, err)

	for _, s := range []string{"a", "b", "c"} {
		require.NoError(t, q.TryPut(s))
	}
	for _, want := range []string{"c", "b", "a"} {
		v, err := q.TryGet()
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
}

func TestQueue_Validation(t *testing.T) {
	loop := looptest.New()

	var typeErr *loopsync.TypeError
	_, err := loopsync.NewQueue[int](nil)
	require.ErrorAs(t, err, &typeErr)

	_, err = loopsync.NewPriorityQueue[int](loop, nil)
	require.ErrorAs(t, err, &typeErr)

	var rangeErr *loopsync.RangeError
	_, err = loopsync.NewQueue[int](loop, loopsync.WithCapacity(-1))
	require.ErrorAs(t, err, &rangeErr)

	q, err := loopsync.NewQueue[int](loop, loopsync.WithCapacity(2))
	require.NoError(t, err)

	require.ErrorAs(t, q.Put(1, nil), &typeErr)
	require.ErrorAs(t, q.Get(nil), &typeErr)

	n, bounded := q.Capacity()
	assert.Equal(t, 2, n)
	assert.True(t, bounded)

	assert.Equal(t, "<Queue maxsize=2>", q.String())
	require.NoError(t, q.TryPut(7))
	assert.Equal(t, "<Queue maxsize=2 size=1>", q.String())

	unbounded, err := loopsync.NewQueue[int](loop)
	require.NoError(t, err)
	_, bounded = unbounded.Capacity()
	assert.False(t, bounded)
	assert.Equal(t, "<Queue unbounded>", unbounded.String())
}
