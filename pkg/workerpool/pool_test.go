package workerpool_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ameya/pkg/workerpool"
)

func TestSubmitRunsEveryTask(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Shutdown()

	const n = 50
	var count atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)

	submitted := 0
	for submitted < n {
		err := pool.Submit(func() {
			defer wg.Done()
			count.Add(1)
		})
		if err != nil {
			// Buffer momentarily full; give the workers a beat.
			time.Sleep(time.Millisecond)
			continue
		}
		submitted++
	}

	wg.Wait()
	assert.EqualValues(t, n, count.Load())
}

func TestSubmitRejectsWhenFull(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown()

	blocker := make(chan struct{})
	running := make(chan struct{})

	require.NoError(t, pool.Submit(func() {
		close(running)
		<-blocker
	}))
	<-running

	// The size-1 pool buffers two tasks; the third must bounce.
	require.NoError(t, pool.Submit(func() {}))
	require.NoError(t, pool.Submit(func() {}))
	assert.ErrorIs(t, pool.Submit(func() {}), workerpool.ErrPoolFull)

	close(blocker)
}

func TestSubmitAfterShutdown(t *testing.T) {
	pool := workerpool.New(2)
	pool.Shutdown()

	assert.ErrorIs(t, pool.Submit(func() {}), workerpool.ErrPoolClosed)
}

func TestWorkerSurvivesPanic(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown()

	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, pool.Submit(func() {
		defer wg.Done()
		panic("boom")
	}))
	wg.Wait()

	done := make(chan struct{})
	require.NoError(t, pool.Submit(func() { close(done) }))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task after panic never ran")
	}
}

func TestShutdownDrainsInFlight(t *testing.T) {
	pool := workerpool.New(4)

	var count atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		require.NoError(t, pool.Submit(func() {
			defer wg.Done()
			time.Sleep(time.Millisecond)
			count.Add(1)
		}))
	}

	wg.Wait()
	pool.Shutdown()
	assert.EqualValues(t, 20, count.Load())

	// Shutdown twice is a no-op.
	pool.Shutdown()
}
