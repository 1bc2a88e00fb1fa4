package eventloop

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunUntilIdleDrainsTasksScheduledByTasks(t *testing.T) {
	l := New()
	var order []int
	l.Enqueue(func() {
		order = append(order, 1)
		l.Enqueue(func() { order = append(order, 2) })
	})

	l.RunUntilIdle()

	assert.Equal(t, []int{1, 2}, order)
}

func TestRunUntilIdleWaitsForPendingCrossThreadWork(t *testing.T) {
	l := New()
	l.BeginPending()

	go func() {
		time.Sleep(10 * time.Millisecond)
		l.Dispatch(func() { l.EndPending() })
	}()

	done := make(chan struct{})
	go func() {
		l.RunUntilIdle()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunUntilIdle did not return once pending work settled")
	}
}

func TestRunWorkersRunsAllConcurrently(t *testing.T) {
	var count int32
	fns := make([]func() error, 5)
	for i := range fns {
		fns[i] = func() error {
			atomic.AddInt32(&count, 1)
			return nil
		}
	}

	require.NoError(t, RunWorkers(fns...))
	assert.Equal(t, int32(5), count)
}

func TestRunWorkersPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := RunWorkers(
		func() error { return nil },
		func() error { return boom },
	)
	assert.ErrorIs(t, err, boom)
}

func TestLoopRunWorkersMethod(t *testing.T) {
	l := New()
	require.NoError(t, l.RunWorkers(func() error { return nil }))
}
