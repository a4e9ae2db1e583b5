// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestPool_RunsAllTasks(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := New(context.Background(), 4)

	var count atomic.Int64

	for range 100 {
		p.Submit(func() {
			count.Add(1)
		})
	}

	p.Close()

	assert.Equal(t, int64(100), count.Load())
}

func TestPool_MinimumOneWorker(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := New(context.Background(), 0)

	done := make(chan struct{})
	p.Submit(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task was never executed")
	}

	p.Close()
}

func TestPool_TasksRunConcurrently(t *testing.T) {
	defer goleak.VerifyNone(t)

	const workers = 4

	p := New(context.Background(), workers)

	var wg sync.WaitGroup

	wg.Add(workers)

	// Each task blocks until all workers have picked one up. This only
	// completes if the pool really runs tasks in parallel.
	for range workers {
		p.Submit(func() {
			wg.Done()
			wg.Wait()
		})
	}

	finished := make(chan struct{})
	go func() {
		p.Close()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not run concurrently")
	}
}

func TestPool_PanicDoesNotKillWorker(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := New(context.Background(), 1)

	p.Submit(func() { panic("boom") })

	var ran atomic.Bool

	p.Submit(func() { ran.Store(true) })
	p.Close()

	require.True(t, ran.Load(), "worker should survive a panicking task")
}

func TestPool_CloseIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := New(context.Background(), 2)
	p.Submit(func() {})
	p.Close()
	p.Close()
}
