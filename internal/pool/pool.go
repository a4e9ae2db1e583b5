// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package pool provides a fixed-size worker pool for running queued tasks.
// Tasks are executed FIFO by whichever worker becomes free; there is no
// ordering guarantee on completion.
package pool

import (
	"context"
	"sync"

	"github.com/matt-FFFFFF/isobatch/internal/ctxlog"
)

const defaultQueueDepth = 64

// Pool is a fixed-size worker pool. The zero value is not usable; create one
// with New.
type Pool struct {
	tasks     chan func()
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New creates a pool with the given number of workers and starts them.
// A worker count below one is raised to one.
// The context is used for logging only; it does not cancel queued tasks.
func New(ctx context.Context, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}

	p := &Pool{
		tasks: make(chan func(), defaultQueueDepth),
	}

	p.wg.Add(workers)

	for range workers {
		go p.worker(ctx)
	}

	ctxlog.Debug(ctx, "worker pool started", "workers", workers)

	return p
}

// Submit enqueues a task for execution. It blocks if the queue is full.
// Submitting after Close panics, mirroring a send on a closed channel.
func (p *Pool) Submit(task func()) {
	p.tasks <- task
}

// Close drains the queue, waits for all in-flight tasks to finish and joins
// the workers. It is safe to call more than once.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.tasks)
	})
	p.wg.Wait()
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for task := range p.tasks {
		runTask(ctx, task)
	}
}

// runTask executes a single task, converting a panic into a log entry so a
// misbehaving task cannot take down its worker.
func runTask(ctx context.Context, task func()) {
	defer func() {
		if r := recover(); r != nil {
			ctxlog.Error(ctx, "task panicked", "panic", r)
		}
	}()

	task()
}
