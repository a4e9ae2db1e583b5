// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package batch fans a validated index selection out across a worker pool,
// applies a per-item operation, and aggregates the outcomes into
// deduplicated message sets with a live progress bar.
//
// Three pieces of shared state each have their own lock: the index claim set
// (at-most-once processing per index), the outcome sets (insert only), and
// the atomic progress counters (lock free). No goroutine holds more than one
// of these locks at a time.
package batch

import (
	"context"
	"io"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/matt-FFFFFF/isobatch/internal/ctxlog"
	"github.com/matt-FFFFFF/isobatch/internal/pool"
	"github.com/matt-FFFFFF/isobatch/internal/progress"
)

// Class classifies a per-item outcome into one of the report sets.
type Class int

const (
	// ClassDone is a successful operation.
	ClassDone Class = iota
	// ClassSkipped is an idempotent no-op: the desired end state already held.
	ClassSkipped
	// ClassFailed is an operation that could not be completed.
	ClassFailed
)

// Outcome is the result of applying the batch operation to one item.
type Outcome struct {
	Class   Class
	Message string
}

// Op applies the batch operation to a single candidate item. It is invoked
// concurrently for different items and must report failure through its
// Outcome, never by panicking.
type Op func(ctx context.Context, item string) Outcome

// Report holds the deduplicated, human-readable message sets for one batch,
// each sorted lexicographically. Insertion is keyed on the message text, so
// identical messages coalesce.
type Report struct {
	Done    []string
	Skipped []string
	Failed  []string
}

// Empty reports whether the batch produced no outcomes at all.
func (r *Report) Empty() bool {
	return len(r.Done) == 0 && len(r.Skipped) == 0 && len(r.Failed) == 0
}

// Dispatcher runs batches. The zero value uses runtime.NumCPU() workers and
// no progress output.
type Dispatcher struct {
	// MaxWorkers caps the pool size; the effective size is
	// min(len(indices), MaxWorkers).
	MaxWorkers int
	// Progress is where the progress bar renders. Nil disables the bar.
	Progress io.Writer
}

// Run applies op to every item selected by the 1-based indices and returns
// the aggregated report. Duplicate indices are processed at most once. The
// call blocks until every claimed index has run to completion; there is no
// mid-batch cancellation beyond op honouring ctx itself.
//
// An empty index set returns an empty report immediately and never starts
// the progress bar.
func (d *Dispatcher) Run(ctx context.Context, indices []int, items []string, op Op) *Report {
	claimed := make(map[int]struct{}, len(indices))

	var claimMu sync.Mutex

	var (
		totalTasks     atomic.Int64
		completedTasks atomic.Int64
		activeTasks    atomic.Int64
	)

	completionMu := sync.Mutex{}
	completionCV := sync.NewCond(&completionMu)

	outcomes := map[Class]map[string]struct{}{
		ClassDone:    {},
		ClassSkipped: {},
		ClassFailed:  {},
	}

	var outcomeMu sync.Mutex

	maxWorkers := d.MaxWorkers
	if maxWorkers < 1 {
		maxWorkers = runtime.NumCPU()
	}

	workers := min(len(indices), maxWorkers)

	p := pool.New(ctx, workers)
	defer p.Close()

	enqueued := 0

	for _, index := range indices {
		if index < 1 || index > len(items) {
			// The selection parser validates bounds; anything out of range
			// here is a programming error upstream, not user input.
			ctxlog.Warn(ctx, "dropping out-of-bounds index", "index", index, "items", len(items))
			continue
		}

		claimMu.Lock()

		_, dup := claimed[index]
		if !dup {
			claimed[index] = struct{}{}
		}

		claimMu.Unlock()

		if dup {
			continue
		}

		totalTasks.Add(1)
		activeTasks.Add(1)

		enqueued++

		item := items[index-1]

		p.Submit(func() {
			outcome := op(ctx, item)

			outcomeMu.Lock()
			outcomes[outcome.Class][outcome.Message] = struct{}{}
			outcomeMu.Unlock()

			completedTasks.Add(1)

			if activeTasks.Add(-1) == 0 {
				completionMu.Lock()
				completionCV.Broadcast()
				completionMu.Unlock()
			}
		})
	}

	if enqueued == 0 {
		return &Report{}
	}

	var bar *progress.Bar
	if d.Progress != nil {
		bar = progress.Start(d.Progress, totalTasks.Load(), &completedTasks)
	}

	completionMu.Lock()
	for activeTasks.Load() > 0 {
		completionCV.Wait()
	}
	completionMu.Unlock()

	if bar != nil {
		bar.Stop()
	}

	return &Report{
		Done:    sortedKeys(outcomes[ClassDone]),
		Skipped: sortedKeys(outcomes[ClassSkipped]),
		Failed:  sortedKeys(outcomes[ClassFailed]),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}

	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
