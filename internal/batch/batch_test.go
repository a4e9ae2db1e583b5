// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func items(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("/images/file%03d.iso", i+1)
	}

	return out
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}

	return out
}

func TestDispatcherRun_EmptySelection(t *testing.T) {
	defer goleak.VerifyNone(t)

	var progressOut bytes.Buffer

	d := &Dispatcher{MaxWorkers: 4, Progress: &progressOut}

	start := time.Now()
	report := d.Run(context.Background(), nil, items(5), func(context.Context, string) Outcome {
		t.Error("op must not be called for an empty selection")
		return Outcome{}
	})

	assert.True(t, report.Empty())
	assert.Less(t, time.Since(start), time.Second, "empty dispatch returns immediately")
	assert.Zero(t, progressOut.Len(), "progress bar must not start for an empty selection")
}

func TestDispatcherRun_EachIndexProcessedOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	var mu sync.Mutex

	seen := map[string]int{}

	d := &Dispatcher{MaxWorkers: 8}

	// Overlapping selections: 1-3 and 2-4 expanded upstream would already be
	// deduplicated, so feed raw duplicates to prove the claim set is the
	// authoritative guarantee.
	report := d.Run(context.Background(), []int{1, 2, 3, 2, 3, 4, 1}, items(5),
		func(_ context.Context, item string) Outcome {
			mu.Lock()
			seen[item]++
			mu.Unlock()

			return Outcome{Class: ClassDone, Message: "mounted " + item}
		})

	assert.Len(t, seen, 4)

	for item, count := range seen {
		assert.Equal(t, 1, count, "item %s processed more than once", item)
	}

	assert.Len(t, report.Done, 4)
}

func TestDispatcherRun_StressNoLostOrDuplicatedOutcomes(t *testing.T) {
	defer goleak.VerifyNone(t)

	const n = 500

	var calls atomic.Int64

	d := &Dispatcher{MaxWorkers: 16}

	report := d.Run(context.Background(), indices(n), items(n),
		func(_ context.Context, item string) Outcome {
			calls.Add(1)
			return Outcome{Class: ClassDone, Message: "mounted " + item}
		})

	assert.Equal(t, int64(n), calls.Load())
	assert.Len(t, report.Done, n, "one outcome entry per item, none lost, none duplicated")
	assert.Empty(t, report.Skipped)
	assert.Empty(t, report.Failed)
}

func TestDispatcherRun_OutcomeClassification(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := &Dispatcher{MaxWorkers: 4}

	report := d.Run(context.Background(), indices(5), items(5),
		func(_ context.Context, item string) Outcome {
			switch item {
			case "/images/file001.iso", "/images/file005.iso":
				return Outcome{Class: ClassSkipped, Message: "already mounted " + item}
			case "/images/file004.iso":
				return Outcome{Class: ClassFailed, Message: "failed " + item}
			default:
				return Outcome{Class: ClassDone, Message: "mounted " + item}
			}
		})

	assert.Len(t, report.Done, 2)
	assert.Len(t, report.Skipped, 2)
	assert.Len(t, report.Failed, 1)
}

func TestDispatcherRun_SameTargetYieldsOneMountOneSkip(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Two distinct items resolving to the same mount target: whichever runs
	// first mounts, the other observes the idempotent outcome.
	var mu sync.Mutex

	mounted := map[string]bool{}

	op := func(_ context.Context, _ string) Outcome {
		const target = "/mnt/iso_shared_00000"

		mu.Lock()
		defer mu.Unlock()

		if mounted[target] {
			return Outcome{Class: ClassSkipped, Message: "already mounted at " + target}
		}

		mounted[target] = true

		return Outcome{Class: ClassDone, Message: "mounted at " + target}
	}

	d := &Dispatcher{MaxWorkers: 2}
	report := d.Run(context.Background(), []int{1, 2}, []string{"/a/disc.iso", "/b/disc.iso"}, op)

	assert.Len(t, report.Done, 1, "exactly one successful mount")
	assert.Len(t, report.Skipped, 1, "exactly one idempotent skip")
}

func TestDispatcherRun_IdenticalMessagesCoalesce(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := &Dispatcher{MaxWorkers: 4}

	report := d.Run(context.Background(), indices(10), items(10),
		func(context.Context, string) Outcome {
			return Outcome{Class: ClassFailed, Message: "root privileges are required"}
		})

	assert.Equal(t, []string{"root privileges are required"}, report.Failed)
}

func TestDispatcherRun_ProgressBarRuns(t *testing.T) {
	defer goleak.VerifyNone(t)

	var progressOut bytes.Buffer

	d := &Dispatcher{MaxWorkers: 2, Progress: &progressOut}

	report := d.Run(context.Background(), indices(3), items(3),
		func(context.Context, string) Outcome {
			return Outcome{Class: ClassDone, Message: "ok"}
		})

	require.Len(t, report.Done, 1)
	assert.Contains(t, progressOut.String(), "3/3")
}

func TestDispatcherRun_OutOfBoundsIndicesDropped(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := &Dispatcher{MaxWorkers: 2}

	report := d.Run(context.Background(), []int{0, 1, 9}, items(2),
		func(_ context.Context, item string) Outcome {
			return Outcome{Class: ClassDone, Message: "mounted " + item}
		})

	assert.Equal(t, []string{"mounted /images/file001.iso"}, report.Done)
}

func TestDispatcherRun_ZeroValueDispatcher(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := &Dispatcher{}

	report := d.Run(context.Background(), indices(4), items(4),
		func(context.Context, string) Outcome {
			return Outcome{Class: ClassDone, Message: "ok"}
		})

	assert.Equal(t, []string{"ok"}, report.Done)
}
