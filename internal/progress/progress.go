// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress renders a single-line progress bar from shared atomic
// counters. The bar is purely observational: it polls, never mutates task
// state, and has no effect on batch correctness.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/matt-FFFFFF/isobatch/internal/color"
	"golang.org/x/term"
)

const (
	defaultBarWidth = 40
	minBarWidth     = 10
	maxBarWidth     = 60
	// barOverhead is the space the brackets, counters and percentage take
	// around the bar itself.
	barOverhead     = 20
	defaultInterval = 100 * time.Millisecond
)

// Bar is a background progress renderer. Create one with Start and always
// call Stop to join the render goroutine.
type Bar struct {
	w         io.Writer
	total     int64
	completed *atomic.Int64
	done      atomic.Bool
	finished  chan struct{}
	interval  time.Duration
	width     int
}

// Start begins rendering completed/total on w at a fixed interval in a
// background goroutine. completed is read atomically; the caller keeps
// ownership and updates it from its workers.
func Start(w io.Writer, total int64, completed *atomic.Int64) *Bar {
	b := &Bar{
		w:         w,
		total:     total,
		completed: completed,
		finished:  make(chan struct{}),
		interval:  defaultInterval,
		width:     barWidth(w),
	}

	go b.run()

	return b
}

// Stop signals completion, waits for the render goroutine to exit and writes
// the final state followed by a newline.
func (b *Bar) Stop() {
	b.done.Store(true)
	<-b.finished
}

func (b *Bar) run() {
	defer close(b.finished)

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		b.render()

		if b.done.Load() {
			fmt.Fprintln(b.w)
			return
		}

		<-ticker.C
	}
}

// barWidth sizes the bar to the terminal when w is one, clamped to a sane
// range; any other writer gets the default width.
func barWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultBarWidth
	}

	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return defaultBarWidth
	}

	width := cols - barOverhead

	switch {
	case width < minBarWidth:
		return minBarWidth
	case width > maxBarWidth:
		return maxBarWidth
	}

	return width
}

func (b *Bar) render() {
	completed := b.completed.Load()
	if completed > b.total {
		completed = b.total
	}

	filled := 0
	percent := 0

	if b.total > 0 {
		filled = int(completed * int64(b.width) / b.total)
		percent = int(completed * 100 / b.total)
	}

	bar := strings.Repeat("=", filled) + strings.Repeat(" ", b.width-filled)

	fmt.Fprintf(b.w, "\r[%s] %d/%d (%s)",
		color.Colorize(bar, color.FgHiGreen),
		completed,
		b.total,
		color.Colorize(fmt.Sprintf("%d%%", percent), color.Bold),
	)
}
