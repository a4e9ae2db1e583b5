// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"bytes"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

// syncBuffer guards a bytes.Buffer so the render goroutine and the test can
// share it.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.b.String()
}

func TestBar_RendersFinalState(t *testing.T) {
	defer goleak.VerifyNone(t)

	var completed atomic.Int64

	buf := &syncBuffer{}
	bar := Start(buf, 10, &completed)

	completed.Store(10)
	bar.Stop()

	out := buf.String()
	assert.Contains(t, out, "10/10")
	assert.Contains(t, out, "100%")
	assert.True(t, strings.HasSuffix(out, "\n"), "bar must end its line on stop")
}

func TestBar_ZeroTotal(t *testing.T) {
	defer goleak.VerifyNone(t)

	var completed atomic.Int64

	buf := &syncBuffer{}
	bar := Start(buf, 0, &completed)
	bar.Stop()

	assert.Contains(t, buf.String(), "0/0")
}

func TestBar_CompletedNeverExceedsTotal(t *testing.T) {
	defer goleak.VerifyNone(t)

	var completed atomic.Int64

	completed.Store(99)

	buf := &syncBuffer{}
	bar := Start(buf, 5, &completed)
	bar.Stop()

	assert.Contains(t, buf.String(), "5/5")
	assert.NotContains(t, buf.String(), "99/5")
}

func TestBarWidth_NonTerminalWriterUsesDefault(t *testing.T) {
	assert.Equal(t, defaultBarWidth, barWidth(&syncBuffer{}))
}

func TestBar_NonTerminalBarIsDefaultWidth(t *testing.T) {
	defer goleak.VerifyNone(t)

	var completed atomic.Int64

	completed.Store(10)

	buf := &syncBuffer{}
	bar := Start(buf, 10, &completed)
	bar.Stop()

	assert.Contains(t, buf.String(), strings.Repeat("=", defaultBarWidth))
	assert.NotContains(t, buf.String(), strings.Repeat("=", defaultBarWidth+1))
}
