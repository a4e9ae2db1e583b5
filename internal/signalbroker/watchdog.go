// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/isobatch/internal/ctxlog"
)

// Watch monitors the signal channel and handles signals.
// A mount syscall in flight cannot be interrupted, so the first signal of a
// given type is a no-op; the second cancels the context.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	sigMap := make(map[os.Signal]struct{})
	for sig := range sigCh {
		if _, ok := sigMap[sig]; ok {
			ctxlog.Info(ctx, "watchdog", "detail", "received second signal of type, forcefully terminating", "signal", sig.String())
			close(sigCh)
			cancel()

			return
		}

		ctxlog.Info(ctx, "watchdog", "detail", "received first signal of type, no-op", "signal", sig.String())

		sigMap[sig] = struct{}{}
	}
}
