// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package mounter

import (
	"context"
	"errors"
)

// ErrUnsupportedPlatform is returned by backend operations on platforms
// without loop-mount support.
var ErrUnsupportedPlatform = errors.New("loop mounting is only supported on linux")

// Backend is the narrow capability interface between the mount engine and
// the operating system. The engine owns ordering, fallback and idempotence;
// the backend owns the platform-specific side effects, so the engine can be
// tested against a fake.
type Backend interface {
	// Mounted reports whether path is an active mount point, as opposed to a
	// plain directory or a missing one.
	Mounted(path string) (bool, error)
	// Elevated reports whether the process has the privileges required to
	// mount filesystems.
	Elevated() bool
	// LoadModule loads the named kernel module. Best effort: callers treat a
	// failure as non-fatal because several filesystem types work without an
	// explicit module.
	LoadModule(ctx context.Context, name string) error
	// Mount performs a read-only loop mount of source at target using the
	// given filesystem type.
	Mount(ctx context.Context, source, target, fstype string) error
	// Unmount lazily detaches the filesystem mounted at target.
	Unmount(ctx context.Context, target string) error
}
