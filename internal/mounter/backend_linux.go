// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build linux

package mounter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/matt-FFFFFF/isobatch/internal/loop"
	"golang.org/x/sys/unix"
)

var _ Backend = (*linuxBackend)(nil)

type linuxBackend struct{}

// NewBackend returns the platform mount backend.
func NewBackend() Backend {
	return &linuxBackend{}
}

// Mounted reports whether path is a mount point by comparing its device ID
// with that of its parent directory. A missing path is simply not mounted.
func (b *linuxBackend) Mounted(path string) (bool, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		if errors.Is(err, unix.ENOENT) {
			return false, nil
		}

		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	var parent unix.Stat_t
	if err := unix.Stat(filepath.Dir(path), &parent); err != nil {
		return false, fmt.Errorf("stat %s: %w", filepath.Dir(path), err)
	}

	return st.Dev != parent.Dev, nil
}

func (b *linuxBackend) Elevated() bool {
	return os.Geteuid() == 0
}

func (b *linuxBackend) LoadModule(ctx context.Context, name string) error {
	if err := exec.CommandContext(ctx, "modprobe", name).Run(); err != nil {
		return fmt.Errorf("modprobe %s: %w", name, err)
	}

	return nil
}

// Mount attaches a read-only loop device to the image and mounts it at
// target. The loop device autoclears on unmount, so only the error path
// detaches explicitly.
func (b *linuxBackend) Mount(ctx context.Context, source, target, fstype string) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	dev, err := loop.Attach(source, true)
	if err != nil {
		return fmt.Errorf("attaching loop device for %s: %w", source, err)
	}

	if err := unix.Mount(dev.Path, target, fstype, unix.MS_RDONLY, ""); err != nil {
		if detachErr := dev.Detach(); detachErr != nil {
			return fmt.Errorf("mounting %s as %s: %w (loop detach also failed: %v)",
				source, fstype, err, detachErr)
		}

		return fmt.Errorf("mounting %s as %s: %w", source, fstype, err)
	}

	return nil
}

func (b *linuxBackend) Unmount(_ context.Context, target string) error {
	if err := unix.Unmount(target, unix.MNT_DETACH); err != nil {
		return fmt.Errorf("unmounting %s: %w", target, err)
	}

	return nil
}
