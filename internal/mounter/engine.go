// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package mounter mounts disc-image files through an ordered filesystem-type
// fallback, with idempotence for already-mounted targets and explicit
// privilege checks before any mutation.
package mounter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matt-FFFFFF/isobatch/internal/ctxlog"
)

// DefaultRoot is the directory mount points are created under.
const DefaultRoot = "/mnt"

// fsType pairs a filesystem type with the kernel module that provides it.
// An empty module name means no explicit module is needed.
type fsType struct {
	name   string
	module string
}

// fallbackOrder is tried first to last; the first type the kernel accepts
// wins. "auto" stays last as the catch-all.
var fallbackOrder = []fsType{
	{name: "iso9660", module: "isofs"},
	{name: "udf", module: "udf"},
	{name: "hfsplus", module: "hfsplus"},
	{name: "rockridge"},
	{name: "joliet"},
	{name: "isofs", module: "isofs"},
	{name: "auto"},
}

// Engine mounts image files. It is safe for concurrent use across different
// image files; callers must not race two mounts of the same resolved mount
// point (the batch dispatcher's index claim set guarantees this upstream).
type Engine struct {
	backend Backend
	root    string
}

// New creates an Engine using the given backend, creating mount points under
// root. An empty root selects DefaultRoot.
func New(backend Backend, root string) *Engine {
	if root == "" {
		root = DefaultRoot
	}

	return &Engine{backend: backend, root: root}
}

// MountPoint returns the deterministic mount point for an image file.
func (e *Engine) MountPoint(imagePath string) string {
	return filepath.Join(e.root, MountPointName(imagePath))
}

// Mount attempts to mount one image file and reports the outcome. It never
// returns an error: every failure mode is folded into the Result so a batch
// over many files carries on regardless.
func (e *Engine) Mount(ctx context.Context, imagePath string) Result {
	logger := ctxlog.Logger(ctx).With("image", imagePath)

	mountPoint := e.MountPoint(imagePath)
	res := Result{Image: imagePath, MountPoint: mountPoint}

	mounted, err := e.backend.Mounted(mountPoint)
	if err != nil {
		res.Status = StatusFailed
		res.Reason = fmt.Sprintf("mount point probe failed: %v", err)

		return res
	}

	if mounted {
		// Re-selecting an already-mounted file is a no-op, not an error.
		res.Status = StatusAlreadyMounted

		return res
	}

	if !e.backend.Elevated() {
		res.Status = StatusFailed
		res.Reason = "root privileges are required"

		return res
	}

	if err := os.MkdirAll(mountPoint, 0o755); err != nil {
		res.Status = StatusFailed
		res.Reason = fmt.Sprintf("failed to create mount point: %v", err)

		return res
	}

	for _, fs := range fallbackOrder {
		if ctx.Err() != nil {
			e.removeMountPoint(ctx, mountPoint)

			res.Status = StatusFailed
			res.Reason = ctx.Err().Error()

			return res
		}

		if fs.module != "" {
			if err := e.backend.LoadModule(ctx, fs.module); err != nil {
				logger.Warn("failed to load kernel module",
					"module", fs.module, "fstype", fs.name, "error", err)
			}
		}

		if err := e.backend.Mount(ctx, imagePath, mountPoint, fs.name); err != nil {
			logger.Debug("mount attempt failed", "fstype", fs.name, "error", err)
			continue
		}

		res.Status = StatusMounted
		res.FSType = fs.name

		return res
	}

	e.removeMountPoint(ctx, mountPoint)

	res.Status = StatusFailed
	res.Reason = "unsupported format"

	return res
}

// Unmount lazily detaches the filesystem at mountPoint and removes the
// directory. It fails if mountPoint is not an active mount.
func (e *Engine) Unmount(ctx context.Context, mountPoint string) error {
	mounted, err := e.backend.Mounted(mountPoint)
	if err != nil {
		return fmt.Errorf("probing %s: %w", mountPoint, err)
	}

	if !mounted {
		return fmt.Errorf("%s is not a mount point", mountPoint)
	}

	if !e.backend.Elevated() {
		return fmt.Errorf("unmounting %s: root privileges are required", mountPoint)
	}

	if err := e.backend.Unmount(ctx, mountPoint); err != nil {
		return fmt.Errorf("unmounting %s: %w", mountPoint, err)
	}

	e.removeMountPoint(ctx, mountPoint)

	return nil
}

func (e *Engine) removeMountPoint(ctx context.Context, mountPoint string) {
	if err := os.Remove(mountPoint); err != nil && !os.IsNotExist(err) {
		ctxlog.Debug(ctx, "failed to remove mount point directory",
			"mountPoint", mountPoint, "error", err)
	}
}
