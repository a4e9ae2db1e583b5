// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build linux

package loop

import (
	"fmt"

	"golang.org/x/sys/unix"
)

const loopControl = "/dev/loop-control"

// Attach associates a free loop device with the backing file and returns it.
// The device is configured with LO_FLAGS_AUTOCLEAR so the kernel releases it
// when the last reference (the mount) goes away; callers only need Detach on
// the error path before a mount exists.
func Attach(backingFile string, readOnly bool) (*Device, error) {
	flags := unix.O_CLOEXEC
	if readOnly {
		flags |= unix.O_RDONLY
	} else {
		flags |= unix.O_RDWR
	}

	backingFd, err := unix.Open(backingFile, flags, 0)
	if err != nil {
		return nil, fmt.Errorf("opening backing file %s: %w", backingFile, err)
	}
	defer unix.Close(backingFd)

	ctlFd, err := unix.Open(loopControl, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", loopControl, err)
	}
	defer unix.Close(ctlFd)

	num, err := unix.IoctlRetInt(ctlFd, unix.LOOP_CTL_GET_FREE)
	if err != nil {
		return nil, fmt.Errorf("LOOP_CTL_GET_FREE: %w", err)
	}

	dev := &Device{Num: num, Path: fmt.Sprintf("/dev/loop%d", num)}

	loopFd, err := unix.Open(dev.Path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("opening loop device %s: %w", dev.Path, err)
	}
	defer unix.Close(loopFd)

	if err := unix.IoctlSetInt(loopFd, unix.LOOP_SET_FD, backingFd); err != nil {
		return nil, fmt.Errorf("LOOP_SET_FD on %s: %w", dev.Path, err)
	}

	info := &unix.LoopInfo64{
		Flags: unix.LO_FLAGS_AUTOCLEAR,
	}
	if readOnly {
		info.Flags |= unix.LO_FLAGS_READ_ONLY
	}

	copy(info.File_name[:], backingFile)

	if err := unix.IoctlLoopSetStatus64(loopFd, info); err != nil {
		// Roll back the association rather than leak the device.
		_ = unix.IoctlSetInt(loopFd, unix.LOOP_CLR_FD, 0)

		return nil, fmt.Errorf("LOOP_SET_STATUS64 on %s: %w", dev.Path, err)
	}

	return dev, nil
}

// Detach disassociates the loop device from its backing file.
func (d *Device) Detach() error {
	fd, err := unix.Open(d.Path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("opening loop device %s: %w", d.Path, err)
	}
	defer unix.Close(fd)

	if err := unix.IoctlSetInt(fd, unix.LOOP_CLR_FD, 0); err != nil {
		return fmt.Errorf("LOOP_CLR_FD on %s: %w", d.Path, err)
	}

	return nil
}
