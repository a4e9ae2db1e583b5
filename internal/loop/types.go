// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package loop manages Linux loop devices, which back the read-only loop
// mounts performed by the mount engine.
package loop

// Device is an attached loop device.
type Device struct {
	// Num is the loop device number, e.g. 3 for /dev/loop3.
	Num int
	// Path is the device node path, e.g. "/dev/loop3".
	Path string
}
