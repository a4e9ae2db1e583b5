// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !linux

package loop

import "errors"

// ErrUnsupported is returned on platforms without loop-device support.
var ErrUnsupported = errors.New("loop devices are only supported on linux")

// Attach is not supported on this platform.
func Attach(_ string, _ bool) (*Device, error) {
	return nil, ErrUnsupported
}

// Detach is not supported on this platform.
func (d *Device) Detach() error {
	return ErrUnsupported
}
