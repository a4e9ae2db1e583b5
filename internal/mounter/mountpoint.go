// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package mounter

import (
	"path/filepath"
	"strings"

	"github.com/zeebo/xxh3"
)

// MountPrefix starts every mount-point directory name created by this
// package; the unmount command uses it to recognise its own directories.
const MountPrefix = "iso_"

const (
	shortHashLen = 5
	base36Digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	base36Radix  = 36
)

// MountPointName derives the directory name an image is mounted under: the
// image's file stem plus a short hash of its full path. The hash keeps names
// collision-resistant and independent of path length, and xxh3 is stable
// across runs so the same image always maps to the same directory.
func MountPointName(imagePath string) string {
	stem := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))

	return MountPrefix + stem + "_" + shortHash(imagePath)
}

// shortHash encodes the low bits of the path hash as a fixed-width base-36
// string, least significant digit first.
func shortHash(s string) string {
	h := xxh3.HashString(s)

	buf := make([]byte, 0, shortHashLen)
	for range shortHashLen {
		buf = append(buf, base36Digits[h%base36Radix])
		h /= base36Radix
	}

	return string(buf)
}
