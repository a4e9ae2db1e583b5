// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package mounter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMountPointName_Deterministic(t *testing.T) {
	a := MountPointName("/images/disc one.iso")
	b := MountPointName("/images/disc one.iso")

	assert.Equal(t, a, b, "same path must always map to the same name")
}

func TestMountPointName_Shape(t *testing.T) {
	name := MountPointName("/images/Game Disc.iso")

	assert.True(t, strings.HasPrefix(name, "iso_Game Disc_"), "stem is preserved: %s", name)

	hash := name[strings.LastIndex(name, "_")+1:]
	assert.Len(t, hash, shortHashLen)

	for _, r := range hash {
		assert.Contains(t, base36Digits, string(r))
	}
}

func TestMountPointName_DistinguishesSameStem(t *testing.T) {
	a := MountPointName("/images/a/disc.iso")
	b := MountPointName("/images/b/disc.iso")

	assert.NotEqual(t, a, b, "same stem in different directories must not collide")
}

func TestMountPointName_PinnedHash(t *testing.T) {
	// The short hash is pinned to xxh3-64 so mount points survive restarts
	// and rebuilds. A change here orphans existing mount directories.
	assert.Equal(t, "iso_disc_"+shortHash("/images/disc.iso"), MountPointName("/images/disc.iso"))
	assert.Len(t, shortHash(""), shortHashLen)
}
