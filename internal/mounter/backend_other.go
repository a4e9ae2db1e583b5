// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !linux

package mounter

import "context"

var _ Backend = (*unsupportedBackend)(nil)

type unsupportedBackend struct{}

// NewBackend returns a backend whose operations all fail with
// ErrUnsupportedPlatform.
func NewBackend() Backend {
	return &unsupportedBackend{}
}

func (b *unsupportedBackend) Mounted(_ string) (bool, error) {
	return false, ErrUnsupportedPlatform
}

func (b *unsupportedBackend) Elevated() bool {
	return false
}

func (b *unsupportedBackend) LoadModule(_ context.Context, _ string) error {
	return ErrUnsupportedPlatform
}

func (b *unsupportedBackend) Mount(_ context.Context, _, _, _ string) error {
	return ErrUnsupportedPlatform
}

func (b *unsupportedBackend) Unmount(_ context.Context, _ string) error {
	return ErrUnsupportedPlatform
}
