// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package mounter

import (
	"fmt"

	"github.com/matt-FFFFFF/isobatch/internal/color"
)

// Status classifies the outcome of a single mount attempt.
type Status int

const (
	// StatusMounted means the image was mounted by this attempt.
	StatusMounted Status = iota
	// StatusAlreadyMounted means the target was an active mount before the
	// attempt; nothing was done.
	StatusAlreadyMounted
	// StatusFailed means the image could not be mounted.
	StatusFailed
)

// String implements the Stringer interface for Status.
func (s Status) String() string {
	switch s {
	case StatusMounted:
		return "mounted"
	case StatusAlreadyMounted:
		return "already mounted"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of mounting one image file.
type Result struct {
	Status     Status
	Image      string // absolute path of the image file
	MountPoint string // resolved mount point directory
	FSType     string // filesystem type that succeeded, when Status is StatusMounted
	Reason     string // failure explanation, when Status is StatusFailed
}

// Message renders the result as a single human-readable line. Identical
// results produce identical messages so they coalesce in outcome sets.
func (r Result) Message() string {
	switch r.Status {
	case StatusMounted:
		return fmt.Sprintf("%s %s %s %s {%s}",
			color.Colorize("ISO:", color.Bold),
			color.Colorize("'"+r.Image+"'", color.FgHiGreen),
			color.Colorize("mounted at:", color.Bold),
			color.Colorize("'"+r.MountPoint+"'", color.FgHiBlue),
			r.FSType,
		)
	case StatusAlreadyMounted:
		return fmt.Sprintf("%s %s %s %s",
			color.Colorize("ISO:", color.FgHiYellow),
			color.Colorize("'"+r.Image+"'", color.FgHiGreen),
			color.Colorize("already mounted at:", color.FgHiYellow),
			color.Colorize("'"+r.MountPoint+"'", color.FgHiBlue),
		)
	default:
		return fmt.Sprintf("%s %s. %s",
			color.Colorize("Failed to mount:", color.FgHiRed),
			color.Colorize("'"+r.Image+"'", color.FgHiYellow),
			color.Colorize(r.Reason, color.FgHiRed),
		)
	}
}
