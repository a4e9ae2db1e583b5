// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package convert wraps the external tools that turn BIN/IMG and MDF/MDS
// disc images into ISOs. It mirrors the mount pipeline: one operation per
// file, outcomes classified done/skipped/failed, dispatched over the shared
// batch machinery.
package convert

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/isobatch/internal/batch"
	"github.com/matt-FFFFFF/isobatch/internal/color"
	"github.com/spf13/afero"
)

// Format identifies a convertible disc-image family.
type Format int

const (
	// FormatBinImg is a CloneCD-style BIN or IMG image, converted with ccd2iso.
	FormatBinImg Format = iota
	// FormatMdfMds is an Alcohol 120% MDF/MDS image, converted with mdf2iso.
	FormatMdfMds
)

// Tool returns the external converter executable for the format.
func (f Format) Tool() string {
	if f == FormatMdfMds {
		return "mdf2iso"
	}

	return "ccd2iso"
}

// Extensions returns the file extensions selected for the format.
func (f Format) Extensions() []string {
	if f == FormatMdfMds {
		return []string{".mdf", ".mds"}
	}

	return []string{".bin", ".img"}
}

// Runner abstracts external tool invocation so the converter is testable
// without the tools installed.
type Runner interface {
	// LookPath reports where tool is installed, or an error if it is not.
	LookPath(tool string) (string, error)
	// Run executes the tool and waits for it to finish.
	Run(ctx context.Context, tool string, args ...string) error
}

type execRunner struct{}

func (execRunner) LookPath(tool string) (string, error) {
	return exec.LookPath(tool) //nolint:wrapcheck
}

func (execRunner) Run(ctx context.Context, tool string, args ...string) error {
	return exec.CommandContext(ctx, tool, args...).Run() //nolint:wrapcheck
}

// Converter converts disc images to ISO.
type Converter struct {
	fs     afero.Fs
	runner Runner
}

// New creates a Converter using the default exec-based runner.
func New(fs afero.Fs) *Converter {
	return &Converter{fs: fs, runner: execRunner{}}
}

// NewWithRunner creates a Converter with a custom runner. Tests use this to
// simulate tool behaviour.
func NewWithRunner(fs afero.Fs, runner Runner) *Converter {
	return &Converter{fs: fs, runner: runner}
}

// Preflight verifies the external tools for the given formats are installed,
// aggregating one error per missing tool.
func (c *Converter) Preflight(formats ...Format) error {
	var merr *multierror.Error

	for _, f := range formats {
		if _, err := c.runner.LookPath(f.Tool()); err != nil {
			merr = multierror.Append(merr,
				fmt.Errorf("%s is required to convert %s images: %w",
					f.Tool(), strings.Join(f.Extensions(), "/"), err))
		}
	}

	return merr.ErrorOrNil()
}

// Op returns the batch operation converting one image of the given format.
func (c *Converter) Op(format Format) batch.Op {
	return func(ctx context.Context, imagePath string) batch.Outcome {
		return c.convert(ctx, imagePath, format)
	}
}

func (c *Converter) convert(ctx context.Context, imagePath string, format Format) batch.Outcome {
	outputPath := isoPath(imagePath)

	exists, err := afero.Exists(c.fs, outputPath)
	if err != nil {
		return failed(imagePath, err.Error())
	}

	if exists {
		// Converting again would only overwrite identical output.
		return batch.Outcome{
			Class: batch.ClassSkipped,
			Message: fmt.Sprintf("%s %s %s",
				color.Colorize("ISO exists:", color.FgHiYellow),
				color.Colorize("'"+outputPath+"'", color.FgHiBlue),
				color.Colorize("skipped.", color.FgHiYellow)),
		}
	}

	if err := c.runner.Run(ctx, format.Tool(), imagePath, outputPath); err != nil {
		// Drop whatever partial output the tool left behind.
		_ = c.fs.Remove(outputPath)

		return failed(imagePath, fmt.Sprintf("%s: %v", format.Tool(), err))
	}

	return batch.Outcome{
		Class: batch.ClassDone,
		Message: fmt.Sprintf("%s %s %s %s",
			color.Colorize("Converted:", color.Bold),
			color.Colorize("'"+imagePath+"'", color.FgHiGreen),
			color.Colorize("to:", color.Bold),
			color.Colorize("'"+outputPath+"'", color.FgHiBlue)),
	}
}

func failed(imagePath, reason string) batch.Outcome {
	return batch.Outcome{
		Class: batch.ClassFailed,
		Message: fmt.Sprintf("%s %s. %s",
			color.Colorize("Failed to convert:", color.FgHiRed),
			color.Colorize("'"+imagePath+"'", color.FgHiYellow),
			color.Colorize(reason, color.FgHiRed)),
	}
}

// isoPath swaps the image extension for .iso.
func isoPath(imagePath string) string {
	if dot := strings.LastIndexByte(imagePath, '.'); dot > strings.LastIndexByte(imagePath, '/') {
		return imagePath[:dot] + ".iso"
	}

	return imagePath + ".iso"
}
