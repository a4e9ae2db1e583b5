// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package display renders candidate lists and batch reports for the
// interactive CLI.
package display

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/matt-FFFFFF/isobatch/internal/batch"
	"github.com/matt-FFFFFF/isobatch/internal/color"
)

// List prints a numbered candidate list, the numbers being what the
// selection grammar refers to.
func List(w io.Writer, paths []string) {
	for i, p := range paths {
		dir, file := filepath.Split(p)

		fmt.Fprintf(w, "%s %s%s\n",
			color.Colorize(fmt.Sprintf("%4d.", i+1), color.Bold, color.FgCyan),
			color.Colorize(dir, color.Faint),
			color.Colorize(file, color.FgHiGreen),
		)
	}
}

// Report prints the outcome sets of a batch followed by any input
// validation errors. Outcome messages are already colorized by their
// producers; input errors are colorized here.
func Report(w io.Writer, report *batch.Report, inputErrors []string) {
	printGroup(w, report.Done)
	printGroup(w, report.Skipped)
	printGroup(w, report.Failed)

	if len(inputErrors) > 0 {
		fmt.Fprintln(w)

		for _, msg := range inputErrors {
			fmt.Fprintln(w, color.Colorize(msg, color.FgHiRed))
		}
	}
}

func printGroup(w io.Writer, messages []string) {
	if len(messages) == 0 {
		return
	}

	fmt.Fprintln(w)

	for _, msg := range messages {
		fmt.Fprintln(w, msg)
	}
}
