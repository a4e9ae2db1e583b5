// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package unmount implements the interactive unmount command. It only
// offers mount points that this tool created and that are still mounted.
package unmount

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matt-FFFFFF/isobatch/internal/batch"
	"github.com/matt-FFFFFF/isobatch/internal/color"
	"github.com/matt-FFFFFF/isobatch/internal/config"
	"github.com/matt-FFFFFF/isobatch/internal/display"
	"github.com/matt-FFFFFF/isobatch/internal/mounter"
	"github.com/matt-FFFFFF/isobatch/internal/prompt"
	"github.com/matt-FFFFFF/isobatch/internal/selection"
	"github.com/urfave/cli/v3"
)

const configFlag = "config"

// Cmd is the interactive unmount command.
var Cmd = &cli.Command{
	Name:        "unmount",
	Aliases:     []string{"umount"},
	Description: "List active mount points created by this tool and unmount a selection of them.",
	Action:      actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String(configFlag))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	backend := mounter.NewBackend()
	engine := mounter.New(backend, cfg.MountRoot)
	dispatcher := &batch.Dispatcher{
		MaxWorkers: cfg.MaxThreads,
		Progress:   cmd.Writer,
	}

	p := prompt.New(cfg.HistoryPath)
	defer p.Close()

	unmountOp := func(ctx context.Context, target string) batch.Outcome {
		if err := engine.Unmount(ctx, target); err != nil {
			return batch.Outcome{
				Class: batch.ClassFailed,
				Message: color.Colorize(
					fmt.Sprintf("Failed to unmount: '%s'. %s", target, err), color.FgHiRed),
			}
		}

		return batch.Outcome{
			Class:   batch.ClassDone,
			Message: color.Colorize(fmt.Sprintf("Unmounted: '%s'", target), color.FgHiGreen),
		}
	}

	for ctx.Err() == nil {
		targets, err := activeMountPoints(cfg.MountRoot, backend)
		if err != nil {
			return cli.Exit("Failed to enumerate mount points: "+err.Error(), 1)
		}

		if len(targets) == 0 {
			fmt.Fprintf(cmd.Writer, "%s\n", color.Colorize(
				fmt.Sprintf("No active mount points under '%s'.", cfg.MountRoot),
				color.FgHiYellow))

			return nil
		}

		fmt.Fprintln(cmd.Writer)
		display.List(cmd.Writer, targets)

		input, err := p.Input("Mount point(s) to unmount (e.g. '1-3 7', '00' for all), Enter to exit: ")
		if err != nil {
			fmt.Fprintln(cmd.Writer)

			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			return nil
		}

		if !selection.IsAll(input) {
			p.Remember(input)
		}

		indices, inputErrors := selection.Resolve(input, len(targets))

		fmt.Fprintln(cmd.Writer, color.Colorize("Please wait...", color.Bold))

		report := dispatcher.Run(ctx, indices, targets, unmountOp)

		if cfg.Verbose || len(inputErrors) > 0 {
			display.Report(cmd.Writer, report, inputErrors)

			_, _ = p.Input("Enter to continue... ")
		}
	}

	return nil
}

// activeMountPoints lists the directories under root that carry this tool's
// naming prefix and currently have a filesystem mounted on them.
func activeMountPoints(root string, backend mounter.Backend) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, err
	}

	var targets []string

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), mounter.MountPrefix) {
			continue
		}

		target := filepath.Join(root, entry.Name())

		mounted, err := backend.Mounted(target)
		if err != nil {
			return nil, err
		}

		if mounted {
			targets = append(targets, target)
		}
	}

	return targets, nil
}
