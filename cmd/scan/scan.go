// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package scan implements the scan command, which walks a directory tree
// for ISO images and adds the discoveries to the image cache used by the
// mount command.
package scan

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/isobatch/internal/color"
	"github.com/matt-FFFFFF/isobatch/internal/config"
	"github.com/matt-FFFFFF/isobatch/internal/ctxlog"
	"github.com/matt-FFFFFF/isobatch/internal/imagecache"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	configFlag = "config"
	dirArg     = "directory"
)

var isoExtensions = []string{".iso"}

// Cmd is the scan command.
var Cmd = &cli.Command{
	Name:        "scan",
	Description: "Walk a directory tree for ISO images and add them to the image cache.",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      dirArg,
			UsageText: "DIRECTORY",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.StringArg(dirArg)
	if dir == "" {
		return cli.Exit("Please provide a directory to scan", 1)
	}

	cfg, err := config.Load(cmd.String(configFlag))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fsys := afero.NewOsFs()

	found, err := imagecache.Scan(ctx, fsys, []string{dir}, isoExtensions, cfg.MaxThreads)
	if err != nil {
		ctxlog.Warn(ctx, "image scan was incomplete", "err", err)
	}

	cache := imagecache.New(fsys, cfg.CachePath)

	added, err := cache.Add(found...)
	if err != nil {
		return cli.Exit("Failed to update the image cache: "+err.Error(), 1)
	}

	fmt.Fprintf(cmd.Writer, "%s\n", color.Colorize(
		fmt.Sprintf("Found %d image(s), added %d new to the cache.", len(found), added),
		color.FgHiGreen))

	return nil
}
