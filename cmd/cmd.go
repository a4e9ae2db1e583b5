// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"fmt"
	"os"

	"github.com/matt-FFFFFF/isobatch"
	"github.com/matt-FFFFFF/isobatch/cmd/convert"
	"github.com/matt-FFFFFF/isobatch/cmd/mount"
	"github.com/matt-FFFFFF/isobatch/cmd/scan"
	"github.com/matt-FFFFFF/isobatch/cmd/unmount"
	"github.com/urfave/cli/v3"
)

// ConfigFlag is the name of the global config file flag.
const ConfigFlag = "config"

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		mount.Cmd,
		unmount.Cmd,
		convert.Cmd,
		scan.Cmd,
	},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    ConfigFlag,
			Aliases: []string{"c"},
			Usage:   "Path to the YAML config file",
		},
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "isobatch",
	Version:   fmt.Sprintf("%s (commit: %s)", isobatch.Version, isobatch.Commit),
	Description: `Isobatch is a batch manager for disc-image files. It discovers ISO, BIN/IMG
and MDF/MDS images, lets you select any subset with free-form index and range
expressions, and mounts, unmounts or converts the whole selection concurrently
with per-file outcome reporting.`,
	Usage:     "isobatch mount",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}
