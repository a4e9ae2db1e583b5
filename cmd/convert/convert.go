// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package convert implements the interactive convert command: discover
// BIN/IMG or MDF/MDS images under a directory and convert a selection of
// them to ISO with the external converter tools.
package convert

import (
	"context"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/isobatch/internal/batch"
	"github.com/matt-FFFFFF/isobatch/internal/color"
	"github.com/matt-FFFFFF/isobatch/internal/config"
	"github.com/matt-FFFFFF/isobatch/internal/convert"
	"github.com/matt-FFFFFF/isobatch/internal/ctxlog"
	"github.com/matt-FFFFFF/isobatch/internal/display"
	"github.com/matt-FFFFFF/isobatch/internal/imagecache"
	"github.com/matt-FFFFFF/isobatch/internal/prompt"
	"github.com/matt-FFFFFF/isobatch/internal/selection"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	configFlag = "config"
	formatFlag = "format"
	dirArg     = "directory"
)

// Cmd is the interactive convert command.
var Cmd = &cli.Command{
	Name:        "convert",
	Description: "Discover BIN/IMG or MDF/MDS images under a directory and convert a selection of them to ISO.",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      dirArg,
			UsageText: "DIRECTORY",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
	},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:        formatFlag,
			Aliases:     []string{"f"},
			Usage:       "Source image format: 'bin' (BIN/IMG) or 'mdf' (MDF/MDS)",
			Value:       "bin",
			DefaultText: "bin",
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String(configFlag))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	var format convert.Format

	switch strings.ToLower(cmd.String(formatFlag)) {
	case "bin":
		format = convert.FormatBinImg
	case "mdf":
		format = convert.FormatMdfMds
	default:
		return cli.Exit(fmt.Sprintf("Unknown format '%s': expected 'bin' or 'mdf'", cmd.String(formatFlag)), 1)
	}

	dir := cmd.StringArg(dirArg)
	if dir == "" {
		dir = "."
	}

	fsys := afero.NewOsFs()

	converter := convert.New(fsys)
	if err := converter.Preflight(format); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	dispatcher := &batch.Dispatcher{
		MaxWorkers: cfg.MaxThreads,
		Progress:   cmd.Writer,
	}

	p := prompt.New(cfg.HistoryPath)
	defer p.Close()

	for ctx.Err() == nil {
		files, err := imagecache.Scan(ctx, fsys, []string{dir}, format.Extensions(), cfg.MaxThreads)
		if err != nil {
			ctxlog.Warn(ctx, "image scan was incomplete", "err", err)
		}

		if len(files) == 0 {
			fmt.Fprintf(cmd.Writer, "%s\n", color.Colorize(
				fmt.Sprintf("No %s images found under '%s'.",
					strings.Join(format.Extensions(), "/"), dir),
				color.FgHiYellow))

			return nil
		}

		fmt.Fprintln(cmd.Writer)
		display.List(cmd.Writer, files)

		input, err := p.Input("Image(s) to convert (e.g. '1-3 7', '00' for all), Enter to exit: ")
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

		indices, inputErrors := selection.Resolve(input, len(files))

		fmt.Fprintln(cmd.Writer, color.Colorize("Please wait...", color.Bold))

		report := dispatcher.Run(ctx, indices, files, converter.Op(format))

		if cfg.Verbose || len(inputErrors) > 0 {
			display.Report(cmd.Writer, report, inputErrors)

			_, _ = p.Input("Enter to continue... ")
		}
	}

	return nil
}
