// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package mount implements the interactive mount command: list the cached
// images, read a selection, and mount it as a concurrent batch.
package mount

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/isobatch/internal/batch"
	"github.com/matt-FFFFFF/isobatch/internal/color"
	"github.com/matt-FFFFFF/isobatch/internal/config"
	"github.com/matt-FFFFFF/isobatch/internal/display"
	"github.com/matt-FFFFFF/isobatch/internal/imagecache"
	"github.com/matt-FFFFFF/isobatch/internal/imagefilter"
	"github.com/matt-FFFFFF/isobatch/internal/mounter"
	"github.com/matt-FFFFFF/isobatch/internal/prompt"
	"github.com/matt-FFFFFF/isobatch/internal/selection"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	configFlag  = "config"
	threadsFlag = "threads"
)

// Cmd is the interactive mount command.
var Cmd = &cli.Command{
	Name:        "mount",
	Description: "List cached disc images and mount a selection of them.",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    threadsFlag,
			Aliases: []string{"t"},
			Usage:   "Maximum number of concurrent mount workers",
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String(configFlag))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if t := cmd.Int(threadsFlag); t > 0 {
		cfg.MaxThreads = t
	}

	backend := mounter.NewBackend()

	s := &session{
		cfg:    cfg,
		w:      cmd.Writer,
		cache:  imagecache.New(afero.NewOsFs(), cfg.CachePath),
		engine: mounter.New(backend, cfg.MountRoot),
		dispatcher: &batch.Dispatcher{
			MaxWorkers: cfg.MaxThreads,
			Progress:   cmd.Writer,
		},
		prompt: prompt.New(cfg.HistoryPath),
	}
	defer s.prompt.Close()

	return s.run(ctx)
}

type session struct {
	cfg        *config.Config
	w          io.Writer
	cache      *imagecache.Cache
	engine     *mounter.Engine
	dispatcher *batch.Dispatcher
	prompt     *prompt.Prompt
}

// run is the outer list-and-select loop. It exits on an empty selection,
// Ctrl+C, end of input or context cancellation.
func (s *session) run(ctx context.Context) error {
	for ctx.Err() == nil {
		files, err := s.cache.Prune()
		if err != nil {
			return cli.Exit("Failed to read the image cache: "+err.Error(), 1)
		}

		if len(files) == 0 {
			fmt.Fprintln(s.w, color.Colorize(
				"The image cache is empty. Run 'isobatch scan DIRECTORY' to discover images.",
				color.FgHiYellow))

			return nil
		}

		imagecache.SortPaths(files)

		fmt.Fprintln(s.w)
		display.List(s.w, files)

		input, err := s.prompt.Input("ISO(s) to mount (e.g. '1-3 7', '00' for all), '/' to filter, Enter to exit: ")
		if err != nil {
			fmt.Fprintln(s.w)

			return nil
		}

		input = strings.TrimSpace(input)

		switch input {
		case "":
			return nil
		case "/":
			if err := s.filter(ctx, files); err != nil {
				return err
			}
		default:
			s.mountSelection(ctx, input, files)
		}
	}

	return nil
}

// filter narrows the candidate list by a substring query and runs a
// selection loop over the matches. Returning from either prompt goes back
// to the full list.
func (s *session) filter(ctx context.Context, files []string) error {
	query, err := s.prompt.Input("Filter query (';' separates terms), Enter to go back: ")
	if err != nil {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	s.prompt.Remember(query)

	matched := imagefilter.Filter(files, query)
	if len(matched) == 0 {
		fmt.Fprintln(s.w, color.Colorize("No images match the filter query.", color.FgHiRed))

		return nil
	}

	for ctx.Err() == nil {
		fmt.Fprintln(s.w)
		display.List(s.w, matched)

		input, err := s.prompt.Input("ISO(s) to mount ('00' for all), Enter to go back: ")
		if err != nil {
			fmt.Fprintln(s.w)

			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			return nil
		}

		s.mountSelection(ctx, input, matched)
	}

	return nil
}

func (s *session) mountSelection(ctx context.Context, input string, files []string) {
	if !selection.IsAll(input) {
		s.prompt.Remember(input)
	}

	indices, inputErrors := selection.Resolve(input, len(files))

	fmt.Fprintln(s.w, color.Colorize("Please wait...", color.Bold))

	report := s.dispatcher.Run(ctx, indices, files, s.mountOp)

	if s.cfg.Verbose || len(inputErrors) > 0 {
		display.Report(s.w, report, inputErrors)
		s.pause()
	}
}

func (s *session) mountOp(ctx context.Context, imagePath string) batch.Outcome {
	result := s.engine.Mount(ctx, imagePath)

	class := batch.ClassDone

	switch result.Status {
	case mounter.StatusAlreadyMounted:
		class = batch.ClassSkipped
	case mounter.StatusFailed:
		class = batch.ClassFailed
	case mounter.StatusMounted:
	}

	return batch.Outcome{Class: class, Message: result.Message()}
}

func (s *session) pause() {
	_, _ = s.prompt.Input("Enter to continue... ")
}
