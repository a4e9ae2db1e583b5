// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package imagecache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/isobatch/internal/ctxlog"
	"github.com/matt-FFFFFF/isobatch/internal/pool"
	"github.com/spf13/afero"
)

// Scan walks the given roots concurrently and returns every regular file
// whose extension matches one of exts (case-insensitive, leading dot
// included, e.g. ".iso"). Unreadable roots are aggregated into the returned
// error; readable roots still contribute their results.
func Scan(ctx context.Context, fsys afero.Fs, roots []string, exts []string, workers int) ([]string, error) {
	extSet := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		extSet[strings.ToLower(e)] = struct{}{}
	}

	var (
		mu    sync.Mutex
		found []string
		merr  *multierror.Error
	)

	p := pool.New(ctx, min(len(roots), max(workers, 1)))

	for _, root := range roots {
		p.Submit(func() {
			var local []string

			err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}

				if ctx.Err() != nil {
					return filepath.SkipAll
				}

				if info.IsDir() {
					return nil
				}

				if _, ok := extSet[strings.ToLower(filepath.Ext(path))]; ok {
					local = append(local, path)
				}

				return nil
			})

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				merr = multierror.Append(merr, err)
			}

			found = append(found, local...)
		})
	}

	p.Close()

	SortPaths(found)

	if len(found) > MaxEntries {
		ctxlog.Warn(ctx, "scan results truncated", "limit", MaxEntries)

		found = found[:MaxEntries]
	}

	return found, merr.ErrorOrNil()
}
