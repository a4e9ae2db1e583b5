// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package imagecache persists the list of discovered disc-image paths
// between runs as a plain-text, path-per-line file. It is the candidate
// supplier for the selection and batch subsystems.
package imagecache

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// MaxEntries caps the cache so a runaway scan cannot grow it unbounded.
const MaxEntries = 100000

// Cache is a persisted candidate-path list. All filesystem access goes
// through afero so tests run against an in-memory filesystem.
type Cache struct {
	fs   afero.Fs
	path string
}

// New creates a cache stored at path on fs.
func New(fs afero.Fs, path string) *Cache {
	return &Cache{fs: fs, path: path}
}

// Load reads the cached paths in file order. A missing cache file is an
// empty cache, not an error.
func (c *Cache) Load() ([]string, error) {
	exists, err := afero.Exists(c.fs, c.path)
	if err != nil {
		return nil, fmt.Errorf("checking cache file %s: %w", c.path, err)
	}

	if !exists {
		return nil, nil
	}

	data, err := afero.ReadFile(c.fs, c.path)
	if err != nil {
		return nil, fmt.Errorf("reading cache file %s: %w", c.path, err)
	}

	var paths []string

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		paths = append(paths, line)

		if len(paths) == MaxEntries {
			break
		}
	}

	return paths, nil
}

// Save writes the paths to the cache file, replacing its contents. The write
// goes through a temporary file and a rename so a crash cannot leave a
// half-written cache.
func (c *Cache) Save(paths []string) error {
	if len(paths) > MaxEntries {
		paths = paths[:MaxEntries]
	}

	tmp, err := afero.TempFile(c.fs, "", "imagecache")
	if err != nil {
		return fmt.Errorf("creating temporary cache file: %w", err)
	}

	tmpName := tmp.Name()

	if _, err := tmp.WriteString(strings.Join(paths, "\n") + "\n"); err != nil {
		_ = tmp.Close()
		_ = c.fs.Remove(tmpName)

		return fmt.Errorf("writing temporary cache file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = c.fs.Remove(tmpName)

		return fmt.Errorf("closing temporary cache file: %w", err)
	}

	if err := c.fs.Rename(tmpName, c.path); err != nil {
		_ = c.fs.Remove(tmpName)

		return fmt.Errorf("replacing cache file %s: %w", c.path, err)
	}

	return nil
}

// Add merges new paths into the cache, deduplicating against existing
// entries, and saves.
func (c *Cache) Add(paths ...string) (int, error) {
	existing, err := c.Load()
	if err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		seen[p] = struct{}{}
	}

	added := 0

	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}

		seen[p] = struct{}{}
		existing = append(existing, p)
		added++
	}

	if added == 0 {
		return 0, nil
	}

	return added, c.Save(existing)
}

// Prune drops cached paths that no longer exist on disk and saves the result
// if anything changed. It returns the surviving paths.
func (c *Cache) Prune() ([]string, error) {
	paths, err := c.Load()
	if err != nil {
		return nil, err
	}

	kept := paths[:0]

	for _, p := range paths {
		exists, err := afero.Exists(c.fs, p)
		if err != nil {
			return nil, fmt.Errorf("checking %s: %w", p, err)
		}

		if exists {
			kept = append(kept, p)
		}
	}

	if len(kept) != len(paths) {
		if err := c.Save(kept); err != nil {
			return nil, err
		}
	}

	return kept, nil
}

// SortPaths orders paths case-insensitively in place, the order the
// interactive list is displayed in.
func SortPaths(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		return strings.ToLower(paths[i]) < strings.ToLower(paths[j])
	})
}
