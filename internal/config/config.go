// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads process-wide configuration from an optional YAML
// file. Every field has a working default, so running without a config file
// is the common case.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/isobatch/internal/mounter"
)

const appDir = "isobatch"

// Config is the process-wide configuration.
type Config struct {
	// MaxThreads caps the worker pool size for batch operations.
	MaxThreads int `yaml:"max_threads"`
	// Verbose enables the per-outcome summary after each batch.
	Verbose bool `yaml:"verbose"`
	// MountRoot is the directory mount points are created under.
	MountRoot string `yaml:"mount_root"`
	// CachePath is where the discovered-image cache is stored.
	CachePath string `yaml:"cache_path"`
	// HistoryPath is where prompt history is stored.
	HistoryPath string `yaml:"history_path"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}

	return &Config{
		MaxThreads:  runtime.NumCPU(),
		Verbose:     true,
		MountRoot:   mounter.DefaultRoot,
		CachePath:   filepath.Join(cacheDir, appDir, "images.txt"),
		HistoryPath: filepath.Join(cacheDir, appDir, "history.txt"),
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(configDir, appDir, "config.yaml")
}

// Load reads the YAML config at path, overlaying it on the defaults. An
// empty path selects DefaultPath, and a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if cfg.MaxThreads < 1 {
		cfg.MaxThreads = runtime.NumCPU()
	}

	return cfg, nil
}
