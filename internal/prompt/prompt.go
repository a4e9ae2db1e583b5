// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package prompt wraps the interactive readline layer. It supplies the raw
// selection strings and filter queries consumed by the selection parser, and
// persists input history between runs.
package prompt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/peterh/liner"
)

// ErrAborted is returned when the user cancels the prompt with Ctrl+C.
var ErrAborted = errors.New("prompt aborted")

// Prompt is an interactive line reader with persistent history.
// Close must be called to restore the terminal state.
type Prompt struct {
	line        *liner.State
	historyPath string
}

// New creates a prompt, loading history from historyPath if it exists.
// An empty historyPath disables persistence.
func New(historyPath string) *Prompt {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	p := &Prompt{line: line, historyPath: historyPath}

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = line.ReadHistory(f)
			_ = f.Close()
		}
	}

	return p
}

// Input displays text and reads one line. Ctrl+C yields ErrAborted and
// end-of-input yields io.EOF.
func (p *Prompt) Input(text string) (string, error) {
	input, err := p.line.Prompt(text)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", ErrAborted
		}

		return "", fmt.Errorf("reading input: %w", err)
	}

	return input, nil
}

// Remember appends input to the in-memory history and persists it.
func (p *Prompt) Remember(input string) {
	if input == "" {
		return
	}

	p.line.AppendHistory(input)

	if p.historyPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(p.historyPath), 0o755); err != nil {
		return
	}

	f, err := os.Create(p.historyPath)
	if err != nil {
		return
	}
	defer f.Close() //nolint:errcheck

	_, _ = p.line.WriteHistory(f)
}

// Close restores the terminal state.
func (p *Prompt) Close() {
	_ = p.line.Close()
}
