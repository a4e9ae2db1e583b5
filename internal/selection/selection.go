// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package selection parses free-form index selection strings such as
// "1-3 5 7" into a validated, deduplicated set of 1-based indices.
//
// The grammar recognises single indices ("7"), inclusive ranges ("2-5",
// descending allowed as "5-2") and collects one error message per distinct
// invalid token. Invalid tokens never prevent valid ones from being used.
package selection

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// All is the sentinel input meaning "select every candidate". It is handled
// by callers before token parsing; as a regular token it is invalid.
const All = "00"

// IsAll reports whether the raw input is the select-all sentinel.
func IsAll(input string) bool {
	return strings.TrimSpace(input) == All
}

// Resolve turns a raw selection string into indices, expanding the
// select-all sentinel to every candidate.
func Resolve(input string, maxIndex int) (indices []int, errs []string) {
	if IsAll(input) {
		indices = make([]int, maxIndex)
		for i := range indices {
			indices[i] = i + 1
		}

		return indices, nil
	}

	sel := Parse(input, maxIndex)

	return sel.Indices, sel.Errors
}

// Selection is the outcome of parsing one input string.
type Selection struct {
	// Indices are the validated 1-based indices in first-appearance order,
	// with duplicates arising from overlapping tokens removed.
	Indices []int
	// Errors are the deduplicated error messages for invalid tokens, in
	// first-appearance order.
	Errors []string
}

// Parse parses a whitespace-delimited selection string against a candidate
// list of the given size. A token equal to "/" terminates parsing; it is the
// filter-mode escape of the interactive prompt.
func Parse(input string, maxIndex int) *Selection {
	s := &Selection{}

	seenIndices := make(map[int]struct{})
	seenRanges := make(map[[2]int]struct{})
	seenErrors := make(map[string]struct{})

	addError := func(msg string) {
		if _, ok := seenErrors[msg]; ok {
			return
		}

		seenErrors[msg] = struct{}{}
		s.Errors = append(s.Errors, msg)
	}

	addIndex := func(i int) {
		if _, ok := seenIndices[i]; ok {
			return
		}

		seenIndices[i] = struct{}{}
		s.Indices = append(s.Indices, i)
	}

	for _, token := range strings.Fields(input) {
		if token == "/" {
			break
		}

		if isAllZeros(token) {
			addError("Invalid index: '0'.")
			continue
		}

		dash := strings.IndexByte(token, '-')
		if dash < 0 {
			parseSingle(token, maxIndex, addIndex, addError)
			continue
		}

		// Exactly one interior hyphen with digits adjacent on both sides.
		if strings.IndexByte(token[dash+1:], '-') >= 0 ||
			dash == 0 || dash == len(token)-1 ||
			!isDigit(token[dash-1]) || !isDigit(token[dash+1]) {
			addError(fmt.Sprintf("Invalid input: '%s'.", token))
			continue
		}

		start, err := parseBound(token[:dash])
		if err != nil {
			addError(boundErrorMessage(token, err))
			continue
		}

		end, err := parseBound(token[dash+1:])
		if err != nil {
			addError(boundErrorMessage(token, err))
			continue
		}

		if start < 1 || start > maxIndex || end < 1 || end > maxIndex {
			addError(fmt.Sprintf("Invalid range: '%d-%d'.", start, end))
			continue
		}

		// Identical ranges are suppressed to avoid re-enqueuing the same work.
		r := [2]int{start, end}
		if _, ok := seenRanges[r]; ok {
			continue
		}

		seenRanges[r] = struct{}{}

		step := 1
		if start > end {
			step = -1
		}

		for i := start; ; i += step {
			addIndex(i)

			if i == end {
				break
			}
		}
	}

	return s
}

func parseSingle(token string, maxIndex int, addIndex func(int), addError func(string)) {
	n, err := parseBound(token)

	switch {
	case errors.Is(err, strconv.ErrRange):
		// Too large for an int is out of range for any candidate list.
		addError(fmt.Sprintf("Invalid index: '%s'.", token))
	case err != nil:
		addError(fmt.Sprintf("Invalid input: '%s'.", token))
	case n > maxIndex:
		addError(fmt.Sprintf("Invalid index: '%d'.", n))
	default:
		addIndex(n)
	}
}

var errNotNumeric = errors.New("not a numeric token")

// parseBound parses a digits-only value. Anything else, including signs and
// embedded whitespace, is rejected.
func parseBound(str string) (int, error) {
	if str == "" {
		return 0, errNotNumeric
	}

	for i := range len(str) {
		if !isDigit(str[i]) {
			return 0, errNotNumeric
		}
	}

	n, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("parsing bound %q: %w", str, err)
	}

	return n, nil
}

func boundErrorMessage(token string, err error) string {
	if errors.Is(err, strconv.ErrRange) {
		return fmt.Sprintf("Invalid range: '%s'.", token)
	}

	return fmt.Sprintf("Invalid input: '%s'.", token)
}

func isAllZeros(token string) bool {
	for i := range len(token) {
		if token[i] != '0' {
			return false
		}
	}

	return len(token) > 0
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
