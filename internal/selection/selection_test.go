// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package selection

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		maxIndex    int
		wantIndices []int
		wantErrors  []string
	}{
		{
			name:        "single_index",
			input:       "3",
			maxIndex:    5,
			wantIndices: []int{3},
		},
		{
			name:        "multiple_indices",
			input:       "1 5",
			maxIndex:    5,
			wantIndices: []int{1, 5},
		},
		{
			name:        "ascending_range",
			input:       "2-4",
			maxIndex:    5,
			wantIndices: []int{2, 3, 4},
		},
		{
			name:        "descending_range",
			input:       "4-2",
			maxIndex:    5,
			wantIndices: []int{4, 3, 2},
		},
		{
			name:        "single_element_range",
			input:       "3-3",
			maxIndex:    5,
			wantIndices: []int{3},
		},
		{
			name:        "overlapping_ranges_deduplicate",
			input:       "1-3 2-4",
			maxIndex:    5,
			wantIndices: []int{1, 2, 3, 4},
		},
		{
			name:        "duplicate_range_suppressed",
			input:       "1-3 1-3",
			maxIndex:    5,
			wantIndices: []int{1, 2, 3},
		},
		{
			name:        "duplicate_index_first_occurrence_wins",
			input:       "2 2 2",
			maxIndex:    5,
			wantIndices: []int{2},
		},
		{
			name:       "zero_is_invalid",
			input:      "0",
			maxIndex:   5,
			wantErrors: []string{"Invalid index: '0'."},
		},
		{
			name:       "all_zeros_token_is_invalid",
			input:      "000",
			maxIndex:   5,
			wantErrors: []string{"Invalid index: '0'."},
		},
		{
			name:       "repeated_invalid_tokens_collapse",
			input:      "x x 0 0",
			maxIndex:   5,
			wantErrors: []string{"Invalid input: 'x'.", "Invalid index: '0'."},
		},
		{
			name:        "errors_do_not_block_valid_indices",
			input:       "1 bogus 3",
			maxIndex:    5,
			wantIndices: []int{1, 3},
			wantErrors:  []string{"Invalid input: 'bogus'."},
		},
		{
			name:       "index_above_max",
			input:      "9",
			maxIndex:   5,
			wantErrors: []string{"Invalid index: '9'."},
		},
		{
			name:       "range_above_max",
			input:      "2-9",
			maxIndex:   5,
			wantErrors: []string{"Invalid range: '2-9'."},
		},
		{
			name:       "two_hyphens_rejected",
			input:      "1-2-3",
			maxIndex:   5,
			wantErrors: []string{"Invalid input: '1-2-3'."},
		},
		{
			name:       "leading_hyphen_rejected",
			input:      "-3",
			maxIndex:   5,
			wantErrors: []string{"Invalid input: '-3'."},
		},
		{
			name:       "trailing_hyphen_rejected",
			input:      "3-",
			maxIndex:   5,
			wantErrors: []string{"Invalid input: '3-'."},
		},
		{
			name:       "non_numeric_range_bound_rejected",
			input:      "1-x",
			maxIndex:   5,
			wantErrors: []string{"Invalid input: '1-x'."},
		},
		{
			name:       "huge_index_reported_out_of_range",
			input:      "99999999999999999999",
			maxIndex:   5,
			wantErrors: []string{"Invalid index: '99999999999999999999'."},
		},
		{
			name:        "slash_terminates_parsing",
			input:       "1 / 3",
			maxIndex:    5,
			wantIndices: []int{1},
		},
		{
			name:     "empty_input",
			input:    "   ",
			maxIndex: 5,
		},
		{
			name:        "worked_example",
			input:       "1-3 5",
			maxIndex:    5,
			wantIndices: []int{1, 2, 3, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input, tt.maxIndex)
			assert.Equal(t, tt.wantIndices, got.Indices)
			assert.Equal(t, tt.wantErrors, got.Errors)
		})
	}
}

func TestParse_RangeExpansionProperty(t *testing.T) {
	// For all valid "a-b" the expanded set equals {min..max}, walked in the
	// direction of the token.
	const maxIndex = 12

	for a := 1; a <= maxIndex; a++ {
		for b := 1; b <= maxIndex; b++ {
			got := Parse(fmt.Sprintf("%d-%d", a, b), maxIndex)

			lo, hi := a, b
			if lo > hi {
				lo, hi = hi, lo
			}

			assert.Len(t, got.Indices, hi-lo+1, "a=%d b=%d", a, b)
			assert.Empty(t, got.Errors, "a=%d b=%d", a, b)
			assert.Equal(t, a, got.Indices[0], "expansion starts at the left bound")
			assert.Equal(t, b, got.Indices[len(got.Indices)-1], "expansion ends at the right bound")
		}
	}
}

func TestIsAll(t *testing.T) {
	assert.True(t, IsAll("00"))
	assert.True(t, IsAll("  00  "))
	assert.False(t, IsAll("0"))
	assert.False(t, IsAll("00 1"))
}

func TestResolve(t *testing.T) {
	t.Run("AllSentinelExpandsToEveryCandidate", func(t *testing.T) {
		indices, errs := Resolve("00", 4)

		assert.Equal(t, []int{1, 2, 3, 4}, indices)
		assert.Empty(t, errs)
	})

	t.Run("DelegatesToParse", func(t *testing.T) {
		indices, errs := Resolve("1-2 9", 4)

		assert.Equal(t, []int{1, 2}, indices)
		assert.Equal(t, []string{"Invalid index: '9'."}, errs)
	})
}
