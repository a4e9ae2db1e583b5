// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package imagefilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	paths := []string{
		"/images/Adventure Game.iso",
		"/images/racing.iso",
		"/backup/ADVENTURE-2.iso",
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "case_insensitive_substring",
			query: "adventure",
			want:  []string{"/images/Adventure Game.iso", "/backup/ADVENTURE-2.iso"},
		},
		{
			name:  "multi_term_any_match",
			query: "racing;backup",
			want:  []string{"/images/racing.iso", "/backup/ADVENTURE-2.iso"},
		},
		{
			name:  "terms_are_trimmed",
			query: " racing ; nothing ",
			want:  []string{"/images/racing.iso"},
		},
		{
			name:  "no_match",
			query: "zzz",
		},
		{
			name:  "empty_query_matches_nothing",
			query: "  ;  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filter(paths, tt.query))
		})
	}
}
