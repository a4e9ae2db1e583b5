// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package imagefilter narrows a candidate list with free-text queries from
// the interactive prompt.
package imagefilter

import "strings"

// TermSeparator splits a query into independent search terms.
const TermSeparator = ";"

// Filter returns the paths matching the query, preserving input order.
// Matching is a case-insensitive substring test; a path matches if any
// term matches. An empty query matches nothing.
func Filter(paths []string, query string) []string {
	var terms []string

	for _, t := range strings.Split(query, TermSeparator) {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			terms = append(terms, t)
		}
	}

	if len(terms) == 0 {
		return nil
	}

	var matched []string

	for _, p := range paths {
		lower := strings.ToLower(p)

		for _, term := range terms {
			if strings.Contains(lower, term) {
				matched = append(matched, p)
				break
			}
		}
	}

	return matched
}
