// Package search implements the fuzzy matcher used to filter asset
// listings: substring first, then in-order subsequence, then multi-word
// containment.
package search

import (
	"strings"

	"hospguardian/internal/models"
)

// Match reports whether query matches target. Matching is
// case-insensitive but accent-sensitive. An empty query matches every
// target.
//
// Precedence:
//  1. the whitespace-stripped query is a direct substring of the target
//  2. the query characters appear in the target in order, gaps allowed
//     (typeahead matching: "mnt" matches "Monitor")
//  3. every whitespace-separated query word appears somewhere in the
//     target, independent of order ("UTI monitor" matches
//     "Monitor - UTI Adulto")
func Match(query, target string) bool {
	q := strings.ToLower(query)
	q = strings.Join(strings.Fields(q), "")
	t := strings.ToLower(target)

	if strings.Contains(t, q) {
		return true
	}

	qr := []rune(q)
	qIdx := 0
	for _, r := range t {
		if qIdx < len(qr) && qr[qIdx] == r {
			qIdx++
		}
	}
	if qIdx == len(qr) {
		return true
	}

	words := strings.Fields(strings.ToLower(query))
	if len(words) > 1 {
		for _, word := range words {
			if !strings.Contains(t, word) {
				return false
			}
		}
		return true
	}

	return false
}

// MatchAsset applies Match across the searchable asset fields
func MatchAsset(query string, a models.Asset) bool {
	return Match(query, a.Name) ||
		Match(query, a.ID) ||
		Match(query, a.Location) ||
		Match(query, a.Manufacturer)
}
