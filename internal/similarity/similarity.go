// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package similarity implements the metrics used to compare bibliographic
// records: author-label extraction, the Jaccard index over label sets, and
// the matching-block sequence similarity ratio.
package similarity

import (
	"github.com/pmezard/go-difflib/difflib"

	"github.com/pdiddy/zotero-tools/pkg/types"
)

// AuthorLabels returns one label per creator in list order (see
// types.Creator.Label). Creators with neither a last name nor a name are
// skipped. Repeated labels are kept.
func AuthorLabels(creators []types.Creator) []string {
	labels := make([]string, 0, len(creators))
	for _, c := range creators {
		if label, ok := c.Label(); ok {
			labels = append(labels, label)
		}
	}
	return labels
}

// Set collapses labels into a set.
func Set(labels []string) map[string]struct{} {
	s := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		s[l] = struct{}{}
	}
	return s
}

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 when both sets are empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// AuthorSimilarity is the Jaccard index of the two label sets. ok is false,
// and the score 0, when either list has no labels.
func AuthorSimilarity(a, b []string) (score float64, ok bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, false
	}
	return Jaccard(Set(a), Set(b)), true
}

// Ratio returns 2*M/T for the two strings, where M is the number of
// characters in the matching blocks found by recursive longest-match
// search and T is the total length of both strings. Identical strings,
// including two empty strings, score 1.0. Comparison is per Unicode code
// point. Sequences of 200 or more characters use the popular-element
// heuristic: characters making up more than 1% of b are not used to seed
// matches.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(codePoints(a), codePoints(b)).Ratio()
}

func codePoints(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
