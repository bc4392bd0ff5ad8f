// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package duplicates

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/zotero-tools/pkg/types"
)

// NoDuplicatesMessage ends the report of a scan that found nothing.
const NoDuplicatesMessage = "No duplicates found!"

// ScanResult holds the outcome of a library scan.
type ScanResult struct {
	// Articles is the number of records scanned.
	Articles int `json:"articles" yaml:"articles"`

	// Comparisons is the number of pairs compared, n*(n-1)/2.
	Comparisons int `json:"comparisons" yaml:"comparisons"`

	// Incomplete counts pairs where a record had no data payload.
	Incomplete int `json:"incomplete" yaml:"incomplete"`

	// Duplicates lists potential duplicates in scan order.
	Duplicates []Pair `json:"duplicates" yaml:"duplicates"`
}

// Count returns the number of potential duplicates.
func (r ScanResult) Count() int {
	return len(r.Duplicates)
}

// Report returns the human-readable scan report: every duplicate block in
// scan order, then either NoDuplicatesMessage or the duplicate count.
func (r ScanResult) Report() string {
	var b strings.Builder
	for _, p := range r.Duplicates {
		b.WriteString(p.Report())
	}
	if r.Count() == 0 {
		b.WriteString(NoDuplicatesMessage)
	} else {
		fmt.Fprintf(&b, "Number of potential duplicates found: %d", r.Count())
	}
	return b.String()
}

// FindDuplicates compares every unordered pair of articles, including pairs
// involving the last article, in index order (i < j).
func FindDuplicates(articles []types.Article, th types.Thresholds, log *zap.Logger) ScanResult {
	if log == nil {
		log = zap.NewNop()
	}

	result := ScanResult{Articles: len(articles)}
	for i := 0; i < len(articles); i++ {
		for j := i + 1; j < len(articles); j++ {
			a, b := articles[i], articles[j]
			result.Comparisons++
			if a.Data == nil || b.Data == nil {
				result.Incomplete++
				continue
			}

			c := Compare(a, b, th)
			if !c.IsDuplicate() {
				continue
			}
			log.Debug("potential duplicate",
				zap.String("first", a.Key),
				zap.String("second", b.Key),
				zap.Float64("author_similarity", c.AuthorSimilarity),
				zap.Float64("title_similarity", c.TitleSimilarity),
				zap.Float64("abstract_similarity", c.AbstractSimilarity),
				zap.Int("indicators", c.Indicators),
			)
			result.Duplicates = append(result.Duplicates, newPair(a, b, c))
		}
	}

	log.Info("duplicate scan complete",
		zap.Int("articles", result.Articles),
		zap.Int("comparisons", result.Comparisons),
		zap.Int("incomplete", result.Incomplete),
		zap.Int("duplicates", result.Count()),
	)
	return result
}
