// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package duplicates finds likely-duplicate records in a Zotero library.
// Two records are a potential duplicate when at least two of three metrics
// exceed their thresholds: author-set overlap, title similarity, and
// abstract similarity. A metric only votes when both records carry the
// field it needs.
package duplicates

import (
	"fmt"
	"strings"

	"github.com/pdiddy/zotero-tools/internal/similarity"
	"github.com/pdiddy/zotero-tools/pkg/types"
)

// minIndicators is the number of metrics that must exceed their threshold.
const minIndicators = 2

// Comparison holds the scored comparison of two records.
type Comparison struct {
	AuthorSimilarity   float64 `json:"author_similarity" yaml:"author_similarity"`
	TitleSimilarity    float64 `json:"title_similarity" yaml:"title_similarity"`
	AbstractSimilarity float64 `json:"abstract_similarity" yaml:"abstract_similarity"`

	// Evaluated flags record which metrics had data on both sides.
	AuthorEvaluated   bool `json:"author_evaluated" yaml:"author_evaluated"`
	TitleEvaluated    bool `json:"title_evaluated" yaml:"title_evaluated"`
	AbstractEvaluated bool `json:"abstract_evaluated" yaml:"abstract_evaluated"`

	// Match flags record which metrics exceeded their threshold.
	AuthorMatch   bool `json:"author_match" yaml:"author_match"`
	TitleMatch    bool `json:"title_match" yaml:"title_match"`
	AbstractMatch bool `json:"abstract_match" yaml:"abstract_match"`

	// Indicators counts the metrics that exceeded their threshold (0-3).
	Indicators int `json:"indicators" yaml:"indicators"`
}

// IsDuplicate reports whether at least two metrics exceeded their threshold.
func (c Comparison) IsDuplicate() bool {
	return c.Indicators >= minIndicators
}

// Compare scores a against b. Records without a data payload yield a zero
// Comparison.
func Compare(a, b types.Article, th types.Thresholds) Comparison {
	var c Comparison
	if a.Data == nil || b.Data == nil {
		return c
	}
	da, db := a.Data, b.Data

	if score, ok := similarity.AuthorSimilarity(
		similarity.AuthorLabels(da.Creators),
		similarity.AuthorLabels(db.Creators),
	); ok {
		c.AuthorEvaluated = true
		c.AuthorSimilarity = score
		if score > th.Author {
			c.AuthorMatch = true
			c.Indicators++
		}
	}

	// An empty title still counts as present.
	if da.Title != nil && db.Title != nil {
		c.TitleEvaluated = true
		c.TitleSimilarity = similarity.Ratio(*da.Title, *db.Title)
		if c.TitleSimilarity > th.Title {
			c.TitleMatch = true
			c.Indicators++
		}
	}

	// An empty abstract on either side disqualifies the metric.
	if abs1, abs2 := types.Deref(da.AbstractNote), types.Deref(db.AbstractNote); abs1 != "" && abs2 != "" {
		c.AbstractEvaluated = true
		c.AbstractSimilarity = similarity.Ratio(abs1, abs2)
		if c.AbstractSimilarity > th.Abstract {
			c.AbstractMatch = true
			c.Indicators++
		}
	}

	return c
}

// Detect reports whether a and b are potential duplicates and, if so,
// returns the text block describing the pair. Non-duplicates return an
// empty report.
func Detect(a, b types.Article, th types.Thresholds) (bool, string) {
	c := Compare(a, b, th)
	if !c.IsDuplicate() {
		return false, ""
	}
	return true, newPair(a, b, c).Report()
}

// Member summarizes one side of a duplicate pair for reporting.
type Member struct {
	Key     string   `json:"key" yaml:"key"`
	Authors []string `json:"authors" yaml:"authors"`
	Title   string   `json:"title" yaml:"title"`
}

// Pair is a potential duplicate found by a scan.
type Pair struct {
	First      Member     `json:"first" yaml:"first"`
	Second     Member     `json:"second" yaml:"second"`
	Comparison Comparison `json:"comparison" yaml:"comparison"`
}

func newPair(a, b types.Article, c Comparison) Pair {
	return Pair{First: newMember(a), Second: newMember(b), Comparison: c}
}

// newMember renders missing creators or title as empty values.
func newMember(a types.Article) Member {
	m := Member{Key: a.Key}
	if a.Data != nil {
		m.Authors = similarity.AuthorLabels(a.Data.Creators)
		m.Title = types.Deref(a.Data.Title)
	}
	return m
}

// Report returns the text block for the pair:
//
//	Potential duplicate:
//	--------------------
//	 KEY1; Author, Author: Title
//	 KEY2; Author: Title
//
// followed by two blank lines.
func (p Pair) Report() string {
	var b strings.Builder
	b.WriteString("Potential duplicate:\n")
	b.WriteString("--------------------\n")
	writeMember(&b, p.First)
	writeMember(&b, p.Second)
	b.WriteString("\n\n")
	return b.String()
}

func writeMember(b *strings.Builder, m Member) {
	fmt.Fprintf(b, " %s; %s: %s\n", m.Key, strings.Join(m.Authors, ", "), m.Title)
}
