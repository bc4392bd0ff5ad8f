// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/zotero-tools/pkg/types"
)

func TestAuthorLabels(t *testing.T) {
	creators := []types.Creator{
		{FirstName: types.Str("Ada"), LastName: types.Str("Lovelace")},
		{Name: types.Str("WHO Consortium")},
		{FirstName: types.Str("Only")},
		{LastName: types.Str("Lovelace"), Name: types.Str("ignored")},
		{LastName: types.Str("")},
	}

	got := AuthorLabels(creators)
	assert.Equal(t, []string{"Lovelace", "WHO Consortium", "Lovelace", ""}, got)
}

func TestAuthorLabelsEmpty(t *testing.T) {
	assert.Empty(t, AuthorLabels(nil))
	assert.Empty(t, AuthorLabels([]types.Creator{{FirstName: types.Str("x")}}))
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"one shared of three", []string{"Smith", "Jones"}, []string{"Smith", "Lee"}, 1.0 / 3.0},
		{"identical", []string{"Smith", "Jones"}, []string{"Jones", "Smith"}, 1.0},
		{"disjoint", []string{"Smith"}, []string{"Lee"}, 0.0},
		{"repeats collapse", []string{"Smith", "Smith", "Jones"}, []string{"Smith", "Jones"}, 1.0},
		{"both empty", nil, nil, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Jaccard(Set(tt.a), Set(tt.b)), 1e-9)
		})
	}
}

func TestAuthorSimilaritySymmetric(t *testing.T) {
	a := []string{"Smith", "Jones", "Kim"}
	b := []string{"Kim", "Lee"}

	ab, okAB := AuthorSimilarity(a, b)
	ba, okBA := AuthorSimilarity(b, a)
	assert.True(t, okAB)
	assert.True(t, okBA)
	assert.Equal(t, ab, ba)
	assert.InDelta(t, 0.25, ab, 1e-9)
}

func TestAuthorSimilarityRequiresBothLists(t *testing.T) {
	score, ok := AuthorSimilarity([]string{"Smith"}, nil)
	assert.False(t, ok)
	assert.Zero(t, score)

	score, ok = AuthorSimilarity(nil, []string{"Smith"})
	assert.False(t, ok)
	assert.Zero(t, score)
}

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "Deep learning for protein folding", "Deep learning for protein folding", 1.0},
		{"both empty", "", "", 1.0},
		{"one empty", "abc", "", 0.0},
		{"disjoint characters", "abc", "xyz", 0.0},
		{"shifted window", "abcd", "bcde", 0.75},
		{"prefix", "abcd", "abcd efgh", 8.0 / 13.0},
		{"multibyte runes", "naïve", "naïve", 1.0},
		{"one rune differs", "naïve", "naive", 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Ratio(tt.a, tt.b), 1e-9)
		})
	}
}

func TestRatioBounds(t *testing.T) {
	pairs := [][2]string{
		{"COVID-19 vaccine efficacy", "Efficacy of COVID-19 vaccines"},
		{"a", "aaaa"},
		{"The quick brown fox", "the lazy dog"},
	}
	for _, p := range pairs {
		r := Ratio(p[0], p[1])
		assert.GreaterOrEqual(t, r, 0.0)
		assert.LessOrEqual(t, r, 1.0)
	}
}
