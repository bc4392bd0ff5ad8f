// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/zotero-tools/pkg/types"
)

// fakeCreator records every batch and accepts all items unless failOn
// names a 1-based call to fail or reject lists indexes to refuse.
type fakeCreator struct {
	calls  [][]types.Item
	failOn int
	err    error
	reject map[int]bool
}

func (f *fakeCreator) CreateItems(_ context.Context, items []types.Item) (types.CreateResult, error) {
	f.calls = append(f.calls, items)
	if f.failOn == len(f.calls) {
		return types.CreateResult{}, f.err
	}
	res := types.CreateResult{
		Success: map[string]string{},
		Failed:  map[string]types.CreateFailure{},
	}
	for i := range items {
		if f.reject[i] {
			res.Failed[strconv.Itoa(i)] = types.CreateFailure{Code: 400, Message: "rejected"}
			continue
		}
		res.Success[strconv.Itoa(i)] = fmt.Sprintf("KEY%d", i)
	}
	return res, nil
}

func numberedItems(n int) []types.Item {
	items := make([]types.Item, n)
	for i := range items {
		items[i] = types.Item{Title: fmt.Sprintf("item %d", i), DOI: fmt.Sprintf("10.1101/%d", i)}
	}
	return items
}

func TestBatches(t *testing.T) {
	tests := []struct {
		n, size int
		want    []int
	}{
		{0, 50, nil},
		{1, 50, []int{1}},
		{50, 50, []int{50}},
		{51, 50, []int{50, 1}},
		{120, 50, []int{50, 50, 20}},
		{120, 0, []int{50, 50, 20}},
		{7, 3, []int{3, 3, 1}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.n, tt.size), func(t *testing.T) {
			var got []int
			for _, b := range Batches(numberedItems(tt.n), tt.size) {
				got = append(got, len(b))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubmitBatchesInOrder(t *testing.T) {
	items := numberedItems(120)
	fc := &fakeCreator{}
	var out bytes.Buffer

	sum, err := Submit(context.Background(), fc, items, 50, &out)
	require.NoError(t, err)

	require.Len(t, fc.calls, 3)
	assert.Len(t, fc.calls[0], 50)
	assert.Len(t, fc.calls[1], 50)
	assert.Len(t, fc.calls[2], 20)
	assert.Equal(t, "item 0", fc.calls[0][0].Title)
	assert.Equal(t, "item 50", fc.calls[1][0].Title)
	assert.Equal(t, "item 119", fc.calls[2][19].Title)

	assert.Equal(t, SubmitSummary{Batches: 3, Submitted: 120, Created: 120}, sum)
	assert.Equal(t, "Number of pages to submit: 3\n"+
		"submitting page 1 of 3\n"+
		"submitting page 2 of 3\n"+
		"submitting page 3 of 3\n", out.String())
}

func TestSubmitNothing(t *testing.T) {
	fc := &fakeCreator{}
	var out bytes.Buffer

	sum, err := Submit(context.Background(), fc, nil, 50, &out)
	require.NoError(t, err)
	assert.Empty(t, fc.calls)
	assert.Zero(t, sum)
	assert.Equal(t, "Number of pages to submit: 0\n", out.String())
}

func TestSubmitStopsAtFirstFailure(t *testing.T) {
	boom := errors.New("HTTP 413")
	fc := &fakeCreator{failOn: 2, err: boom}
	var out bytes.Buffer

	sum, err := Submit(context.Background(), fc, numberedItems(120), 50, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "page 2 of 3")

	assert.Len(t, fc.calls, 2)
	assert.Equal(t, 1, sum.Batches)
	assert.Equal(t, 50, sum.Submitted)
	assert.NotContains(t, out.String(), "submitting page 3 of 3")
}

func TestSubmitCountsRejections(t *testing.T) {
	fc := &fakeCreator{reject: map[int]bool{1: true, 3: true}}

	sum, err := Submit(context.Background(), fc, numberedItems(5), 0, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 5, sum.Submitted)
	assert.Equal(t, 3, sum.Created)
	assert.Equal(t, 2, sum.Rejected)
}
