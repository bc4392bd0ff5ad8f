// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/zotero-tools/pkg/types"
)

// ItemCreator creates items in a library, at most one batch per call.
type ItemCreator interface {
	CreateItems(ctx context.Context, items []types.Item) (types.CreateResult, error)
}

// SubmitSummary counts what a submission did.
type SubmitSummary struct {
	// Batches is the number of batches sent successfully.
	Batches int

	// Submitted is the number of items in those batches.
	Submitted int

	// Created is the number of items the library reported as created.
	Created int

	// Rejected is the number of items the library refused individually.
	Rejected int
}

// Batches splits items into contiguous chunks of at most size items,
// preserving order. size <= 0 selects types.DefaultBatchSize.
func Batches(items []types.Item, size int) [][]types.Item {
	if size <= 0 {
		size = types.DefaultBatchSize
	}
	var batches [][]types.Item
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end])
	}
	return batches
}

// Submit sends items to c in batches of batchSize, one call per batch, in
// order. Progress lines go to w. The first failing batch stops the
// submission; batches already sent stay in the library.
func Submit(ctx context.Context, c ItemCreator, items []types.Item, batchSize int, w io.Writer) (SubmitSummary, error) {
	batches := Batches(items, batchSize)
	fmt.Fprintf(w, "Number of pages to submit: %d\n", len(batches))

	var sum SubmitSummary
	for i, batch := range batches {
		fmt.Fprintf(w, "submitting page %d of %d\n", i+1, len(batches))
		res, err := c.CreateItems(ctx, batch)
		if err != nil {
			return sum, fmt.Errorf("submitting page %d of %d: %w", i+1, len(batches), err)
		}
		sum.Batches++
		sum.Submitted += len(batch)
		sum.Created += res.Created()
		sum.Rejected += len(res.Failed)
	}
	return sum, nil
}
