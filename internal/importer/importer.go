// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package importer

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/zotero-tools/internal/ledger"
	"github.com/pdiddy/zotero-tools/pkg/types"
)

// FeedSource lists the preprints of an aggregator collection.
type FeedSource interface {
	FetchGroupFeed(ctx context.Context, groupID int) ([]types.Preprint, error)
}

// Library is the Zotero side of an import.
type Library interface {
	ItemCreator
	NewItemTemplate(ctx context.Context, kind string) (types.Item, error)
}

// Importer copies an aggregator collection into a Zotero library.
type Importer struct {
	Feed    FeedSource
	Library Library

	// Ledger, when set, skips preprints already imported into the target
	// collection and records each accepted item.
	Ledger ledger.Store

	Log *zap.Logger
}

// ImportSummary reports the outcome of Run.
type ImportSummary struct {
	SubmitSummary

	// Fetched is the number of preprints in the feed.
	Fetched int

	// Skipped is the number of preprints the ledger already listed.
	Skipped int
}

// Run imports cfg.MedrxivGroup into cfg.CollectionID. Progress lines go to w.
func (im *Importer) Run(ctx context.Context, cfg types.ImportConfig, w io.Writer) (ImportSummary, error) {
	log := im.Log
	if log == nil {
		log = zap.NewNop()
	}
	store := im.Ledger
	if store == nil {
		store = ledger.Nop()
	}

	var sum ImportSummary
	preprints, err := im.Feed.FetchGroupFeed(ctx, cfg.MedrxivGroup)
	if err != nil {
		return sum, fmt.Errorf("fetching medrxiv group %d: %w", cfg.MedrxivGroup, err)
	}
	sum.Fetched = len(preprints)
	fmt.Fprintf(w, "Got %d from medrxiv group %d\n", len(preprints), cfg.MedrxivGroup)

	template, err := im.Library.NewItemTemplate(ctx, types.ItemTypeJournalArticle)
	if err != nil {
		return sum, fmt.Errorf("fetching %s template: %w", types.ItemTypeJournalArticle, err)
	}

	items := make([]types.Item, 0, len(preprints))
	for _, p := range preprints {
		seen, err := store.Imported(cfg.CollectionID, p.DOI)
		if err != nil {
			return sum, fmt.Errorf("checking ledger for %s: %w", p.DOI, err)
		}
		if seen {
			sum.Skipped++
			log.Debug("already imported", zap.String("doi", p.DOI), zap.String("collection", cfg.CollectionID))
			continue
		}
		items = append(items, Convert(template, p, cfg.CollectionID))
	}
	if sum.Skipped > 0 {
		fmt.Fprintf(w, "skipped: %d already imported\n", sum.Skipped)
	}

	creator := &recordingCreator{next: im.Library, store: store, collection: cfg.CollectionID, log: log}
	sum.SubmitSummary, err = Submit(ctx, creator, items, cfg.BatchSize, w)

	log.Info("import finished",
		zap.Int("group", cfg.MedrxivGroup),
		zap.String("collection", cfg.CollectionID),
		zap.Int("fetched", sum.Fetched),
		zap.Int("skipped", sum.Skipped),
		zap.Int("submitted", sum.Submitted),
		zap.Int("created", sum.Created),
		zap.Int("rejected", sum.Rejected),
	)
	return sum, err
}

// recordingCreator writes the DOI of every accepted item to the ledger
// after each successful batch.
type recordingCreator struct {
	next       ItemCreator
	store      ledger.Store
	collection string
	log        *zap.Logger
}

func (r *recordingCreator) CreateItems(ctx context.Context, items []types.Item) (types.CreateResult, error) {
	res, err := r.next.CreateItems(ctx, items)
	if err != nil {
		return res, err
	}
	for i, it := range items {
		if !res.Accepted(i) {
			continue
		}
		if err := r.store.MarkImported(r.collection, it.DOI); err != nil {
			// The batch is already in the library; losing the record only
			// means a rerun may submit it again.
			r.log.Warn("ledger write failed", zap.String("doi", it.DOI), zap.Error(err))
		}
	}
	return res, nil
}
