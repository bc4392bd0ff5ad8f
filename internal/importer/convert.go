// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package importer turns aggregator preprints into Zotero items and submits
// them to a library in fixed-size batches.
package importer

import (
	"github.com/pdiddy/zotero-tools/pkg/types"
)

// Convert fills a copy of template from p. Creators are replaced by one
// author per preprint author, by full name; institutions are not mapped.
// collectionID is appended to the item's collections when non-empty. The
// template itself is never modified.
func Convert(template types.Item, p types.Preprint, collectionID string) types.Item {
	item := template.Clone()
	item.Title = p.Title
	item.DOI = p.DOI
	item.URL = p.Link
	item.AbstractNote = p.Abstract
	item.Date = p.Date
	item.Archive = p.Site

	item.Creators = make([]types.ItemCreator, 0, len(p.Authors))
	for _, a := range p.Authors {
		item.Creators = append(item.Creators, types.ItemCreator{
			Name:        a.Name,
			CreatorType: types.CreatorTypeAuthor,
		})
	}

	if item.Collections == nil {
		item.Collections = []string{}
	}
	if collectionID != "" {
		item.Collections = append(item.Collections, collectionID)
	}
	return item
}
