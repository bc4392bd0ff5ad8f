// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Preprint is one entry of a medRxiv/bioRxiv "relate" collection feed.
type Preprint struct {
	Title    string           `json:"rel_title" yaml:"title"`
	DOI      string           `json:"rel_doi" yaml:"doi"`
	Link     string           `json:"rel_link" yaml:"link"`
	Abstract string           `json:"rel_abs" yaml:"abstract"`
	Date     string           `json:"rel_date" yaml:"date"`
	Site     string           `json:"rel_site" yaml:"site"`
	Authors  []PreprintAuthor `json:"rel_authors" yaml:"authors"`
}

// PreprintAuthor is an author as listed by the aggregator.
type PreprintAuthor struct {
	Name string `json:"author_name" yaml:"name"`

	// Institution is carried through from the feed but not mapped onto items.
	Institution string `json:"author_inst,omitempty" yaml:"institution,omitempty"`
}
