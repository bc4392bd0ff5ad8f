// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for zotero-tools.
// Implements: duplicate detection (Article, Creator);
//
//	preprint import (Preprint, Item, CreateResult);
//	configuration (Thresholds, LibraryConfig, ImportConfig, LedgerConfig).
package types

// Article is a bibliographic record as returned by the Zotero Web API.
// A nil Data means the record carries no data payload.
type Article struct {
	// Key is the Zotero item key (e.g. "ABCD2345").
	Key string `json:"key" yaml:"key"`

	// Version is the library version of the item when it was fetched.
	Version int `json:"version,omitempty" yaml:"version,omitempty"`

	Data *ArticleData `json:"data,omitempty" yaml:"data,omitempty"`
}

// ArticleData holds the item fields used for comparison. Pointer fields
// distinguish an absent field (nil) from a present but empty one.
type ArticleData struct {
	ItemType     string    `json:"itemType,omitempty" yaml:"item_type,omitempty"`
	Title        *string   `json:"title,omitempty" yaml:"title,omitempty"`
	Creators     []Creator `json:"creators,omitempty" yaml:"creators,omitempty"`
	AbstractNote *string   `json:"abstractNote,omitempty" yaml:"abstract_note,omitempty"`
}

// Creator is one entry of an item's creator list. Zotero stores either a
// two-field name (firstName/lastName) or a single-field name.
type Creator struct {
	CreatorType string  `json:"creatorType,omitempty" yaml:"creator_type,omitempty"`
	FirstName   *string `json:"firstName,omitempty" yaml:"first_name,omitempty"`
	LastName    *string `json:"lastName,omitempty" yaml:"last_name,omitempty"`
	Name        *string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Label returns the name used when comparing author lists: the last name if
// present, otherwise the single-field name. ok is false when neither is set.
func (c Creator) Label() (label string, ok bool) {
	switch {
	case c.LastName != nil:
		return *c.LastName, true
	case c.Name != nil:
		return *c.Name, true
	default:
		return "", false
	}
}

// Str returns a pointer to s.
func Str(s string) *string { return &s }

// Deref returns the value of p, or "" when p is nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
