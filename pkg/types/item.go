// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"
)

const (
	// ItemTypeJournalArticle is the Zotero template used for imported preprints.
	ItemTypeJournalArticle = "journalArticle"

	// CreatorTypeAuthor is the creator role assigned to preprint authors.
	CreatorTypeAuthor = "author"
)

// Item is a Zotero item in the write schema, as produced by the
// /items/new template endpoint and accepted by POST /items.
type Item struct {
	ItemType     string         `json:"itemType"`
	Title        string         `json:"title"`
	Creators     []ItemCreator  `json:"creators"`
	AbstractNote string         `json:"abstractNote"`
	Date         string         `json:"date"`
	DOI          string         `json:"DOI"`
	URL          string         `json:"url"`
	Archive      string         `json:"archive"`
	Tags         []ItemTag      `json:"tags"`
	Collections  []string       `json:"collections"`
	Relations    map[string]any `json:"relations"`

	// Extra holds template fields not modelled above (publicationTitle,
	// volume, accessDate, ...). They are written back unchanged.
	Extra map[string]json.RawMessage `json:"-"`
}

// itemKeys are the JSON names of the modelled Item fields.
var itemKeys = []string{
	"itemType", "title", "creators", "abstractNote", "date", "DOI",
	"url", "archive", "tags", "collections", "relations",
}

// itemFields has Item's layout without its JSON methods.
type itemFields Item

// UnmarshalJSON decodes the modelled fields and keeps every other field in Extra.
func (it *Item) UnmarshalJSON(data []byte) error {
	var f itemFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	var rest map[string]json.RawMessage
	if err := json.Unmarshal(data, &rest); err != nil {
		return err
	}
	for _, k := range itemKeys {
		delete(rest, k)
	}
	f.Extra = nil
	if len(rest) > 0 {
		f.Extra = rest
	}
	*it = Item(f)
	return nil
}

// MarshalJSON encodes the modelled fields merged with Extra. Modelled
// fields win when a key appears in both.
func (it Item) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(itemFields(it))
	if err != nil || len(it.Extra) == 0 {
		return known, err
	}
	all := maps.Clone(it.Extra)
	if err := json.Unmarshal(known, &all); err != nil {
		return nil, err
	}
	return json.Marshal(all)
}

// ItemCreator is a creator in the write schema. Either Name or the
// FirstName/LastName pair is set.
type ItemCreator struct {
	CreatorType string `json:"creatorType"`
	Name        string `json:"name,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
}

// ItemTag is a Zotero tag.
type ItemTag struct {
	Tag  string `json:"tag"`
	Type int    `json:"type,omitempty"`
}

// Clone returns a copy of it that shares no slices or maps with it. Empty
// slices and maps stay empty rather than becoming nil, so they still encode
// as [] and {}.
func (it Item) Clone() Item {
	out := it
	out.Creators = slices.Clone(it.Creators)
	out.Tags = slices.Clone(it.Tags)
	out.Collections = slices.Clone(it.Collections)
	out.Relations = maps.Clone(it.Relations)
	out.Extra = maps.Clone(it.Extra)
	return out
}

// CreateResult is the body of a Zotero write response. Map keys are the
// zero-based indexes of the submitted items, as strings.
type CreateResult struct {
	Successful map[string]json.RawMessage `json:"successful"`
	Success    map[string]string          `json:"success"`
	Unchanged  map[string]string          `json:"unchanged"`
	Failed     map[string]CreateFailure   `json:"failed"`
}

// CreateFailure describes a single item rejected by the API.
type CreateFailure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Created returns the number of items the API created.
func (r CreateResult) Created() int {
	if len(r.Success) > len(r.Successful) {
		return len(r.Success)
	}
	return len(r.Successful)
}

// Accepted reports whether the item at index i was created or already
// present unchanged.
func (r CreateResult) Accepted(i int) bool {
	key := strconv.Itoa(i)
	if _, ok := r.Success[key]; ok {
		return true
	}
	if _, ok := r.Successful[key]; ok {
		return true
	}
	_, ok := r.Unchanged[key]
	return ok
}

