// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records which preprint DOIs have already been imported into
// a Zotero collection, so that rerunning an import does not create the same
// items twice. The "none" backend records nothing.
package ledger

import (
	"fmt"
	"strings"

	"github.com/pdiddy/zotero-tools/pkg/types"
)

// Store tracks imported DOIs per target collection. An empty collection key
// stands for the library root.
type Store interface {
	Close() error
	Imported(collection, doi string) (bool, error)
	MarkImported(collection, doi string) error
}

// NewStore opens the configured ledger backend.
func NewStore(typ types.LedgerType, path string) (Store, error) {
	switch types.LedgerType(strings.TrimSpace(strings.ToLower(string(typ)))) {
	case "", types.LedgerNone:
		return Nop(), nil
	case types.LedgerSQLite:
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("sqlite ledger requires a path")
		}
		return openSQLite(path)
	case types.LedgerBolt:
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt ledger requires a path")
		}
		return openBolt(path)
	default:
		return nil, fmt.Errorf("unsupported ledger type %q", string(typ))
	}
}

// normalizeDOI lowercases and trims a DOI. DOIs are case-insensitive.
func normalizeDOI(doi string) string {
	return strings.ToLower(strings.TrimSpace(doi))
}

// Nop returns a Store that records nothing and reports every DOI as new.
func Nop() Store {
	return noopStore{}
}

type noopStore struct{}

func (noopStore) Close() error                           { return nil }
func (noopStore) Imported(string, string) (bool, error) { return false, nil }
func (noopStore) MarkImported(string, string) error     { return nil }
