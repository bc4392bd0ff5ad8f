// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// HTTPConfig holds shared HTTP settings used by the library and aggregator clients.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "zotero-tools/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// Thresholds are the per-metric cut-offs used by duplicate detection.
// A metric votes for "duplicate" when its similarity is strictly greater
// than its threshold.
type Thresholds struct {
	Title    float64 `json:"title" yaml:"title" mapstructure:"title_threshold"`
	Author   float64 `json:"author" yaml:"author" mapstructure:"author_threshold"`
	Abstract float64 `json:"abstract" yaml:"abstract" mapstructure:"abstract_threshold"`
}

// Default similarity thresholds.
const (
	DefaultTitleThreshold    = 0.75
	DefaultAuthorThreshold   = 0.75
	DefaultAbstractThreshold = 0.5
)

// DefaultThresholds returns title 0.75, author 0.75, abstract 0.5.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Title:    DefaultTitleThreshold,
		Author:   DefaultAuthorThreshold,
		Abstract: DefaultAbstractThreshold,
	}
}

// Validate checks that every threshold lies in [0, 1], reporting the first
// offender in title, author, abstract order.
func (t Thresholds) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"title", t.Title},
		{"author", t.Author},
		{"abstract", t.Abstract},
	}
	for _, c := range checks {
		if c.v < 0 || c.v > 1 {
			return fmt.Errorf("%s threshold %v out of range [0, 1]", c.name, c.v)
		}
	}
	return nil
}

// LibraryType selects the Zotero library namespace.
type LibraryType string

const (
	LibraryGroup LibraryType = "group"
	LibraryUser  LibraryType = "user"
)

// PathPrefix returns the API path segment for the library type.
func (t LibraryType) PathPrefix() (string, error) {
	switch t {
	case LibraryGroup:
		return "groups", nil
	case LibraryUser:
		return "users", nil
	default:
		return "", fmt.Errorf("unsupported library type %q (want group or user)", string(t))
	}
}

// LibraryConfig identifies a Zotero library and the credentials used to reach it.
type LibraryConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// LibraryID is the numeric group or user ID.
	LibraryID string `json:"id" yaml:"id" mapstructure:"id"`

	// LibraryType is "group" (default) or "user".
	LibraryType LibraryType `json:"type" yaml:"type" mapstructure:"type"`

	// APIKey is a Zotero API key with read (and for import, write) access.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`
}

// DuplicatesConfig holds settings for the duplicate scan.
type DuplicatesConfig struct {
	Thresholds `yaml:",inline" mapstructure:",squash"`

	// Collections restricts the scan to items of these collection keys.
	// Empty means the whole library.
	Collections []string `json:"collections" yaml:"collections" mapstructure:"collections"`

	// OutputFile, when set, receives a UTF-8 copy of the text report.
	OutputFile string `json:"output_file,omitempty" yaml:"output_file,omitempty" mapstructure:"output_file"`
}

// DefaultBatchSize is the number of items per Zotero write request.
const DefaultBatchSize = 50

// ImportConfig holds settings for the preprint import.
type ImportConfig struct {
	// MedrxivGroup is the aggregator collection ID to import.
	MedrxivGroup int `json:"medrxiv_group" yaml:"medrxiv_group" mapstructure:"medrxiv_group"`

	// CollectionID is the target collection key. Empty leaves items uncategorized.
	CollectionID string `json:"collection" yaml:"collection" mapstructure:"collection"`

	// BatchSize is the number of items per write request (default 50).
	BatchSize int `json:"batch_size" yaml:"batch_size" mapstructure:"batch_size"`
}

// LedgerType selects the import ledger backend.
type LedgerType string

const (
	LedgerNone   LedgerType = "none"
	LedgerSQLite LedgerType = "sqlite"
	LedgerBolt   LedgerType = "bbolt"
)

// LedgerConfig configures the record of already imported DOIs.
type LedgerConfig struct {
	Type LedgerType `json:"type" yaml:"type" mapstructure:"type"`
	Path string     `json:"path" yaml:"path" mapstructure:"path"`
}

// LogConfig configures structured diagnostics.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default warn).
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}
