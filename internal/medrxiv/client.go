// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package medrxiv reads preprint collections from the medRxiv "relate"
// aggregator feed.
package medrxiv

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/pdiddy/zotero-tools/internal/httputil"
	"github.com/pdiddy/zotero-tools/pkg/types"
)

// feedURL is the collection endpoint. Declared as a var so tests can
// substitute an httptest server.
var feedURL = "https://connect.medrxiv.org/relate/collection_json.php"

// Client fetches aggregator collections.
type Client struct {
	http *resty.Client
	log  *zap.Logger
}

// NewClient returns a feed client using the shared HTTP settings.
func NewClient(cfg types.HTTPConfig, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{http: httputil.NewClient(cfg), log: log}
}

// feedResponse is the envelope of the collection feed. Rels is a pointer
// so a body without the field can be told apart from an empty collection.
type feedResponse struct {
	Rels *[]types.Preprint `json:"rels"`
}

// FetchGroupFeed returns every preprint of aggregator collection groupID,
// in feed order.
func (c *Client) FetchGroupFeed(ctx context.Context, groupID int) ([]types.Preprint, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("grp", strconv.Itoa(groupID)).
		Get(feedURL)
	if err != nil {
		return nil, fmt.Errorf("medRxiv feed request: %w", err)
	}
	if err := httputil.CheckResponse(resp); err != nil {
		return nil, err
	}

	var feed feedResponse
	if err := json.Unmarshal(resp.Body(), &feed); err != nil {
		return nil, fmt.Errorf("parsing medRxiv feed response: %w", err)
	}
	if feed.Rels == nil {
		return nil, fmt.Errorf("parsing medRxiv feed response: missing \"rels\" field")
	}

	c.log.Debug("fetched feed", zap.Int("group", groupID), zap.Int("preprints", len(*feed.Rels)))
	return *feed.Rels, nil
}
