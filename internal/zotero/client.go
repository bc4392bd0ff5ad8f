// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package zotero is a thin client for the Zotero Web API v3: paged item
// reads, item creation, and item templates.
package zotero

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

// apiBase is the Zotero Web API root. Declared as a var so tests can
// substitute an httptest server.
var apiBase = "https://api.zotero.org"

const (
	apiVersion = "3"

	// pageLimit is the largest page the API serves.
	pageLimit = 100

	// MaxWriteItems is the largest number of items accepted per write request.
	MaxWriteItems = 50
)

// Client talks to one Zotero library.
type Client struct {
	http      *resty.Client
	library   string
	templates map[string]types.Item
	log       *zap.Logger
}

// NewClient returns a client for the library described by cfg.
func NewClient(cfg types.LibraryConfig, log *zap.Logger) (*Client, error) {
	if cfg.LibraryID == "" {
		return nil, fmt.Errorf("library ID is required")
	}
	libType := cfg.LibraryType
	if libType == "" {
		libType = types.LibraryGroup
	}
	prefix, err := libType.PathPrefix()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	h := httputil.NewClient(cfg.HTTPConfig).
		SetBaseURL(apiBase).
		SetHeader("Zotero-API-Version", apiVersion)
	if cfg.APIKey != "" {
		h.SetHeader("Zotero-API-Key", cfg.APIKey)
	}

	return &Client{
		http:      h,
		library:   "/" + prefix + "/" + cfg.LibraryID,
		templates: make(map[string]types.Item),
		log:       log,
	}, nil
}

// FetchAllItems returns every item of the library, or, when collectionIDs
// is non-empty, the items of each collection concatenated in argument
// order. An item filed in two listed collections appears twice.
func (c *Client) FetchAllItems(ctx context.Context, collectionIDs []string) ([]types.Article, error) {
	if len(collectionIDs) == 0 {
		return c.fetchPaged(ctx, c.library+"/items")
	}

	var all []types.Article
	for _, id := range collectionIDs {
		items, err := c.fetchPaged(ctx, c.library+"/collections/"+id+"/items")
		if err != nil {
			return nil, fmt.Errorf("fetching collection %s: %w", id, err)
		}
		all = append(all, items...)
	}
	return all, nil
}

// fetchPaged follows start/limit paging until Total-Results items have been
// read or the API returns a short page.
func (c *Client) fetchPaged(ctx context.Context, path string) ([]types.Article, error) {
	var all []types.Article
	for start := 0; ; {
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"format": "json",
				"start":  strconv.Itoa(start),
				"limit":  strconv.Itoa(pageLimit),
			}).
			Get(path)
		if err != nil {
			return nil, fmt.Errorf("Zotero API request: %w", err)
		}
		if err := httputil.CheckResponse(resp); err != nil {
			return nil, err
		}

		var page []types.Article
		if err := json.Unmarshal(resp.Body(), &page); err != nil {
			return nil, fmt.Errorf("parsing Zotero items response: %w", err)
		}
		all = append(all, page...)
		start += len(page)

		c.log.Debug("fetched page",
			zap.String("path", path),
			zap.Int("items", len(page)),
			zap.Int("total_so_far", len(all)),
		)

		total, err := strconv.Atoi(resp.Header().Get("Total-Results"))
		hasTotal := err == nil
		switch {
		case len(page) == 0:
			return all, nil
		case hasTotal && start >= total:
			return all, nil
		case !hasTotal && len(page) < pageLimit:
			return all, nil
		}
	}
}

// CreateItems submits up to MaxWriteItems items in a single write request.
// Items rejected individually are reported in the result, not as an error.
func (c *Client) CreateItems(ctx context.Context, items []types.Item) (types.CreateResult, error) {
	if len(items) > MaxWriteItems {
		return types.CreateResult{}, fmt.Errorf("cannot create %d items in one request (max %d)", len(items), MaxWriteItems)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(items).
		Post(c.library + "/items")
	if err != nil {
		return types.CreateResult{}, fmt.Errorf("Zotero API request: %w", err)
	}
	if err := httputil.CheckResponse(resp); err != nil {
		return types.CreateResult{}, err
	}

	var result types.CreateResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return types.CreateResult{}, fmt.Errorf("parsing Zotero write response: %w", err)
	}
	for idx, f := range result.Failed {
		c.log.Warn("item rejected",
			zap.String("index", idx),
			zap.Int("code", f.Code),
			zap.String("message", f.Message),
		)
	}
	return result, nil
}

// NewItemTemplate returns an empty item of the given type. Templates are
// fetched once per type; each call returns an independent copy.
func (c *Client) NewItemTemplate(ctx context.Context, kind string) (types.Item, error) {
	if t, ok := c.templates[kind]; ok {
		return t.Clone(), nil
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("itemType", kind).
		Get("/items/new")
	if err != nil {
		return types.Item{}, fmt.Errorf("Zotero API request: %w", err)
	}
	if err := httputil.CheckResponse(resp); err != nil {
		return types.Item{}, err
	}

	var t types.Item
	if err := json.Unmarshal(resp.Body(), &t); err != nil {
		return types.Item{}, fmt.Errorf("parsing Zotero template response: %w", err)
	}
	if t.Collections == nil {
		t.Collections = []string{}
	}
	c.templates[kind] = t
	return t.Clone(), nil
}
