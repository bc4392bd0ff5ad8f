// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/zotero-tools/internal/ledger"
	"github.com/pdiddy/zotero-tools/pkg/types"
)

type fakeFeed struct {
	preprints []types.Preprint
	err       error
	gotGroup  int
}

func (f *fakeFeed) FetchGroupFeed(_ context.Context, groupID int) ([]types.Preprint, error) {
	f.gotGroup = groupID
	return f.preprints, f.err
}

type fakeLibrary struct {
	fakeCreator
	templateCalls int
	templateErr   error
}

func (f *fakeLibrary) NewItemTemplate(_ context.Context, kind string) (types.Item, error) {
	f.templateCalls++
	if f.templateErr != nil {
		return types.Item{}, f.templateErr
	}
	tmpl := journalTemplate()
	tmpl.ItemType = kind
	return tmpl, nil
}

func preprints(n int) []types.Preprint {
	out := make([]types.Preprint, n)
	for i := range out {
		out[i] = types.Preprint{
			Title:   fmt.Sprintf("Preprint %d", i),
			DOI:     fmt.Sprintf("10.1101/2020.%04d", i),
			Authors: []types.PreprintAuthor{{Name: "A. Author"}},
		}
	}
	return out
}

func TestRunImportsFeed(t *testing.T) {
	feed := &fakeFeed{preprints: preprints(60)}
	lib := &fakeLibrary{}
	im := &Importer{Feed: feed, Library: lib, Log: zaptest.NewLogger(t)}
	var out bytes.Buffer

	sum, err := im.Run(context.Background(), types.ImportConfig{MedrxivGroup: 181, CollectionID: "COLL"}, &out)
	require.NoError(t, err)

	assert.Equal(t, 181, feed.gotGroup)
	assert.Equal(t, 1, lib.templateCalls)
	require.Len(t, lib.calls, 2)
	assert.Len(t, lib.calls[0], 50)
	assert.Len(t, lib.calls[1], 10)
	assert.Equal(t, []string{"COLL"}, lib.calls[0][0].Collections)
	assert.Equal(t, "Preprint 50", lib.calls[1][0].Title)

	assert.Equal(t, 60, sum.Fetched)
	assert.Equal(t, 60, sum.Created)
	assert.Zero(t, sum.Skipped)
	assert.Equal(t, "Got 60 from medrxiv group 181\n"+
		"Number of pages to submit: 2\n"+
		"submitting page 1 of 2\n"+
		"submitting page 2 of 2\n", out.String())
}

func TestRunEmptyFeed(t *testing.T) {
	lib := &fakeLibrary{}
	im := &Importer{Feed: &fakeFeed{}, Library: lib}
	var out bytes.Buffer

	sum, err := im.Run(context.Background(), types.ImportConfig{MedrxivGroup: 3}, &out)
	require.NoError(t, err)
	assert.Empty(t, lib.calls)
	assert.Zero(t, sum.Submitted)
	assert.Equal(t, "Got 0 from medrxiv group 3\nNumber of pages to submit: 0\n", out.String())
}

func TestRunFeedError(t *testing.T) {
	boom := errors.New("connection refused")
	lib := &fakeLibrary{}
	im := &Importer{Feed: &fakeFeed{err: boom}, Library: lib}

	_, err := im.Run(context.Background(), types.ImportConfig{MedrxivGroup: 3}, &bytes.Buffer{})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, lib.templateCalls)
	assert.Empty(t, lib.calls)
}

func TestRunTemplateError(t *testing.T) {
	boom := errors.New("forbidden")
	lib := &fakeLibrary{templateErr: boom}
	im := &Importer{Feed: &fakeFeed{preprints: preprints(2)}, Library: lib}

	_, err := im.Run(context.Background(), types.ImportConfig{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, lib.calls)
}

func TestRunSubmitErrorPropagates(t *testing.T) {
	boom := errors.New("HTTP 500")
	lib := &fakeLibrary{fakeCreator: fakeCreator{failOn: 1, err: boom}}
	im := &Importer{Feed: &fakeFeed{preprints: preprints(2)}, Library: lib}

	_, err := im.Run(context.Background(), types.ImportConfig{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, boom)
}

func TestRunWithLedgerSkipsImported(t *testing.T) {
	store, err := ledger.NewStore(types.LedgerBolt, filepath.Join(t.TempDir(), "ledger.bolt"))
	require.NoError(t, err)
	defer store.Close()

	cfg := types.ImportConfig{MedrxivGroup: 9, CollectionID: "COLL"}

	// First run rejects item 1, so only items 0 and 2 are recorded.
	first := &fakeLibrary{fakeCreator: fakeCreator{reject: map[int]bool{1: true}}}
	im := &Importer{Feed: &fakeFeed{preprints: preprints(3)}, Library: first, Ledger: store}
	sum, err := im.Run(context.Background(), cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Created)
	assert.Equal(t, 1, sum.Rejected)

	second := &fakeLibrary{}
	im.Library = second
	var out bytes.Buffer
	sum, err = im.Run(context.Background(), cfg, &out)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Skipped)
	require.Len(t, second.calls, 1)
	require.Len(t, second.calls[0], 1)
	assert.Equal(t, "Preprint 1", second.calls[0][0].Title)
	assert.Contains(t, out.String(), "skipped: 2 already imported\n")

	// A different collection is tracked separately.
	third := &fakeLibrary{}
	im.Library = third
	sum, err = im.Run(context.Background(), types.ImportConfig{MedrxivGroup: 9, CollectionID: "OTHER"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Zero(t, sum.Skipped)
	assert.Len(t, third.calls[0], 3)
}
