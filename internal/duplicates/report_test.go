// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package duplicates

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/zotero-tools/pkg/types"
)

func sampleResult() ScanResult {
	articles := []types.Article{
		article("A", types.Str(sampleTitle), types.Str(sampleAbstract), "Müller", "Jones"),
		article("B", types.Str(sampleTitle), types.Str(sampleAbstract), "Müller", "Jones"),
		article("C", types.Str("Unrelated"), nil, "Lee"),
	}
	return FindDuplicates(articles, types.DefaultThresholds(), nil)
}

func TestWriteReportUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dups.txt")
	r := sampleResult()

	require.NoError(t, WriteReport(path, r.Report()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, r.Report(), string(data))
	assert.Contains(t, string(data), "Müller")
}

func TestWriteReportBadPath(t *testing.T) {
	err := WriteReport(filepath.Join(t.TempDir(), "missing", "dups.txt"), "x")
	assert.Error(t, err)
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(sampleResult(), &buf))

	var got ScanResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 3, got.Comparisons)
	require.Len(t, got.Duplicates, 1)
	assert.Equal(t, []string{"Müller", "Jones"}, got.Duplicates[0].First.Authors)
	assert.Equal(t, 3, got.Duplicates[0].Comparison.Indicators)
}

func TestFormatYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatYAML(sampleResult(), &buf))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 3, doc["articles"])
	dups, ok := doc["duplicates"].([]any)
	require.True(t, ok)
	assert.Len(t, dups, 1)
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dups.xlsx")
	require.NoError(t, WriteXLSX(sampleResult(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Key 1", rows[0][0])
	assert.Equal(t, "A", rows[1][0])
	assert.Equal(t, "Müller, Jones", rows[1][1])
	assert.Equal(t, "B", rows[1][3])
	assert.Equal(t, "3", rows[1][9])
}

func TestWriteXLSXEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteXLSX(ScanResult{}, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
