// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package duplicates

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.yaml.in/yaml/v3"
)

const xlsxSheet = "Duplicates"

var xlsxHeader = []any{
	"Key 1", "Authors 1", "Title 1",
	"Key 2", "Authors 2", "Title 2",
	"Author similarity", "Title similarity", "Abstract similarity", "Indicators",
}

// WriteReport writes the text report to path as UTF-8.
func WriteReport(path, report string) error {
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// FormatJSON writes the scan result as indented JSON to w.
func FormatJSON(r ScanResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// FormatYAML writes the scan result as YAML to w.
func FormatYAML(r ScanResult, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(r)
}

// WriteXLSX writes one spreadsheet row per duplicate pair, below a header row.
func WriteXLSX(r ScanResult, path string) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, p := range r.Duplicates {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			p.First.Key, strings.Join(p.First.Authors, ", "), p.First.Title,
			p.Second.Key, strings.Join(p.Second.Authors, ", "), p.Second.Title,
			p.Comparison.AuthorSimilarity, p.Comparison.TitleSimilarity,
			p.Comparison.AbstractSimilarity, p.Comparison.Indicators,
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}
