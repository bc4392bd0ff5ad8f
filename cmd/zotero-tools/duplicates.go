// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/zotero-tools/internal/duplicates"
	"github.com/pdiddy/zotero-tools/internal/zotero"
	"github.com/pdiddy/zotero-tools/pkg/types"
)

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates",
	Short: "Report likely duplicate items in a Zotero library",
	Long: `Duplicates fetches every item of the library (or of the given
collections) and compares each pair. A pair is reported when at least two
of these exceed their thresholds: author-list overlap, title similarity,
abstract similarity.

The text report is printed to stdout. --json or --yaml print the scored
pairs instead; --output and --xlsx also save the report to files.`,
	RunE: runDuplicates,
}

func init() {
	f := duplicatesCmd.Flags()
	f.StringSlice("collection", nil, "collection key to scan (repeatable; default whole library)")
	f.Float64("title-threshold", types.DefaultTitleThreshold, "title similarity threshold")
	f.Float64("author-threshold", types.DefaultAuthorThreshold, "author overlap threshold")
	f.Float64("abstract-threshold", types.DefaultAbstractThreshold, "abstract similarity threshold")
	f.String("output", "", "also write the text report to this file")
	f.String("xlsx", "", "also write the duplicate pairs to this spreadsheet")
	f.Bool("json", false, "print duplicate pairs with scores as JSON")
	f.Bool("yaml", false, "print duplicate pairs with scores as YAML")

	for key, flag := range map[string]string{
		"duplicates.collections":        "collection",
		"duplicates.title_threshold":    "title-threshold",
		"duplicates.author_threshold":   "author-threshold",
		"duplicates.abstract_threshold": "abstract-threshold",
		"duplicates.output_file":        "output",
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(duplicatesCmd)
}

func duplicatesConfig() (types.DuplicatesConfig, error) {
	cfg := types.DuplicatesConfig{
		Thresholds: types.Thresholds{
			Title:    viper.GetFloat64("duplicates.title_threshold"),
			Author:   viper.GetFloat64("duplicates.author_threshold"),
			Abstract: viper.GetFloat64("duplicates.abstract_threshold"),
		},
		Collections: viper.GetStringSlice("duplicates.collections"),
		OutputFile:  viper.GetString("duplicates.output_file"),
	}
	return cfg, cfg.Thresholds.Validate()
}

func runDuplicates(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	if asJSON && asYAML {
		return fmt.Errorf("--json and --yaml are mutually exclusive")
	}
	xlsxPath, _ := cmd.Flags().GetString("xlsx")

	libCfg, err := libraryConfig()
	if err != nil {
		return err
	}
	cfg, err := duplicatesConfig()
	if err != nil {
		return err
	}

	client, err := zotero.NewClient(libCfg, zlog)
	if err != nil {
		return err
	}
	articles, err := client.FetchAllItems(cmd.Context(), cfg.Collections)
	if err != nil {
		return fmt.Errorf("fetching library items: %w", err)
	}

	result := duplicates.FindDuplicates(articles, cfg.Thresholds, zlog)
	return writeDuplicates(result, cfg, asJSON, asYAML, xlsxPath, cmd.OutOrStdout())
}

// writeDuplicates prints the result in the selected format and saves the
// requested files.
func writeDuplicates(result duplicates.ScanResult, cfg types.DuplicatesConfig, asJSON, asYAML bool, xlsxPath string, w io.Writer) error {
	report := result.Report()

	var err error
	switch {
	case asJSON:
		err = duplicates.FormatJSON(result, w)
	case asYAML:
		err = duplicates.FormatYAML(result, w)
	default:
		_, err = fmt.Fprintln(w, report)
	}
	if err != nil {
		return fmt.Errorf("printing report: %w", err)
	}

	if cfg.OutputFile != "" {
		if err := duplicates.WriteReport(cfg.OutputFile, report); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote report to %s\n", cfg.OutputFile)
	}
	if xlsxPath != "" {
		if err := duplicates.WriteXLSX(result, xlsxPath); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %d pair(s) to %s\n", result.Count(), xlsxPath)
	}
	return nil
}
