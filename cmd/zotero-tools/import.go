// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/zotero-tools/internal/importer"
	"github.com/pdiddy/zotero-tools/internal/ledger"
	"github.com/pdiddy/zotero-tools/internal/medrxiv"
	"github.com/pdiddy/zotero-tools/internal/zotero"
	"github.com/pdiddy/zotero-tools/pkg/types"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a medRxiv collection into a Zotero library",
	Long: `Import fetches a medRxiv/bioRxiv "relate" collection, converts every
preprint into a Zotero journalArticle, and submits the items in batches.

With --ledger sqlite or --ledger bbolt, DOIs already imported into the
target collection are skipped, so the command can be rerun safely.`,
	RunE: runImport,
}

func init() {
	f := importCmd.Flags()
	f.Int("medrxiv-group", 0, "medRxiv collection (group) ID to import")
	f.String("collection", "", "target Zotero collection key (default: library root)")
	f.Int("batch-size", types.DefaultBatchSize, "items per write request (max 50)")
	f.String("ledger", string(types.LedgerNone), "import ledger: none, sqlite or bbolt")
	f.String("ledger-path", ".zotero-tools/ledger.db", "import ledger file")

	for key, flag := range map[string]string{
		"import.medrxiv_group": "medrxiv-group",
		"import.collection":    "collection",
		"import.batch_size":    "batch-size",
		"ledger.type":          "ledger",
		"ledger.path":          "ledger-path",
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(importCmd)
}

func importConfig() (types.ImportConfig, error) {
	cfg := types.ImportConfig{
		MedrxivGroup: viper.GetInt("import.medrxiv_group"),
		CollectionID: viper.GetString("import.collection"),
		BatchSize:    viper.GetInt("import.batch_size"),
	}
	if cfg.MedrxivGroup <= 0 {
		return cfg, fmt.Errorf("a medRxiv group ID is required (--medrxiv-group)")
	}
	if cfg.BatchSize > zotero.MaxWriteItems {
		return cfg, fmt.Errorf("batch size %d exceeds the Zotero limit of %d", cfg.BatchSize, zotero.MaxWriteItems)
	}
	return cfg, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	libCfg, err := libraryConfig()
	if err != nil {
		return err
	}
	cfg, err := importConfig()
	if err != nil {
		return err
	}

	lc := types.LedgerConfig{
		Type: types.LedgerType(viper.GetString("ledger.type")),
		Path: viper.GetString("ledger.path"),
	}
	store, err := ledger.NewStore(lc.Type, lc.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	lib, err := zotero.NewClient(libCfg, zlog)
	if err != nil {
		return err
	}

	im := &importer.Importer{
		Feed:    medrxiv.NewClient(libCfg.HTTPConfig, zlog),
		Library: lib,
		Ledger:  store,
		Log:     zlog,
	}
	sum, err := im.Run(cmd.Context(), cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if sum.Rejected > 0 {
		zlog.Warn("some items were rejected", zap.Int("rejected", sum.Rejected))
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d item(s) rejected by Zotero\n", sum.Rejected)
	}
	return nil
}
