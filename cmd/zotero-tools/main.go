// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the zotero-tools CLI.
// Subcommands: duplicates (scan a library for likely duplicates), import
// (copy a medRxiv collection into a library), version.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/zotero-tools/internal/logger"
	"github.com/pdiddy/zotero-tools/internal/secrets"
	"github.com/pdiddy/zotero-tools/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const defaultTimeout = 60 * time.Second

var (
	// loadedSecrets holds API keys loaded from .secrets/ at startup.
	loadedSecrets map[string]string

	// zlog is the diagnostic logger, built once flags and config are read.
	zlog = zap.NewNop()
)

// rootCmd is the base command for the zotero-tools CLI.
var rootCmd = &cobra.Command{
	Use:   "zotero-tools",
	Short: "Maintenance tools for Zotero group and user libraries",
	Long: `zotero-tools works on a Zotero library through the Zotero Web API.

duplicates compares every pair of items and reports likely duplicates.
import copies a medRxiv/bioRxiv collection into the library.

Settings come from flags, ZOTERO_TOOLS_* environment variables (also read
from .env), or zotero-tools.yaml. The API key may also be stored in
.secrets/zotero-api-key.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}

		lc := types.LogConfig{Level: viper.GetString("log.level")}
		l, err := logger.New(lc.Level, os.Stderr)
		if err != nil {
			return err
		}
		zlog = l
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./zotero-tools.yaml or ~/.config/zotero-tools/config.yaml)")
	pf.String("group-id", "", "Zotero library ID (group or user)")
	pf.String("library-type", string(types.LibraryGroup), "Zotero library type: group or user")
	pf.String("api-key", "", "Zotero API key (default: .secrets/zotero-api-key)")
	pf.Duration("timeout", defaultTimeout, "HTTP request timeout")
	pf.String("log-level", logger.DefaultLevel, "diagnostic log level: debug, info, warn, error")

	for key, flag := range map[string]string{
		"library.id":      "group-id",
		"library.type":    "library-type",
		"library.api_key": "api-key",
		"http.timeout":    "timeout",
		"log.level":       "log-level",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: reading .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("zotero-tools")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "zotero-tools"))
		}
	}

	viper.SetEnvPrefix("ZOTERO_TOOLS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// libraryConfig assembles the Zotero library settings from flags, env,
// config and secrets, in that order of precedence.
func libraryConfig() (types.LibraryConfig, error) {
	cfg := types.LibraryConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("http.timeout"),
			UserAgent: "zotero-tools/" + version,
		},
		LibraryID:   viper.GetString("library.id"),
		LibraryType: types.LibraryType(viper.GetString("library.type")),
		APIKey:      secrets.Resolve(loadedSecrets, secrets.ZoteroAPIKey, viper.GetString("library.api_key")),
	}
	if cfg.LibraryID == "" {
		return cfg, fmt.Errorf("a Zotero library ID is required (--group-id or ZOTERO_TOOLS_LIBRARY_ID)")
	}
	return cfg, nil
}

func main() {
	err := rootCmd.Execute()
	_ = zlog.Sync()
	if err != nil {
		os.Exit(1)
	}
}
