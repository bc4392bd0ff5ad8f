//go:build mage

// Package main contains Mage build targets for zotero-tools developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "zotero-tools"
	cmdPkg  = "./cmd/zotero-tools"
)

var binPath = filepath.Join(binDir, binName)

// sampleConfig is written by Init when no config file exists.
const sampleConfig = `library:
  id: ""
  type: group
http:
  timeout: 60s
log:
  level: warn
duplicates:
  title_threshold: 0.75
  author_threshold: 0.75
  abstract_threshold: 0.5
  collections: []
import:
  batch_size: 50
ledger:
  type: none
  path: .zotero-tools/ledger.db
`

// Init creates .secrets/ and a starter zotero-tools.yaml.
func Init() error {
	if err := os.MkdirAll(".secrets", 0o700); err != nil {
		return fmt.Errorf("creating .secrets: %w", err)
	}
	fmt.Println("   .secrets/ (put your key in .secrets/zotero-api-key)")

	const cfg = "zotero-tools.yaml"
	if _, err := os.Stat(cfg); err == nil {
		fmt.Printf("   %s (exists, left unchanged)\n", cfg)
		return nil
	}
	if err := os.WriteFile(cfg, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg, err)
	}
	fmt.Println("  ", cfg)
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	if err := sh.RunV("go", "build", "-o", binPath, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", binPath)
	return nil
}

// Test runs all package tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Duplicates builds the CLI and scans the given group library for duplicates.
func Duplicates(groupID string) error {
	mg.Deps(Build)
	return sh.RunV(binPath, "duplicates", "--group-id", groupID)
}

// Import builds the CLI and imports a medRxiv collection into the given group
// library, recording imported DOIs in the sqlite ledger.
func Import(groupID, medrxivGroup string) error {
	mg.Deps(Build)
	return sh.RunV(binPath, "import",
		"--group-id", groupID,
		"--medrxiv-group", medrxivGroup,
		"--ledger", "sqlite",
	)
}

// Stats prints project metrics: Go production/test LOC and documentation word count.
func Stats() error {
	prodLines, testLines, err := countGoLines(".")
	if err != nil {
		return err
	}
	docWords, err := countDocWords(".")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (documentation):           %d\n", docWords)
	return nil
}

// skipDir reports directories that do not belong to the module's sources.
func skipDir(name string) bool {
	return name == "bin" || (len(name) > 1 && (name[0] == '.' || name[0] == '_'))
}

// countGoLines counts non-blank lines in production and test Go files.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			if strings.TrimSpace(sc.Text()) != "" {
				n++
			}
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return sc.Err()
	})
	return prod, test, err
}

// countDocWords counts words in the Markdown files of the repository.
func countDocWords(root string) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".md" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		total += len(strings.Fields(string(data)))
		return nil
	})
	return total, err
}
