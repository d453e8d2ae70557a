// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output renders pipeline results as CSV, JSON, YAML, or a
// human-readable table.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/pharma-papers/internal/pipeline"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

// DefaultSeparator joins multi-valued cells.
const DefaultSeparator = "; "

// Columns is the fixed CSV header.
var Columns = []string{
	"PubmedID",
	"Title",
	"Publication Year",
	"Non-academic Author(s)",
	"Company Affiliation(s)",
	"Corresponding Author Email",
}

// ParseFormat validates a format name. Empty selects CSV.
func ParseFormat(s string) (types.OutputFormat, error) {
	switch f := types.OutputFormat(s); f {
	case "":
		return types.OutputCSV, nil
	case types.OutputCSV, types.OutputJSON, types.OutputYAML, types.OutputTable:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use csv, json, yaml, or table", s)
	}
}

// Write renders res to w in the configured format.
func Write(w io.Writer, res pipeline.Result, cfg types.OutputConfig) error {
	format, err := ParseFormat(string(cfg.Format))
	if err != nil {
		return err
	}
	switch format {
	case types.OutputJSON:
		return WriteJSON(w, res)
	case types.OutputYAML:
		return WriteYAML(w, res)
	case types.OutputTable:
		WriteTable(w, res.Papers)
		return nil
	default:
		return WriteCSV(w, res.Papers, cfg.Separator)
	}
}

// WriteFile renders res to path. Output goes to a temporary file in the same
// directory first and is renamed into place only on success.
func WriteFile(path string, res pipeline.Result, cfg types.OutputConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := Write(tmp, res, cfg); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming to %s: %w", path, err)
	}
	return nil
}
