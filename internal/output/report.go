// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pharma-papers/internal/pipeline"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

// Report is the JSON/YAML rendering of a run: the query, counts, and the
// retained papers.
type Report struct {
	Query   pipeline.Query        `json:"query" yaml:"query"`
	Summary Summary               `json:"summary" yaml:"summary"`
	Papers  []types.FilteredPaper `json:"papers" yaml:"papers"`
}

// Summary holds run counts and a timestamp.
type Summary struct {
	Found     int       `json:"found" yaml:"found"`
	Fetched   int       `json:"fetched" yaml:"fetched"`
	Retained  int       `json:"retained" yaml:"retained"`
	Discarded int       `json:"discarded" yaml:"discarded"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// NewReport builds the report for res. Papers is never nil so empty runs
// render as an empty list.
func NewReport(res pipeline.Result) Report {
	papers := res.Papers
	if papers == nil {
		papers = []types.FilteredPaper{}
	}
	return Report{
		Query: res.Query,
		Summary: Summary{
			Found:     res.Found,
			Fetched:   res.Fetched,
			Retained:  res.Retained(),
			Discarded: res.Discarded,
			Timestamp: res.Timestamp,
		},
		Papers: papers,
	}
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, res pipeline.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewReport(res))
}

// WriteYAML writes the report as YAML.
func WriteYAML(w io.Writer, res pipeline.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewReport(res)); err != nil {
		return fmt.Errorf("marshaling YAML report: %w", err)
	}
	return enc.Close()
}
