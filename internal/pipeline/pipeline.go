// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one query end to end: search, fetch, and filter.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/pharma-papers/internal/pubmed"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

// Source finds and fetches raw records. *pubmed.Client implements it.
type Source interface {
	Search(ctx context.Context, query string, maxResults int) (pubmed.SearchResult, error)
	Fetch(ctx context.Context, ids []string) ([]types.RawRecord, error)
}

// Extractor filters one raw record. *extract.Extractor implements it.
type Extractor interface {
	Extract(raw types.RawRecord) (types.FilteredPaper, bool)
}

// Query is what the user asked for.
type Query struct {
	Text       string `json:"text" yaml:"text"`
	MaxResults int    `json:"max_results" yaml:"max_results"`
}

// Result holds the retained papers and run counts.
type Result struct {
	Query  Query                 `json:"query" yaml:"query"`
	Papers []types.FilteredPaper `json:"papers" yaml:"papers"`

	// Found is the total match count PubMed reported.
	Found int `json:"found" yaml:"found"`
	// Fetched is the number of records parsed from efetch.
	Fetched int `json:"fetched" yaml:"fetched"`
	// Discarded is the number of fetched records with no non-academic author.
	Discarded int `json:"discarded" yaml:"discarded"`

	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Retained returns the number of papers kept.
func (r Result) Retained() int { return len(r.Papers) }

// Run searches src for q, fetches every returned PMID, and keeps the records
// ex retains, in fetch order. A query with no matches is not an error.
// Progress is written to w.
func Run(ctx context.Context, src Source, ex Extractor, q Query, w io.Writer) (Result, error) {
	if w == nil {
		w = io.Discard
	}
	res := Result{Query: q, Timestamp: time.Now().UTC()}

	sr, err := src.Search(ctx, q.Text, q.MaxResults)
	if err != nil {
		return res, fmt.Errorf("searching PubMed: %w", err)
	}
	res.Found = sr.Count
	if len(sr.IDs) == 0 {
		fmt.Fprintln(w, "no papers found matching the query")
		return res, nil
	}

	records, err := src.Fetch(ctx, sr.IDs)
	if err != nil {
		return res, fmt.Errorf("fetching paper details: %w", err)
	}
	res.Fetched = len(records)

	for _, rec := range records {
		p, ok := ex.Extract(rec)
		if !ok {
			res.Discarded++
			continue
		}
		fmt.Fprintf(w, "non-academic authors in %s: %s\n", p.PMID, p.Title)
		res.Papers = append(res.Papers, p)
	}

	fmt.Fprintf(w, "%d of %d fetched papers have non-academic authors\n", res.Retained(), res.Fetched)
	return res, nil
}
