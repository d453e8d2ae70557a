// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pharma-papers/internal/affiliation"
	"github.com/pdiddy/pharma-papers/internal/extract"
	"github.com/pdiddy/pharma-papers/internal/pubmed"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

type fakeSource struct {
	search    pubmed.SearchResult
	searchErr error
	records   []types.RawRecord
	fetchErr  error

	gotQuery string
	gotMax   int
	gotIDs   []string
}

func (f *fakeSource) Search(_ context.Context, query string, maxResults int) (pubmed.SearchResult, error) {
	f.gotQuery, f.gotMax = query, maxResults
	return f.search, f.searchErr
}

func (f *fakeSource) Fetch(_ context.Context, ids []string) ([]types.RawRecord, error) {
	f.gotIDs = ids
	return f.records, f.fetchErr
}

func testExtractor() *extract.Extractor {
	return extract.New(affiliation.New(affiliation.Default()))
}

func TestRun(t *testing.T) {
	src := &fakeSource{
		search: pubmed.SearchResult{Count: 57, IDs: []string{"1", "2", "3"}},
		records: []types.RawRecord{
			{PMID: "1", Title: "Industry", Authors: []types.Author{
				{Name: "A", Affiliations: []string{"Novartis Pharma AG"}, Email: "jdoe@novartis.com"},
				{Name: "B", Affiliations: []string{"MIT"}},
			}},
			{PMID: "2", Title: "Academic", Authors: []types.Author{
				{Name: "C", Affiliations: []string{"Department of Biology, Stanford University"}},
			}},
			{PMID: "3", Title: "Biotech", Authors: []types.Author{
				{Name: "D", Affiliations: []string{"Moderna Inc., Cambridge, MA"}},
			}},
		},
	}

	var log bytes.Buffer
	res, err := Run(context.Background(), src, testExtractor(), Query{Text: "vaccine", MaxResults: 3}, &log)
	require.NoError(t, err)

	assert.Equal(t, "vaccine", src.gotQuery)
	assert.Equal(t, 3, src.gotMax)
	assert.Equal(t, []string{"1", "2", "3"}, src.gotIDs)

	assert.Equal(t, 57, res.Found)
	assert.Equal(t, 3, res.Fetched)
	assert.Equal(t, 1, res.Discarded)
	assert.Equal(t, 2, res.Retained())
	require.Len(t, res.Papers, 2)
	assert.Equal(t, "1", res.Papers[0].PMID)
	assert.Equal(t, []string{"A"}, res.Papers[0].NonAcademicAuthors)
	assert.Equal(t, "3", res.Papers[1].PMID)
	assert.False(t, res.Timestamp.IsZero())
	assert.Contains(t, log.String(), "2 of 3 fetched papers")
}

func TestRunNoMatches(t *testing.T) {
	src := &fakeSource{}
	var log bytes.Buffer
	res, err := Run(context.Background(), src, testExtractor(), Query{Text: "nothing"}, &log)
	require.NoError(t, err)
	assert.Empty(t, res.Papers)
	assert.Nil(t, src.gotIDs, "fetch is skipped when search finds nothing")
	assert.Contains(t, log.String(), "no papers found")
}

func TestRunErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := Run(context.Background(), &fakeSource{searchErr: boom}, testExtractor(), Query{Text: "x"}, nil)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "searching PubMed")

	src := &fakeSource{search: pubmed.SearchResult{IDs: []string{"1"}}, fetchErr: boom}
	_, err = Run(context.Background(), src, testExtractor(), Query{Text: "x"}, nil)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fetching paper details")
}
