// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed queries the NCBI E-utilities API: esearch for the PMIDs that
// match a query, then efetch for the full PubMed XML records, parsed into
// types.RawRecord.
package pubmed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/pharma-papers/internal/httputil"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

// eutilsBase is the default E-utilities root. Declared as a var so tests can
// substitute an httptest server; PubMedConfig.BaseURL overrides it per client.
var eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

const (
	defaultTool       = "pharma-papers"
	defaultMaxResults = 100
	defaultBatchSize  = 100
	defaultBatchDelay = 500 * time.Millisecond

	// maxBatchSize keeps efetch URLs well under NCBI's GET length limit.
	maxBatchSize = 200
)

// ErrEmptyQuery is returned by Search when the query has no terms.
var ErrEmptyQuery = errors.New("query is empty")

// StatusError reports a non-200 response from an E-utilities endpoint.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d", e.Endpoint, e.Code)
}

// SearchResult is the outcome of one esearch call.
type SearchResult struct {
	// Count is the total number of matches PubMed reports.
	Count int
	// IDs are the PMIDs returned, in relevance order.
	IDs []string
}

// Client talks to E-utilities. The zero value is not usable; build one with
// NewClient.
type Client struct {
	HTTP *http.Client
	cfg  types.PubMedConfig
	log  io.Writer
}

// NewClient returns a Client using cfg, filling defaults for unset fields.
// Progress and retry notes go to log, which may be nil.
func NewClient(httpClient *http.Client, cfg types.PubMedConfig, log io.Writer) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = eutilsBase
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Tool == "" {
		cfg.Tool = defaultTool
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.BatchSize > maxBatchSize {
		cfg.BatchSize = maxBatchSize
	}
	if cfg.BatchDelay < 0 {
		cfg.BatchDelay = 0
	} else if cfg.BatchDelay == 0 {
		cfg.BatchDelay = defaultBatchDelay
	}
	if log == nil {
		log = io.Discard
	}
	return &Client{HTTP: httpClient, cfg: cfg, log: log}
}

// Config returns the effective configuration after defaults.
func (c *Client) Config() types.PubMedConfig { return c.cfg }

// Search runs esearch for query and returns up to maxResults PMIDs sorted by
// relevance. maxResults <= 0 uses the configured default.
func (c *Client) Search(ctx context.Context, query string, maxResults int) (SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResult{}, ErrEmptyQuery
	}
	if maxResults <= 0 {
		maxResults = c.cfg.MaxResults
	}

	params := c.baseParams()
	params.Set("term", query)
	params.Set("retmax", strconv.Itoa(maxResults))
	params.Set("retmode", "json")
	params.Set("sort", "relevance")

	fmt.Fprintf(c.log, "searching PubMed for: %s\n", query)

	body, err := c.get(ctx, "esearch", params)
	if err != nil {
		return SearchResult{}, err
	}
	defer body.Close()

	var er esearchResponse
	if err := json.NewDecoder(body).Decode(&er); err != nil {
		return SearchResult{}, fmt.Errorf("parsing esearch response: %w", err)
	}
	if msg := er.Result.Error; msg != "" {
		return SearchResult{}, fmt.Errorf("esearch: %s", msg)
	}

	count, _ := strconv.Atoi(er.Result.Count)
	ids := er.Result.IDList
	if len(ids) > maxResults {
		ids = ids[:maxResults]
	}
	fmt.Fprintf(c.log, "found %d papers (%d total matches)\n", len(ids), count)

	return SearchResult{Count: count, IDs: ids}, nil
}

// Fetch retrieves full records for ids with efetch, BatchSize ids per
// request and BatchDelay between requests. Records come back in the order
// PubMed returns them; records without a PMID are dropped.
func (c *Client) Fetch(ctx context.Context, ids []string) ([]types.RawRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	fmt.Fprintf(c.log, "fetching details for %d papers\n", len(ids))

	var records []types.RawRecord
	for start := 0; start < len(ids); start += c.cfg.BatchSize {
		if start > 0 && c.cfg.BatchDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.cfg.BatchDelay):
			}
		}

		end := min(start+c.cfg.BatchSize, len(ids))
		batch, err := c.fetchBatch(ctx, ids[start:end])
		if err != nil {
			return nil, fmt.Errorf("fetching PMIDs %d-%d: %w", start+1, end, err)
		}
		records = append(records, batch...)
	}
	return records, nil
}

func (c *Client) fetchBatch(ctx context.Context, ids []string) ([]types.RawRecord, error) {
	params := c.baseParams()
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "xml")

	body, err := c.get(ctx, "efetch", params)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	records, err := ParseArticleSet(body)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		fmt.Fprintln(c.log, "warning: no papers were parsed from the efetch response")
	}
	return records, nil
}

func (c *Client) baseParams() url.Values {
	params := url.Values{
		"db":   {"pubmed"},
		"tool": {c.cfg.Tool},
	}
	if c.cfg.Email != "" {
		params.Set("email", c.cfg.Email)
	}
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}
	return params
}

// get issues a GET to endpoint (e.g. "esearch") and returns the body of a 200
// response. The caller closes it.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (io.ReadCloser, error) {
	reqURL := c.cfg.BaseURL + "/" + endpoint + ".fcgi?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.cfg.MaxRetries, c.log)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
	}
	return resp.Body, nil
}

// esearch JSON structures.
type esearchResponse struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
	Error  string   `json:"ERROR,omitempty"`
}
