// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pharma-papers/internal/store"
)

const queryESearchJSON = `{"esearchresult": {"count": "2", "idlist": ["111", "222"]}}`

const queryEFetchXML = `<PubmedArticleSet>
  <PubmedArticle><MedlineCitation><PMID>111</PMID><Article>
    <Journal><JournalIssue><PubDate><Year>2023</Year></PubDate></JournalIssue></Journal>
    <ArticleTitle>Vaccine trial</ArticleTitle>
    <AuthorList>
      <Author><LastName>Doe</LastName><ForeName>Jane</ForeName>
        <AffiliationInfo><Affiliation>Pfizer Inc., New York, NY. jdoe@pfizer.com</Affiliation></AffiliationInfo>
      </Author>
      <Author><LastName>Roe</LastName><ForeName>John</ForeName>
        <AffiliationInfo><Affiliation>Stanford University</Affiliation></AffiliationInfo>
      </Author>
    </AuthorList>
  </Article></MedlineCitation></PubmedArticle>
  <PubmedArticle><MedlineCitation><PMID>222</PMID><Article>
    <ArticleTitle>Academic only</ArticleTitle>
    <AuthorList>
      <Author><LastName>Poe</LastName>
        <AffiliationInfo><Affiliation>Department of Biology, Harvard University</Affiliation></AffiliationInfo>
      </Author>
    </AuthorList>
  </Article></MedlineCitation></PubmedArticle>
</PubmedArticleSet>`

const wantQueryCSV = "PubmedID,Title,Publication Year,Non-academic Author(s),Company Affiliation(s),Corresponding Author Email\n" +
	"111,Vaccine trial,2023,Jane Doe,Pfizer Inc.,jdoe@pfizer.com\n"

// startEUtils serves canned esearch/efetch responses and points the CLI at it.
func startEUtils(t *testing.T) {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/esearch.fcgi"):
			fmt.Fprint(w, queryESearchJSON)
		case strings.HasSuffix(r.URL.Path, "/efetch.fcgi"):
			fmt.Fprint(w, queryEFetchXML)
		default:
			http.NotFound(w, r)
		}
	}))

	viper.Set("pubmed.base_url", ts.URL)
	viper.Set("pubmed.batch_delay", -time.Nanosecond)
	t.Cleanup(func() {
		viper.Set("pubmed.base_url", "")
		viper.Set("pubmed.batch_delay", time.Duration(0))
		ts.Close()
	})
}

// executeRoot runs the root command with args and returns stdout and stderr.
func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(t)
	t.Cleanup(func() {
		resetFlags(t)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// resetFlags restores root flag defaults between executions of the shared
// command tree.
func resetFlags(t *testing.T) {
	t.Helper()
	for _, fs := range []*pflag.FlagSet{rootCmd.Flags(), rootCmd.PersistentFlags()} {
		fs.VisitAll(func(f *pflag.Flag) {
			require.NoError(t, f.Value.Set(f.DefValue))
			f.Changed = false
		})
	}
}

func TestRootQueryWritesCSVToStdout(t *testing.T) {
	startEUtils(t)

	stdout, stderr, err := executeRoot(t, "mRNA", "vaccine")
	require.NoError(t, err)
	assert.Equal(t, wantQueryCSV, stdout)
	assert.NotContains(t, stderr, "Results saved to")
}

func TestRootQueryWritesFileAndRecordsRun(t *testing.T) {
	startEUtils(t)
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out", "results.csv")
	dbPath := filepath.Join(dir, "runs.db")

	stdout, stderr, err := executeRoot(t, "-f", outPath, "--db", dbPath, "mRNA vaccine")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Results saved to "+outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, wantQueryCSV, string(data))

	db, err := store.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()

	runs, err := db.Runs(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "mRNA vaccine", runs[0].Query)
	assert.Equal(t, 2, runs[0].Found)
	assert.Equal(t, 2, runs[0].Fetched)
	assert.Equal(t, 1, runs[0].Retained)
}

func TestRootQueryDebugLogsProgressOnce(t *testing.T) {
	startEUtils(t)

	_, stderr, err := executeRoot(t, "-d", "mRNA vaccine")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(stderr, "1 of 2 fetched papers have non-academic authors"))
	assert.Contains(t, stderr, "non-academic authors in 111: Vaccine trial")
	assert.Contains(t, stderr, "searching PubMed for: mRNA vaccine")
}

func TestRootQueryRejectsUnknownFormat(t *testing.T) {
	startEUtils(t)

	_, _, err := executeRoot(t, "--format", "xml", "mRNA vaccine")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported format "xml"`)
}
