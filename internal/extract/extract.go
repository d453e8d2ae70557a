// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns raw PubMed records into filtered papers, keeping only
// records with at least one author whose affiliation is non-academic.
// Extraction never fails: missing fields degrade to empty values.
package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/pharma-papers/internal/affiliation"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

// Classifier decides whether one affiliation string is non-academic.
// *affiliation.Classifier satisfies it.
type Classifier interface {
	Classify(affiliation string) affiliation.Result
}

// Extractor applies a Classifier to every author of a record.
type Extractor struct {
	classifier Classifier
}

// New returns an Extractor backed by c.
func New(c Classifier) *Extractor {
	return &Extractor{classifier: c}
}

var yearRe = regexp.MustCompile(`\b(1[89]|20)\d{2}\b`)

// Extract returns the filtered paper for raw and true, or false when no
// author is non-academic (including records with no authors).
func (e *Extractor) Extract(raw types.RawRecord) (types.FilteredPaper, bool) {
	var (
		authors   []string
		companies []string
		email     string
	)
	seenCompany := make(map[string]bool)

	for _, a := range raw.Authors {
		if email == "" && a.Email != "" {
			email = strings.TrimSpace(a.Email)
		}

		flagged := false
		for _, aff := range a.Affiliations {
			res := e.classifier.Classify(aff)
			if !res.NonAcademic {
				continue
			}
			flagged = true
			if res.Company != "" && !seenCompany[res.Company] {
				seenCompany[res.Company] = true
				companies = append(companies, res.Company)
			}
		}
		if flagged {
			authors = append(authors, a.Name)
		}
	}

	if len(authors) == 0 {
		return types.FilteredPaper{}, false
	}

	return types.FilteredPaper{
		PMID:               strings.TrimSpace(raw.PMID),
		Title:              strings.TrimSpace(raw.Title),
		PublicationYear:    PublicationYear(raw.PubDate),
		PublicationDate:    raw.PubDate.String(),
		NonAcademicAuthors: authors,
		Companies:          companies,
		CorrespondingEmail: email,
	}, true
}

// ExtractAll runs Extract over records in order and returns the retained papers.
func (e *Extractor) ExtractAll(records []types.RawRecord) []types.FilteredPaper {
	var papers []types.FilteredPaper
	for _, r := range records {
		if p, ok := e.Extract(r); ok {
			papers = append(papers, p)
		}
	}
	return papers
}

// PublicationYear returns the four-digit year of d: the structured Year when
// present, otherwise the first year found in MedlineDate (e.g. "2019 Nov-Dec").
func PublicationYear(d types.PubDate) string {
	if y := strings.TrimSpace(d.Year); y != "" {
		return y
	}
	return yearRe.FindString(d.MedlineDate)
}
