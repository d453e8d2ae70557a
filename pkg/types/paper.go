// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pharma-papers pipeline:
// the raw PubMed record as fetched, and the filtered paper that survives the
// affiliation filter.
package types

import "strings"

// PubDate is the publication date as PubMed reports it. Either the
// structured Year/Month/Day fields or the free-form MedlineDate
// (e.g. "2019 Nov-Dec") is set.
type PubDate struct {
	Year        string `json:"year,omitempty" yaml:"year,omitempty"`
	Month       string `json:"month,omitempty" yaml:"month,omitempty"`
	Day         string `json:"day,omitempty" yaml:"day,omitempty"`
	MedlineDate string `json:"medline_date,omitempty" yaml:"medline_date,omitempty"`
}

// String renders the date as "Day Month Year", dropping missing parts.
// When no Year is present the MedlineDate text is returned.
func (d PubDate) String() string {
	if d.Year == "" {
		return strings.TrimSpace(d.MedlineDate)
	}
	parts := make([]string, 0, 3)
	if d.Month != "" {
		if d.Day != "" {
			parts = append(parts, d.Day)
		}
		parts = append(parts, d.Month)
	}
	parts = append(parts, d.Year)
	return strings.Join(parts, " ")
}

// Author is one entry of a record's author list.
type Author struct {
	// Name is "ForeName LastName", falling back to initials or a collective name.
	Name string `json:"name" yaml:"name"`

	// Affiliations holds the author's affiliation strings in source order.
	// Most records carry zero or one.
	Affiliations []string `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`

	// Email is the contact address when the record carries one.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// RawRecord is one paper as returned by the PubMed efetch endpoint.
type RawRecord struct {
	PMID    string   `json:"pmid" yaml:"pmid"`
	Title   string   `json:"title" yaml:"title"`
	Journal string   `json:"journal,omitempty" yaml:"journal,omitempty"`
	PubDate PubDate  `json:"pub_date" yaml:"pub_date"`
	Authors []Author `json:"authors" yaml:"authors"`
}

// FilteredPaper is a paper with at least one non-academic author.
type FilteredPaper struct {
	// PMID is the PubMed identifier.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// PublicationYear is the four-digit year, empty when unknown.
	PublicationYear string `json:"publication_year" yaml:"publication_year"`

	// PublicationDate is the human-readable date text.
	PublicationDate string `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`

	// NonAcademicAuthors lists flagged authors in author-list order.
	NonAcademicAuthors []string `json:"non_academic_authors" yaml:"non_academic_authors"`

	// Companies lists company names in first-seen order, without duplicates.
	Companies []string `json:"companies" yaml:"companies"`

	// CorrespondingEmail is the first author email in the record, if any.
	CorrespondingEmail string `json:"corresponding_email,omitempty" yaml:"corresponding_email,omitempty"`
}
