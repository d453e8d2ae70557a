// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package affiliation

import (
	"strings"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// Config holds the term sets the classifier matches against. All matching is
// case-insensitive; New normalizes the terms.
type Config struct {
	// CompanyKeywords are substrings that mark a for-profit entity. Order
	// matters: the first keyword found decides which segment names the company.
	CompanyKeywords []string `json:"company_keywords" yaml:"company_keywords"`

	// CompanySuffixes are legal-entity words matched as the last word of an
	// affiliation segment (e.g. "Genentech Inc").
	CompanySuffixes []string `json:"company_suffixes" yaml:"company_suffixes"`

	// AcademicDomains are substrings of an email domain that mark it academic.
	AcademicDomains []string `json:"academic_domains" yaml:"academic_domains"`

	// FreemailDomains are personal mail providers. A non-academic author
	// writing from one is flagged, with the first segment as the company.
	FreemailDomains []string `json:"freemail_domains" yaml:"freemail_domains"`
}

// defaultConfig is the process-wide default. It is never handed out directly;
// Default returns a copy.
var defaultConfig = Config{
	CompanyKeywords: []string{
		"inc.", "ltd", "corp", "gmbh", "llc", "co.",
		"pharma", "biotech", "therapeutics", "biosciences", "biologics",
	},
	CompanySuffixes: []string{
		"inc", "corp", "llc", "plc", "ltd", "gmbh", "ag", "bv", "kk", "pty",
	},
	AcademicDomains: []string{
		".edu", ".ac.", ".gov", "univ", "uni-", "college", "institute",
		"hospital", "inserm", "cnrs", "nih.",
	},
	FreemailDomains: []string{
		"gmail.com", "googlemail.com", "yahoo.com", "hotmail.com", "outlook.com",
		"live.com", "aol.com", "icloud.com", "protonmail.com", "qq.com",
		"163.com", "126.com", "foxmail.com", "mail.com", "yahoo.co.uk",
		"yahoo.co.jp", "hotmail.co.uk",
	},
}

// Default returns a copy of the built-in term sets.
func Default() Config {
	return Config{
		CompanyKeywords: clone(defaultConfig.CompanyKeywords),
		CompanySuffixes: clone(defaultConfig.CompanySuffixes),
		AcademicDomains: clone(defaultConfig.AcademicDomains),
		FreemailDomains: clone(defaultConfig.FreemailDomains),
	}
}

// Merge returns c extended with the extra terms. Duplicates are dropped by New.
func (c Config) Merge(extra types.ClassifierConfig) Config {
	return Config{
		CompanyKeywords: append(clone(c.CompanyKeywords), extra.CompanyKeywords...),
		CompanySuffixes: append(clone(c.CompanySuffixes), extra.CompanySuffixes...),
		AcademicDomains: append(clone(c.AcademicDomains), extra.AcademicDomains...),
		FreemailDomains: append(clone(c.FreemailDomains), extra.FreemailDomains...),
	}
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// normalize lowercases and trims terms, dropping blanks and duplicates while
// keeping first-seen order.
func normalize(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func toSet(terms []string) map[string]bool {
	set := make(map[string]bool, len(terms))
	for _, t := range normalize(terms) {
		set[t] = true
	}
	return set
}
