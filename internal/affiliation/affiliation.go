// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package affiliation decides whether an author affiliation string belongs to
// a for-profit (pharmaceutical/biotech) entity rather than an academic one.
//
// The decision is a best-effort heuristic over three rules, tried in order:
// a company keyword anywhere in the text, a legal-entity suffix closing one of
// the comma-separated segments, and an embedded email whose domain is not
// academic and is either a free-mail provider or looks corporate. Empty input
// is always academic.
package affiliation

import (
	"regexp"
	"strings"
	"unicode"
)

// Reason names the rule that flagged an affiliation.
type Reason string

const (
	ReasonNone    Reason = ""
	ReasonKeyword Reason = "keyword"
	ReasonSuffix  Reason = "suffix"
	ReasonDomain  Reason = "domain"
)

// Result is the classifier's decision for one affiliation string.
type Result struct {
	// NonAcademic is true when any rule matched.
	NonAcademic bool `json:"non_academic" yaml:"non_academic"`

	// Company is the best guess at the company name; empty when academic.
	Company string `json:"company,omitempty" yaml:"company,omitempty"`

	// Reason is the rule that matched.
	Reason Reason `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Match is the keyword, suffix, or email domain that triggered the rule.
	Match string `json:"match,omitempty" yaml:"match,omitempty"`
}

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(?:\.[A-Za-z0-9\-]+)+`)

	// electronicAddressRe strips the "Electronic address:" lead-in PubMed
	// appends before author emails.
	electronicAddressRe = regexp.MustCompile(`(?i)electronic address:?`)

	// corporateDomainRe matches commercial top-level domains, optionally
	// under a country code (e.g. "astrazeneca.co.uk", "roche.com.br").
	corporateDomainRe = regexp.MustCompile(`([a-z0-9\-]+)\.(?:com|co|biz|io)(?:\.[a-z]{2})?$`)
)

// FindEmail returns the first email address embedded in text, or "".
func FindEmail(text string) string {
	return emailRe.FindString(text)
}

// Classifier applies the heuristic rules. It is immutable once built and
// safe for concurrent use.
type Classifier struct {
	keywords []string
	suffixes map[string]bool
	academic []string
	freemail map[string]bool
}

// New builds a Classifier from cfg.
func New(cfg Config) *Classifier {
	return &Classifier{
		keywords: normalize(cfg.CompanyKeywords),
		suffixes: toSet(cfg.CompanySuffixes),
		academic: normalize(cfg.AcademicDomains),
		freemail: toSet(cfg.FreemailDomains),
	}
}

// Classify decides whether affiliation is non-academic. It never fails;
// empty or whitespace-only input is academic.
func (c *Classifier) Classify(affiliation string) Result {
	text := strings.TrimSpace(affiliation)
	if text == "" {
		return Result{}
	}
	lower := strings.ToLower(text)
	segments := splitSegments(text)

	for _, kw := range c.keywords {
		if !strings.Contains(lower, kw) {
			continue
		}
		company := segmentContaining(segments, kw)
		if company == "" && len(segments) > 0 {
			company = segments[0]
		}
		return Result{NonAcademic: true, Company: company, Reason: ReasonKeyword, Match: kw}
	}

	for _, seg := range segments {
		if w := lastWord(seg); c.suffixes[w] {
			return Result{NonAcademic: true, Company: seg, Reason: ReasonSuffix, Match: w}
		}
	}

	for _, email := range emailRe.FindAllString(text, -1) {
		domain := strings.ToLower(email[strings.LastIndex(email, "@")+1:])
		if c.isAcademicDomain(domain) {
			continue
		}
		if c.freemail[domain] {
			var company string
			if len(segments) > 0 {
				company = segments[0]
			}
			return Result{NonAcademic: true, Company: company, Reason: ReasonDomain, Match: domain}
		}
		m := corporateDomainRe.FindStringSubmatch(domain)
		if m == nil {
			continue
		}
		return Result{NonAcademic: true, Company: titleCase(m[1]), Reason: ReasonDomain, Match: domain}
	}

	return Result{}
}

// IsNonAcademic is shorthand for Classify(affiliation).NonAcademic.
func (c *Classifier) IsNonAcademic(affiliation string) bool {
	return c.Classify(affiliation).NonAcademic
}

func (c *Classifier) isAcademicDomain(domain string) bool {
	for _, ind := range c.academic {
		if strings.Contains(domain, ind) {
			return true
		}
	}
	return false
}

// splitSegments breaks an affiliation into its comma, semicolon, and
// parenthesis separated parts, with emails and the "Electronic address"
// lead-in removed. Blank parts are dropped.
func splitSegments(text string) []string {
	text = emailRe.ReplaceAllString(text, "")
	text = electronicAddressRe.ReplaceAllString(text, "")
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '(' || r == ')'
	})
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" && p != "." {
			segments = append(segments, p)
		}
	}
	return segments
}

func segmentContaining(segments []string, kw string) string {
	for _, seg := range segments {
		if strings.Contains(strings.ToLower(seg), kw) {
			return seg
		}
	}
	return ""
}

// lastWord returns the lowercased final word of seg with surrounding
// punctuation removed ("Genentech Inc." -> "inc").
func lastWord(seg string) string {
	fields := strings.Fields(seg)
	if len(fields) < 2 {
		return ""
	}
	w := strings.TrimFunc(fields[len(fields)-1], func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	return strings.ToLower(w)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
