// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package affiliation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

func TestClassify(t *testing.T) {
	c := New(Default())

	tests := []struct {
		name        string
		affiliation string
		want        Result
	}{
		{
			name:        "empty",
			affiliation: "",
			want:        Result{},
		},
		{
			name:        "whitespace only",
			affiliation: "  \t ",
			want:        Result{},
		},
		{
			name:        "company keyword names first segment",
			affiliation: "Moderna Inc., Cambridge, MA",
			want:        Result{NonAcademic: true, Company: "Moderna Inc.", Reason: ReasonKeyword, Match: "inc."},
		},
		{
			name:        "university department",
			affiliation: "Department of Biology, Stanford University",
			want:        Result{},
		},
		{
			name:        "pharma keyword",
			affiliation: "Novartis Pharma AG",
			want:        Result{NonAcademic: true, Company: "Novartis Pharma AG", Reason: ReasonKeyword, Match: "pharma"},
		},
		{
			name:        "bare acronym",
			affiliation: "MIT",
			want:        Result{},
		},
		{
			name:        "company segment after department",
			affiliation: "Department of Oncology, Genentech Biotech Unit, South San Francisco, CA, USA.",
			want:        Result{NonAcademic: true, Company: "Genentech Biotech Unit", Reason: ReasonKeyword, Match: "biotech"},
		},
		{
			name:        "legal suffix without period",
			affiliation: "Discovery Sciences, AstraZeneca PLC, Cambridge, UK",
			want:        Result{NonAcademic: true, Company: "AstraZeneca PLC", Reason: ReasonSuffix, Match: "plc"},
		},
		{
			name:        "corporate email domain",
			affiliation: "Translational Medicine, Basel, Switzerland. Electronic address: jdoe@novartis.com.",
			want:        Result{NonAcademic: true, Company: "Novartis", Reason: ReasonDomain, Match: "novartis.com"},
		},
		{
			name:        "corporate domain under country code",
			affiliation: "Pesquisa Clinica, Sao Paulo, Brazil. maria@roche.com.br",
			want:        Result{NonAcademic: true, Company: "Roche", Reason: ReasonDomain, Match: "roche.com.br"},
		},
		{
			name:        "co. inside an email domain is still a keyword hit",
			affiliation: "Research and Development, Macclesfield, UK. j.smith@astrazeneca.co.uk",
			want:        Result{NonAcademic: true, Company: "Research and Development", Reason: ReasonKeyword, Match: "co."},
		},
		{
			name:        "academic email domain",
			affiliation: "Department of Chemistry, Boston, MA. jdoe@chem.harvard.edu",
			want:        Result{},
		},
		{
			name:        "free-mail domain",
			affiliation: "Acme Labs, Boston, MA. jdoe@gmail.com",
			want:        Result{NonAcademic: true, Company: "Acme Labs", Reason: ReasonDomain, Match: "gmail.com"},
		},
		{
			name:        "free-mail domain without other text",
			affiliation: "jdoe@hotmail.com",
			want:        Result{NonAcademic: true, Reason: ReasonDomain, Match: "hotmail.com"},
		},
		{
			name:        "us state code is not a company suffix",
			affiliation: "Department of Physics, University of Nevada, Reno NV, USA",
			want:        Result{},
		},
		{
			name:        "university domain with commercial tld",
			affiliation: "School of Medicine, Seoul. kim@univ-seoul.com",
			want:        Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.affiliation))
		})
	}
}

func TestClassifyKeywordAnyCase(t *testing.T) {
	c := New(Default())
	for _, kw := range Default().CompanyKeywords {
		for _, variant := range []string{kw, strings.ToUpper(kw), titleCase(kw)} {
			aff := "Research Division " + variant + " Somewhere"
			assert.True(t, c.IsNonAcademic(aff), "affiliation %q should be non-academic", aff)
		}
	}
}

func TestClassifyKeywordBeatsDomain(t *testing.T) {
	c := New(Default())
	got := c.Classify("Pfizer Inc., New York, NY. jane@stanford.edu")
	assert.True(t, got.NonAcademic)
	assert.Equal(t, ReasonKeyword, got.Reason)
	assert.Equal(t, "Pfizer Inc.", got.Company)
}

func TestClassifyIdempotent(t *testing.T) {
	c := New(Default())
	inputs := []string{
		"",
		"Moderna Inc., Cambridge, MA",
		"Department of Biology, Stanford University",
		"Clinical Sciences, Basel. a.b@roche.com",
	}
	for _, in := range inputs {
		assert.Equal(t, c.Classify(in), c.Classify(in), "input %q", in)
	}
}

func TestMergeExtendsDefaults(t *testing.T) {
	base := New(Default())
	assert.False(t, base.IsNonAcademic("Acme Holdings, Springfield"))

	merged := New(Default().Merge(types.ClassifierConfig{
		CompanyKeywords: []string{"Holdings"},
	}))
	got := merged.Classify("Acme Holdings, Springfield")
	assert.True(t, got.NonAcademic)
	assert.Equal(t, "Acme Holdings", got.Company)
	assert.Equal(t, "holdings", got.Match)
}

func TestMergeAcademicDomain(t *testing.T) {
	aff := "Lab of Genetics, Tokyo. sato@riken.com"
	assert.True(t, New(Default()).IsNonAcademic(aff))

	merged := New(Default().Merge(types.ClassifierConfig{AcademicDomains: []string{"riken"}}))
	assert.False(t, merged.IsNonAcademic(aff))
}

func TestDefaultReturnsCopy(t *testing.T) {
	cfg := Default()
	cfg.CompanyKeywords[0] = "mutated"
	assert.Equal(t, "inc.", Default().CompanyKeywords[0])
}

func TestFindEmail(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"no email here", ""},
		{"Dept X. Electronic address: jdoe@novartis.com.", "jdoe@novartis.com"},
		{"a.b-c+d@sub.example.co.uk; other@x.org", "a.b-c+d@sub.example.co.uk"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FindEmail(tt.text), "FindEmail(%q)", tt.text)
	}
}
