// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/pharma-papers/internal/affiliation"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

// ParseArticleSet decodes an efetch PubmedArticleSet document. An empty
// document yields no records. Articles without a PMID and authors without
// any name are skipped.
func ParseArticleSet(r io.Reader) ([]types.RawRecord, error) {
	d := xml.NewDecoder(r)
	d.Entity = xml.HTMLEntity

	var set articleSet
	if err := d.Decode(&set); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing efetch response: %w", err)
	}

	records := make([]types.RawRecord, 0, len(set.Articles))
	for _, a := range set.Articles {
		if rec, ok := a.toRecord(); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (a pubmedArticle) toRecord() (types.RawRecord, bool) {
	mc := a.Citation
	pmid := strings.TrimSpace(mc.PMID)
	if pmid == "" {
		return types.RawRecord{}, false
	}

	pd := mc.Article.Journal.Issue.PubDate
	rec := types.RawRecord{
		PMID:    pmid,
		Title:   mc.Article.Title.String(),
		Journal: strings.TrimSpace(mc.Article.Journal.Title),
		PubDate: types.PubDate{
			Year:        strings.TrimSpace(pd.Year),
			Month:       strings.TrimSpace(pd.Month),
			Day:         strings.TrimSpace(pd.Day),
			MedlineDate: strings.TrimSpace(pd.MedlineDate),
		},
	}

	for _, au := range mc.Article.Authors {
		if author, ok := au.toAuthor(); ok {
			rec.Authors = append(rec.Authors, author)
		}
	}
	return rec, true
}

func (au xmlAuthor) toAuthor() (types.Author, bool) {
	name := au.name()
	if name == "" {
		return types.Author{}, false
	}

	var affs []string
	for _, info := range au.AffiliationInfo {
		if s := info.Affiliation.String(); s != "" {
			affs = append(affs, s)
		}
	}
	if len(affs) == 0 {
		if s := au.Affiliation.String(); s != "" {
			affs = append(affs, s)
		}
	}

	author := types.Author{Name: name, Affiliations: affs}
	for _, id := range au.Identifiers {
		if strings.EqualFold(id.Source, "email") {
			if v := strings.TrimSpace(id.Value); v != "" {
				author.Email = v
				break
			}
		}
	}
	if author.Email == "" {
		for _, aff := range affs {
			if e := affiliation.FindEmail(aff); e != "" {
				author.Email = e
				break
			}
		}
	}
	return author, true
}

// name is "ForeName LastName", then "Initials LastName", then LastName, then
// the collective name.
func (au xmlAuthor) name() string {
	last := strings.TrimSpace(au.LastName)
	if last != "" {
		if fore := strings.TrimSpace(au.ForeName); fore != "" {
			return fore + " " + last
		}
		if ini := strings.TrimSpace(au.Initials); ini != "" {
			return ini + " " + last
		}
		return last
	}
	return au.CollectiveName.String()
}

// text collects all character data under an element, flattening inline
// markup such as <i> and <sup>, and collapses whitespace.
type text string

func (t *text) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch v := tok.(type) {
		case xml.CharData:
			b.Write(v)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				*t = text(strings.Join(strings.Fields(b.String()), " "))
				return nil
			}
			depth--
		}
	}
}

func (t text) String() string { return string(t) }

// PubMed efetch XML structures.
type articleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID    string     `xml:"PMID"`
	Article xmlArticle `xml:"Article"`
}

type xmlArticle struct {
	Journal xmlJournal  `xml:"Journal"`
	Title   text        `xml:"ArticleTitle"`
	Authors []xmlAuthor `xml:"AuthorList>Author"`
}

type xmlJournal struct {
	Title string `xml:"Title"`
	Issue struct {
		PubDate xmlPubDate `xml:"PubDate"`
	} `xml:"JournalIssue"`
}

type xmlPubDate struct {
	Year        string `xml:"Year"`
	Month       string `xml:"Month"`
	Day         string `xml:"Day"`
	MedlineDate string `xml:"MedlineDate"`
}

type xmlAuthor struct {
	LastName        string               `xml:"LastName"`
	ForeName        string               `xml:"ForeName"`
	Initials        string               `xml:"Initials"`
	CollectiveName  text                 `xml:"CollectiveName"`
	AffiliationInfo []xmlAffiliationInfo `xml:"AffiliationInfo"`
	Affiliation     text                 `xml:"Affiliation"`
	Identifiers     []xmlIdentifier      `xml:"Identifier"`
}

type xmlAffiliationInfo struct {
	Affiliation text `xml:"Affiliation"`
}

type xmlIdentifier struct {
	Source string `xml:"Source,attr"`
	Value  string `xml:",chardata"`
}
