// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// WriteCSV writes the header and one row per paper. Multi-valued cells are
// joined with sep, or DefaultSeparator when sep is empty. The header is
// written even when papers is empty.
func WriteCSV(w io.Writer, papers []types.FilteredPaper, sep string) error {
	if sep == "" {
		sep = DefaultSeparator
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, p := range papers {
		if err := cw.Write(row(p, sep)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func row(p types.FilteredPaper, sep string) []string {
	return []string{
		p.PMID,
		p.Title,
		p.PublicationYear,
		strings.Join(p.NonAcademicAuthors, sep),
		strings.Join(p.Companies, sep),
		p.CorrespondingEmail,
	}
}
