// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// WriteTable writes papers as a fixed-width table followed by a count.
func WriteTable(w io.Writer, papers []types.FilteredPaper) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "No papers found.")
		return
	}

	fmt.Fprintf(w, "%-9s  %-50s  %-4s  %-24s  %-24s  %s\n",
		"PMID", "Title", "Year", "Authors", "Companies", "Email")
	fmt.Fprintln(w, strings.Repeat("-", 130))

	for _, p := range papers {
		fmt.Fprintf(w, "%-9s  %-50s  %-4s  %-24s  %-24s  %s\n",
			p.PMID,
			truncate(p.Title, 50),
			p.PublicationYear,
			truncate(summarize(p.NonAcademicAuthors), 24),
			truncate(summarize(p.Companies), 24),
			p.CorrespondingEmail)
	}

	fmt.Fprintf(w, "\n%d papers\n", len(papers))
}

// summarize shows the first value and how many more follow.
func summarize(values []string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return fmt.Sprintf("%s +%d", values[0], len(values)-1)
	}
}

// truncate shortens s to max runes, ending with "...".
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-3]) + "..."
}
