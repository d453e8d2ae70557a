// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pharma-papers/internal/affiliation"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <affiliation>...",
	Short: "Show how affiliation strings are classified",
	Long: `Classify runs the affiliation heuristics on each argument and prints the
decision, the matched rule, and the inferred company. It makes no network
requests and uses the same classifier settings as a query.`,
	Example: `  pharma-papers classify "Moderna Inc., Cambridge, MA" "Stanford University"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(viper.GetViper(), loadedSecrets)
		c := affiliation.New(affiliation.Default().Merge(cfg.Classifier))
		return writeClassification(cmd.OutOrStdout(), c, args)
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func writeClassification(w io.Writer, c *affiliation.Classifier, affiliations []string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CLASS\tRULE\tCOMPANY\tAFFILIATION")
	for _, a := range affiliations {
		r := c.Classify(a)
		class, rule := "academic", "-"
		if r.NonAcademic {
			class = "non-academic"
			rule = fmt.Sprintf("%s(%s)", r.Reason, r.Match)
		}
		company := r.Company
		if company == "" {
			company = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", class, rule, company, a)
	}
	return tw.Flush()
}
