// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pharma-papers CLI. The root command
// runs a PubMed query and writes the papers that have at least one author
// affiliated with a pharmaceutical or biotech company.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/pharma-papers/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the pharma-papers CLI.
var rootCmd = &cobra.Command{
	Use:   "pharma-papers [query]",
	Short: "Find PubMed papers with pharmaceutical or biotech authors",
	Long: `pharma-papers searches PubMed with the full PubMed query syntax, fetches
each matching record, and keeps the papers where at least one author lists a
non-academic (company) affiliation.

Results are written as CSV by default, to stdout or to the file given with
--file. Runs can also be logged to a SQLite database with --db and listed
later with the runs subcommand.`,
	Example: `  pharma-papers "mRNA vaccine[Title] AND 2023[pdat]"
  pharma-papers -m 50 -f results.csv "CRISPR therapy"
  pharma-papers --format table "monoclonal antibody"`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/", cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(debugWriter(cmd), "Loaded secrets: %v\n", s.Keys())
		}
		return nil
	},
	RunE: runQuery,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./pharma-papers.yaml or ~/.config/pharma-papers/pharma-papers.yaml)")
	pf.BoolP("debug", "d", false, "print progress and debug information to stderr")
	pf.String("db", "", "SQLite database that logs every run (disabled when empty)")

	f := rootCmd.Flags()
	f.StringP("file", "f", "", "write results to this file instead of stdout")
	f.IntP("max-results", "m", 100, "maximum number of PubMed results to fetch")
	f.String("format", "csv", "output format: csv, json, yaml, or table")
	f.String("email", "", "contact email sent to NCBI (or .secrets/ncbi-email)")
	f.String("api-key", "", "NCBI API key (or .secrets/ncbi-api-key)")
	f.Int("batch-size", 100, "PMIDs per efetch request")
	f.Duration("timeout", defaultTimeout, "HTTP request timeout")

	bindFlag("db_path", pf.Lookup("db"))
	bindFlag("output.path", f.Lookup("file"))
	bindFlag("output.format", f.Lookup("format"))
	bindFlag("pubmed.max_results", f.Lookup("max-results"))
	bindFlag("pubmed.email", f.Lookup("email"))
	bindFlag("pubmed.api_key", f.Lookup("api-key"))
	bindFlag("pubmed.batch_size", f.Lookup("batch-size"))
	bindFlag("pubmed.timeout", f.Lookup("timeout"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pharma-papers")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pharma-papers"))
		}
	}

	viper.SetEnvPrefix("PHARMA_PAPERS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		debug, _ := rootCmd.PersistentFlags().GetBool("debug")
		if debug {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "warning: could not read config file %s: %v\n", cfgFile, err)
	}
}

func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag for %s: %v", key, err))
	}
}

// debugWriter returns stderr when --debug is set and io.Discard otherwise.
func debugWriter(cmd *cobra.Command) io.Writer {
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		return cmd.ErrOrStderr()
	}
	return io.Discard
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
