// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pharma-papers/internal/affiliation"
	"github.com/pdiddy/pharma-papers/internal/extract"
	"github.com/pdiddy/pharma-papers/internal/output"
	"github.com/pdiddy/pharma-papers/internal/pipeline"
	"github.com/pdiddy/pharma-papers/internal/pubmed"
	"github.com/pdiddy/pharma-papers/internal/store"
)

// runQuery is the root command: search, filter, optionally log the run,
// then write the results.
func runQuery(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	query := strings.Join(args, " ")

	cfg := loadConfig(viper.GetViper(), loadedSecrets)
	if _, err := output.ParseFormat(string(cfg.Output.Format)); err != nil {
		return err
	}
	log := debugWriter(cmd)

	client := pubmed.NewClient(nil, cfg.PubMed, log)
	classifier := affiliation.New(affiliation.Default().Merge(cfg.Classifier))
	q := pipeline.Query{Text: query, MaxResults: client.Config().MaxResults}

	res, err := pipeline.Run(cmd.Context(), client, extract.New(classifier), q, log)
	if err != nil {
		return err
	}

	if cfg.DBPath != "" {
		db, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		id, err := db.SaveRun(cmd.Context(), res)
		if err != nil {
			return fmt.Errorf("saving run: %w", err)
		}
		fmt.Fprintf(log, "saved run %d to %s\n", id, cfg.DBPath)
	}

	if cfg.Output.Path == "" {
		return output.Write(cmd.OutOrStdout(), res, cfg.Output)
	}
	if err := output.WriteFile(cfg.Output.Path, res, cfg.Output); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Results saved to %s\n", cfg.Output.Path)
	return nil
}
