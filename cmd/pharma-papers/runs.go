// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pharma-papers/internal/output"
	"github.com/pdiddy/pharma-papers/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List runs logged to the SQLite database",
	Long: `Runs lists the queries recorded with --db, newest first, with their
match, fetch, and retained counts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openRunStore()
		if err != nil {
			return err
		}
		defer db.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := db.Runs(cmd.Context(), limit)
		if err != nil {
			return err
		}
		return writeRuns(cmd.OutOrStdout(), runs)
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Write the papers of a logged run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q", args[0])
		}

		db, err := openRunStore()
		if err != nil {
			return err
		}
		defer db.Close()

		res, err := db.Load(cmd.Context(), id)
		if err != nil {
			return err
		}
		cfg := loadConfig(viper.GetViper(), loadedSecrets)
		format, _ := cmd.Flags().GetString("format")
		if cfg.Output.Format, err = output.ParseFormat(format); err != nil {
			return err
		}
		return output.Write(cmd.OutOrStdout(), res, cfg.Output)
	},
}

func init() {
	runsCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	runsShowCmd.Flags().String("format", "csv", "output format: csv, json, yaml, or table")

	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

func openRunStore() (*store.Store, error) {
	path := viper.GetString("db_path")
	if path == "" {
		return nil, errors.New("no database configured: pass --db or set db_path")
	}
	return store.Open(path)
}

func writeRuns(w io.Writer, runs []store.Run) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tFOUND\tFETCHED\tRETAINED\tQUERY")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%s\n",
			r.ID, r.CreatedAt.Local().Format(time.DateTime), r.Found, r.Fetched, r.Retained, r.Query)
	}
	return tw.Flush()
}
