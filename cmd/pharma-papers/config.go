// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/pharma-papers/internal/output"
	"github.com/pdiddy/pharma-papers/internal/secrets"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

const defaultTimeout = 30 * time.Second

// loadConfig assembles a run configuration from v. Flags bound to v win
// over the environment and the config file; NCBI credentials fall back to
// the secrets directory.
func loadConfig(v *viper.Viper, s secrets.Secrets) types.Config {
	timeout := v.GetDuration("pubmed.timeout")
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	cfg := types.Config{
		PubMed: types.PubMedConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: "pharma-papers/" + version,
			},
			BaseURL:    v.GetString("pubmed.base_url"),
			Tool:       v.GetString("pubmed.tool"),
			Email:      s.Or(secrets.NCBIEmail, v.GetString("pubmed.email")),
			APIKey:     s.Or(secrets.NCBIAPIKey, v.GetString("pubmed.api_key")),
			MaxResults: v.GetInt("pubmed.max_results"),
			BatchSize:  v.GetInt("pubmed.batch_size"),
			BatchDelay: v.GetDuration("pubmed.batch_delay"),
			MaxRetries: v.GetInt("pubmed.max_retries"),
		},
		Classifier: types.ClassifierConfig{
			CompanyKeywords: v.GetStringSlice("classifier.company_keywords"),
			CompanySuffixes: v.GetStringSlice("classifier.company_suffixes"),
			AcademicDomains: v.GetStringSlice("classifier.academic_domains"),
			FreemailDomains: v.GetStringSlice("classifier.freemail_domains"),
		},
		Output: types.OutputConfig{
			Format:    types.OutputFormat(v.GetString("output.format")),
			Path:      v.GetString("output.path"),
			Separator: v.GetString("output.separator"),
		},
		DBPath: v.GetString("db_path"),
	}
	if cfg.Output.Separator == "" {
		cfg.Output.Separator = output.DefaultSeparator
	}
	return cfg
}
