package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pharma-papers/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// PubMedConfig holds settings for the E-utilities query runner.
type PubMedConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the E-utilities root; empty uses NCBI's public endpoint.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Tool identifies this program to NCBI (the "tool" parameter).
	Tool string `json:"tool" yaml:"tool"`

	// Email is the contact address NCBI asks clients to send.
	Email string `json:"email" yaml:"email"`

	// APIKey is an optional NCBI API key for the higher rate limit.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxResults caps the number of PMIDs requested from esearch (default 100).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// BatchSize is the number of PMIDs per efetch request (default 100).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// BatchDelay is the pause between consecutive efetch requests
	// (default 500ms; negative disables the pause).
	BatchDelay time.Duration `json:"batch_delay" yaml:"batch_delay"`

	// MaxRetries is the number of retries on HTTP 429/503 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ClassifierConfig lists extra heuristic terms merged into the defaults.
type ClassifierConfig struct {
	CompanyKeywords []string `json:"company_keywords,omitempty" yaml:"company_keywords,omitempty"`
	CompanySuffixes []string `json:"company_suffixes,omitempty" yaml:"company_suffixes,omitempty"`
	AcademicDomains []string `json:"academic_domains,omitempty" yaml:"academic_domains,omitempty"`
	FreemailDomains []string `json:"freemail_domains,omitempty" yaml:"freemail_domains,omitempty"`
}

// OutputFormat selects the result rendering.
type OutputFormat string

const (
	OutputCSV   OutputFormat = "csv"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
	OutputTable OutputFormat = "table"
)

// OutputConfig holds settings for the output writer.
type OutputConfig struct {
	// Format selects csv, json, yaml, or table.
	Format OutputFormat `json:"format" yaml:"format"`

	// Path is the destination file; empty means stdout.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Separator joins multi-valued CSV cells (default "; ").
	Separator string `json:"separator" yaml:"separator"`
}

// Config groups all settings for one run.
type Config struct {
	PubMed     PubMedConfig     `json:"pubmed" yaml:"pubmed"`
	Classifier ClassifierConfig `json:"classifier" yaml:"classifier"`
	Output     OutputConfig     `json:"output" yaml:"output"`

	// DBPath is the optional SQLite run store.
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}
