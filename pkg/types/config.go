package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "retrieve-tailor-example/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds shared settings for stages that call the Anthropic API.
type AIConfig struct {
	// Model is the model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens caps the generated response length (default 4096).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// FetchConfig holds settings for the document fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// DataDir is the base directory for downloads (contains papers/raw/).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// ScrapeConfig holds settings for the publications scraper.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline"`

	// ArticlesDir is the directory where scraped Article metadata is written.
	ArticlesDir string `json:"articles_dir" yaml:"articles_dir"`
}

// GenerateConfig holds settings for example generation.
type GenerateConfig struct {
	AIConfig `yaml:",inline"`

	// DataDir is the base directory for pipeline state (papers/, index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// OutputFile is the path of the generated markdown document.
	OutputFile string `json:"output_file" yaml:"output_file"`

	// Force generates an example even when the paper is not classified
	// as a real-world application.
	Force bool `json:"force" yaml:"force"`
}

// StoreConfig holds settings for the example store.
type StoreConfig struct {
	// DataDir is the base directory for the store (contains index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of listed examples (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// WebConfig holds settings for the web front-end.
type WebConfig struct {
	// Port is the local TCP port the server listens on (default 1234).
	Port int `json:"port" yaml:"port"`

	// DataDir is the base directory for pipeline state shared with the CLI.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}
