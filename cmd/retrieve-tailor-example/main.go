// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the retrieve-tailor-example CLI.
// It turns academic papers into structured tailoring example documents:
// fetch a PDF, extract its text, summarize it through the Anthropic API,
// and render the parsed reply as markdown.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TAI-src/retrieve-tailor-example/internal/agent"
	"github.com/TAI-src/retrieve-tailor-example/internal/httputil"
	"github.com/TAI-src/retrieve-tailor-example/internal/secrets"
	"github.com/TAI-src/retrieve-tailor-example/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "retrieve-tailor-example/0.1"
	defaultDataDir   = "data"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the retrieve-tailor-example CLI.
var rootCmd = &cobra.Command{
	Use:   "retrieve-tailor-example",
	Short: "Generate tailoring example documents from academic papers",
	Long: `retrieve-tailor-example downloads an academic paper, extracts its text,
and asks Claude to summarize it into a structured tailoring example: how a
metaheuristic was adapted to a real-world problem, section by section.

Each pipeline stage is a subcommand: scrape finds papers on a publications
page, classify checks whether a paper describes a real-world application,
generate produces the example document, and serve runs the web front-end.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err == nil {
			fmt.Fprintln(os.Stderr, "Loaded environment from .env")
		}

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./retrieve-tailor-example.yaml or ~/.config/retrieve-tailor-example/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("retrieve-tailor-example")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "retrieve-tailor-example"))
		}
	}

	viper.SetEnvPrefix("RETRIEVE_TAILOR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newHTTPClient builds the shared HTTP client for a subcommand.
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return httputil.NewClient(types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent})
}

// buildAgent resolves the API key and constructs an Anthropic agent for
// model. An empty model falls back to the config file, then the package
// default. Key resolution fails before any network traffic.
func buildAgent(model string, client *http.Client) (agent.Agent, error) {
	key, err := secrets.ResolveAnthropicKey(loadedSecrets)
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = viper.GetString("model")
	}
	return agent.NewAnthropic(types.AIConfig{Model: model, APIKey: key}, client), nil
}

// dataDir resolves the data directory from a flag value, the config
// file, or the default, in that order.
func dataDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := viper.GetString("data_dir"); v != "" {
		return v
	}
	return defaultDataDir
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
