package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TAI-src/retrieve-tailor-example/internal/scrape"
	"github.com/TAI-src/retrieve-tailor-example/pkg/types"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape URL",
	Short: "Scrape article metadata from a publications page",
	Long: `Scrape parses the publications listing page at URL and extracts one
article record per entry: title, authors, venue, and links. Entries with a
PDF link record it separately so generate can download the paper. Records
are written as YAML files, one per article.`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().StringP("output", "o", "", "directory for article YAML files (default <data-dir>/articles)")
	scrapeCmd.Flags().String("data-dir", "", "base directory for pipeline state (default \"data\")")
	scrapeCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	dir, _ := cmd.Flags().GetString("data-dir")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if output == "" {
		output = dataDir(dir) + "/articles"
	}

	client := newHTTPClient(timeout)
	cfg := types.ScrapeConfig{
		HTTPConfig:  types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent},
		ArticlesDir: output,
	}
	scraper := scrape.NewPublications(client, args[0], cfg)

	articles, err := scraper.Scrape(cmd.Context())
	if err != nil {
		return err
	}
	if len(articles) == 0 {
		return fmt.Errorf("no articles found on %s", args[0])
	}

	if err := scrape.SaveArticles(articles, cfg, os.Stdout); err != nil {
		return err
	}
	fmt.Printf("scraped %d article(s) to %s\n", len(articles), output)
	return nil
}
