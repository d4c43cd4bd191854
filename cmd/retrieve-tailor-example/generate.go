package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TAI-src/retrieve-tailor-example/internal/fetch"
	"github.com/TAI-src/retrieve-tailor-example/internal/generate"
	"github.com/TAI-src/retrieve-tailor-example/internal/scrape"
	"github.com/TAI-src/retrieve-tailor-example/internal/store"
	"github.com/TAI-src/retrieve-tailor-example/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate URL",
	Short: "Generate a tailoring example document from a paper URL",
	Long: `Generate downloads the paper at URL (a direct PDF link or a publications
page), extracts its text, and asks Claude to summarize it into a structured
tailoring example document. Papers that do not describe a real-world
application are rejected unless --force is set. A URL that was generated
before is answered from the example store without calling the API again.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringP("output", "o", "", "write the generated document to this file")
	generateCmd.Flags().String("model", "", "AI model identifier for generation")
	generateCmd.Flags().Bool("force", false, "generate even if the paper is not classified as a real-world application")
	generateCmd.Flags().String("data-dir", "", "base directory for downloads and the example store (default \"data\")")
	generateCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	output, _ := cmd.Flags().GetString("output")
	model, _ := cmd.Flags().GetString("model")
	force, _ := cmd.Flags().GetBool("force")
	dir, _ := cmd.Flags().GetString("data-dir")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	dir = dataDir(dir)

	client := newHTTPClient(timeout)

	a, err := buildAgent(model, client)
	if err != nil {
		return err
	}

	extractor, err := fetch.NewPdftotextExtractor()
	if err != nil {
		return err
	}
	fetcher := fetch.New(client, extractor, types.FetchConfig{
		HTTPConfig: types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent},
		DataDir:    dir,
	})

	st, err := store.New(types.StoreConfig{DataDir: dir})
	if err != nil {
		return err
	}
	defer st.Close()

	p := &generate.Pipeline{
		Agent:   a,
		Fetcher: fetcher,
		Store:   st,
		Config: types.GenerateConfig{
			AIConfig:   types.AIConfig{Model: model},
			DataDir:    dir,
			OutputFile: output,
			Force:      force,
		},
	}
	// A non-PDF URL is treated as a publications page to scrape for links.
	if !strings.HasSuffix(strings.ToLower(rawURL), ".pdf") {
		p.Scraper = scrape.NewPublications(client, rawURL, types.ScrapeConfig{
			HTTPConfig: types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent},
		})
	}

	res, err := p.GenerateFromURL(cmd.Context(), rawURL, os.Stdout)
	if err != nil {
		return err
	}

	if output == "" {
		fmt.Println(res.Document)
	}
	return nil
}
