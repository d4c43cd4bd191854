package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TAI-src/retrieve-tailor-example/internal/classify"
	"github.com/TAI-src/retrieve-tailor-example/internal/fetch"
	"github.com/TAI-src/retrieve-tailor-example/pkg/types"
)

var classifyCmd = &cobra.Command{
	Use:   "classify URL",
	Short: "Check whether a paper describes a real-world application",
	Long: `Classify downloads the paper at URL, extracts its text, and asks Claude
whether the paper applies a metaheuristic to a real-world problem. The
verdict and its reason are printed; a negative verdict exits non-zero.
Papers too short to judge are treated as non-applications.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().String("model", "", "AI model identifier for classification")
	classifyCmd.Flags().String("data-dir", "", "base directory for downloads (default \"data\")")
	classifyCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	model, _ := cmd.Flags().GetString("model")
	dir, _ := cmd.Flags().GetString("data-dir")
	timeout, _ := cmd.Flags().GetDuration("timeout")

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
		DataDir:    dataDir(dir),
	})

	text, err := fetcher.FetchDocument(cmd.Context(), args[0], os.Stdout)
	if err != nil {
		return err
	}

	verdict, err := classify.Classify(cmd.Context(), a, text)
	if err != nil {
		return err
	}

	fmt.Printf("real-world application: %v\nreason: %s\n", verdict.IsRealWorldApplication, verdict.Reason)
	if !verdict.IsRealWorldApplication {
		return fmt.Errorf("paper is not a real-world application")
	}
	return nil
}
