package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TAI-src/retrieve-tailor-example/internal/agent"
	"github.com/TAI-src/retrieve-tailor-example/internal/fetch"
	"github.com/TAI-src/retrieve-tailor-example/internal/secrets"
	"github.com/TAI-src/retrieve-tailor-example/internal/store"
	"github.com/TAI-src/retrieve-tailor-example/internal/web"
	"github.com/TAI-src/retrieve-tailor-example/pkg/types"
)

const defaultPort = 1234

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web front-end",
	Long: `Serve starts a local HTTP server with a form for generating tailoring
examples and pages listing previously generated ones. The server shares the
example store with the CLI, so documents generated on either surface are
visible on both.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "TCP port to listen on (default 1234)")
	serveCmd.Flags().String("data-dir", "", "base directory for downloads and the example store (default \"data\")")
	serveCmd.Flags().Duration("timeout", 0, "HTTP request timeout for outbound fetches (default 60s)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	port, _ := cmd.Flags().GetInt("port")
	dir, _ := cmd.Flags().GetString("data-dir")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if port == 0 {
		port = viper.GetInt("port")
	}
	if port == 0 {
		port = defaultPort
	}
	cfg := types.WebConfig{Port: port, DataDir: dataDir(dir)}

	// Fail on a missing key now rather than on the first form submit.
	key, err := secrets.ResolveAnthropicKey(loadedSecrets)
	if err != nil {
		return err
	}

	client := newHTTPClient(timeout)
	httpCfg := types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent}

	extractor, err := fetch.NewPdftotextExtractor()
	if err != nil {
		return err
	}
	fetcher := fetch.New(client, extractor, types.FetchConfig{
		HTTPConfig: httpCfg,
		DataDir:    cfg.DataDir,
	})

	st, err := store.New(types.StoreConfig{DataDir: cfg.DataDir})
	if err != nil {
		return err
	}
	defer st.Close()

	factory := func(model string) agent.Agent {
		return agent.NewAnthropic(types.AIConfig{Model: model, APIKey: key}, client)
	}

	s := web.New(factory, fetcher, st, client, httpCfg)

	addr := fmt.Sprintf(":%d", cfg.Port)
	fmt.Fprintf(os.Stderr, "Serving on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, s.Router())
}
