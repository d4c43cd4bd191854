// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"fmt"
	"net/http"

	"github.com/TAI-src/retrieve-tailor-example/pkg/types"
)

// NewClient builds an http.Client with the configured request timeout.
// The timeout bounds the entire request, including body reads, so both
// the PDF download and the page fetch fail rather than hang.
func NewClient(cfg types.HTTPConfig) *http.Client {
	return &http.Client{
		Timeout: cfg.Timeout,
	}
}

// Get issues a GET for url with the configured User-Agent and an optional
// Accept header. The caller owns the response body.
func Get(ctx context.Context, client *http.Client, url string, cfg types.HTTPConfig, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	return resp, nil
}
