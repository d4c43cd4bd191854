// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/TAI-src/retrieve-tailor-example/internal/agent"
	"github.com/TAI-src/retrieve-tailor-example/internal/store"
	"github.com/TAI-src/retrieve-tailor-example/pkg/types"
)

const exampleDocument = `---
title: Optimisation for a Fleet of Healthcare Vehicles
authors:
    - Sarah Thomson
date: 2026-01-16
link: https://dl.acm.org/doi/abs/10.1145/3638530.3664137
id: 1
---

# [Optimisation for a Fleet of Healthcare Vehicles](https://dl.acm.org/doi/abs/10.1145/3638530.3664137)

## Problem Description

A healthcare provider wanted to reduce their vehicle fleet size.

## Why was tailoring needed?

Constraints on vehicle types.

## Baseline algorithm

Stochastic local search.

## Tailoring process

Added swap operation.

## What was tailored

Mutation operator.

## Main problem characteristics

Highly constrained; offline.

## References

_No response_

## Author

Sarah Thomson
`

// fixedAgent always replies with the same document.
type fixedAgent struct {
	reply string
	model string
}

func (f *fixedAgent) Ask(_ context.Context, _, _ string, _ agent.AskOptions) (string, error) {
	return f.reply, nil
}

// fixedFetcher returns canned paper text and records the URL it was asked
// to fetch.
type fixedFetcher struct {
	text   string
	err    error
	gotURL string
}

func (f *fixedFetcher) FetchDocument(_ context.Context, url string, _ io.Writer) (string, error) {
	f.gotURL = url
	return f.text, f.err
}

func newTestServer(t *testing.T, reply string) (*Server, *store.Store) {
	s, st, _ := newTestServerFetcher(t, reply)
	return s, st
}

func newTestServerFetcher(t *testing.T, reply string) (*Server, *store.Store, *fixedFetcher) {
	t.Helper()
	st, err := store.New(types.StoreConfig{DataDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	factory := func(model string) agent.Agent { return &fixedAgent{reply: reply, model: model} }
	f := &fixedFetcher{text: "paper text"}
	return New(factory, f, st, nil, types.HTTPConfig{UserAgent: "test-agent"}), st, f
}

func postGenerate(t *testing.T, s *Server, form url.Values) (*httptest.ResponseRecorder, generateResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	var resp generateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response %q: %v", rr.Body.String(), err)
	}
	return rr, resp
}

func TestHandleGenerate(t *testing.T) {
	s, _ := newTestServer(t, exampleDocument)

	rr, resp := postGenerate(t, s, url.Values{
		"url":   {"https://example.com/fleet.pdf"},
		"force": {"true"},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if !resp.Success {
		t.Fatalf("success = false: %s", resp.Error)
	}
	if !strings.Contains(resp.GeneratedContent, "## Problem Description") {
		t.Error("generated content missing sections")
	}
	if resp.Metadata == nil || resp.Metadata.Title != "Optimisation for a Fleet of Healthcare Vehicles" {
		t.Errorf("metadata = %+v", resp.Metadata)
	}
	if resp.Metadata.URL != "https://example.com/fleet.pdf" {
		t.Errorf("metadata url = %q", resp.Metadata.URL)
	}
}

// listingPage is a publications page with one entry linking a PDF.
const listingPage = `<html><body><dl>
<dd>
<h4>GECCO 2024</h4>
<span style="font-weight: bold;">Optimisation for a Fleet of Healthcare Vehicles</span><br>
<span style="font-style: italic;">Sarah Thomson</span><br>
<a href="fleet.pdf">PDF</a> <a href="https://dl.acm.org/doi/abs/10.1145/3638530.3664137">DOI</a>
</dd>
</dl></body></html>`

func TestHandleGenerate_PublicationsPageURL(t *testing.T) {
	// A submitted URL that is not a direct PDF link must be scraped as a
	// publications page, with generation running against the PDF it links.
	pages := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, listingPage)
	}))
	defer pages.Close()

	s, _, f := newTestServerFetcher(t, exampleDocument)

	rr, resp := postGenerate(t, s, url.Values{
		"url":   {pages.URL + "/pubs.html"},
		"force": {"true"},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if !resp.Success {
		t.Fatalf("success = false: %s", resp.Error)
	}
	if !strings.HasSuffix(f.gotURL, "/fleet.pdf") {
		t.Errorf("fetched %q, want the PDF link from the listing", f.gotURL)
	}
	if resp.Metadata == nil || resp.Metadata.Venue != "GECCO 2024" {
		t.Errorf("metadata = %+v, want the scraped venue", resp.Metadata)
	}
}

func TestHandleGenerate_StoresExample(t *testing.T) {
	s, st := newTestServer(t, exampleDocument)

	_, resp := postGenerate(t, s, url.Values{
		"url":   {"https://example.com/fleet.pdf"},
		"force": {"true"},
	})
	if !resp.Success {
		t.Fatalf("generate failed: %s", resp.Error)
	}

	rec, err := st.GetByURL(context.Background(), "https://example.com/fleet.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil {
		t.Fatal("generated example not stored")
	}
}

func TestHandleGenerate_MissingURL(t *testing.T) {
	s, _ := newTestServer(t, exampleDocument)

	rr, resp := postGenerate(t, s, url.Values{"force": {"true"}})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rr.Code)
	}
	if resp.Success {
		t.Error("success reported without a url")
	}
}

func TestHandleGenerate_MalformedReply(t *testing.T) {
	s, _ := newTestServer(t, "not a document at all")

	rr, resp := postGenerate(t, s, url.Values{
		"url":   {"https://example.com/x.pdf"},
		"force": {"true"},
	})
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rr.Code)
	}
	if resp.Success || resp.Error == "" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestHandleGenerate_MethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t, exampleDocument)

	req := httptest.NewRequest(http.MethodGet, "/generate", nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d", rr.Code)
	}
}

func TestHandleHome(t *testing.T) {
	s, _ := newTestServer(t, exampleDocument)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `name="url"`) {
		t.Error("home page missing the url form field")
	}
	if !strings.Contains(body, agent.DefaultModel) {
		t.Error("home page missing the default model")
	}
}

func TestHandleExamples(t *testing.T) {
	s, st := newTestServer(t, exampleDocument)
	ctx := context.Background()

	err := st.Save(ctx, &store.Record{
		SourceURL: "https://example.com/a.pdf",
		Title:     "Stored Example",
		Document:  exampleDocument,
	})
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/examples", nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Stored Example") {
		t.Error("examples page missing the stored example")
	}
}

func TestHandleExampleByID(t *testing.T) {
	s, st := newTestServer(t, exampleDocument)
	ctx := context.Background()

	rec := &store.Record{
		SourceURL: "https://example.com/a.pdf",
		Title:     "Stored Example",
		Document:  exampleDocument,
	}
	if err := st.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/examples/1", nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "<h2>Problem Description</h2>") {
		t.Error("document not rendered to HTML")
	}
	if strings.Contains(body, "title: Optimisation") {
		t.Error("frontmatter leaked into the rendered page")
	}
}

func TestHandleExampleByID_NotFound(t *testing.T) {
	s, _ := newTestServer(t, exampleDocument)

	req := httptest.NewRequest(http.MethodGet, "/examples/99", nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d", rr.Code)
	}
}

func TestStripFrontmatter(t *testing.T) {
	got := stripFrontmatter("---\ntitle: x\n---\n\n# Hello\n")
	if got != "# Hello\n" {
		t.Errorf("got %q", got)
	}

	plain := "# No frontmatter\n"
	if stripFrontmatter(plain) != plain {
		t.Error("document without frontmatter modified")
	}
}
