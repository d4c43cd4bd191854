// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate turns a paper URL into a structured tailoring example
// document: prompt construction, the provider call, reply parsing, and
// deterministic rendering.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/TAI-src/retrieve-tailor-example/internal/agent"
	"github.com/TAI-src/retrieve-tailor-example/internal/classify"
	"github.com/TAI-src/retrieve-tailor-example/internal/scrape"
	"github.com/TAI-src/retrieve-tailor-example/internal/store"
	"github.com/TAI-src/retrieve-tailor-example/pkg/types"
)

// Fetcher retrieves a PDF URL as plain text. fetch.Fetcher is the
// production implementation; tests supply fakes.
type Fetcher interface {
	FetchDocument(ctx context.Context, url string, w io.Writer) (string, error)
}

// Pipeline wires the collaborators of one generation run. Scraper and
// Store are optional: without a Scraper the URL is treated as a direct PDF
// link, and without a Store ids start at 1 and nothing is cached.
type Pipeline struct {
	Agent   agent.Agent
	Fetcher Fetcher
	Scraper scrape.Scraper
	Store   *store.Store
	Config  types.GenerateConfig
}

// Result is the outcome of a generation run.
type Result struct {
	// Example is the parsed record.
	Example *types.TailoringExample

	// Document is the rendered markdown document.
	Document string

	// Article is the metadata the run worked from.
	Article types.Article

	// Reused reports that a stored document was returned without a
	// provider call.
	Reused bool
}

// Generate asks the agent to summarize the paper text into the example
// format and parses the reply. A reply that fails to parse is re-asked
// exactly once; a second malformed reply is terminal.
func Generate(ctx context.Context, a agent.Agent, article types.Article, text string, paperID int64) (*types.TailoringExample, error) {
	prompt, err := BuildPrompt(article, paperID)
	if err != nil {
		return nil, err
	}

	raw, err := a.Ask(ctx, text, prompt, agent.AskOptions{System: SystemPrompt})
	if err != nil {
		return nil, err
	}

	example, err := Parse(raw)
	if err == nil {
		return example, nil
	}

	var parseErr *types.ParseError
	if !errors.As(err, &parseErr) {
		return nil, err
	}

	// One re-ask on a malformed reply, then fail for good.
	raw, err = a.Ask(ctx, text, prompt, agent.AskOptions{System: SystemPrompt})
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// GenerateFromURL runs the full pipeline for one URL: resolve metadata,
// fetch the PDF text, gate on classification, generate, store, and write
// the output file when one is configured. Status lines go to w.
func (p *Pipeline) GenerateFromURL(ctx context.Context, rawURL string, w io.Writer) (*Result, error) {
	if p.Store != nil {
		rec, err := p.Store.GetByURL(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			fmt.Fprintf(w, "reusing stored example %d for %s\n", rec.ID, rawURL)
			return p.reuse(rec, rawURL, w)
		}
	}

	article, pdfURL := p.resolveArticle(ctx, rawURL, w)

	text, err := p.Fetcher.FetchDocument(ctx, pdfURL, w)
	if err != nil {
		return nil, err
	}

	if !p.Config.Force {
		verdict, err := classify.Classify(ctx, p.Agent, text)
		if err != nil {
			return nil, err
		}
		if !verdict.IsRealWorldApplication {
			return nil, fmt.Errorf("paper is not a real-world application (%s); rerun with force to generate anyway", verdict.Reason)
		}
		fmt.Fprintf(w, "classified as real-world application: %s\n", verdict.Reason)
	}

	var id int64 = 1
	if p.Store != nil {
		id, err = p.Store.ClaimID(ctx, rawURL)
		if err != nil {
			return nil, err
		}
	}

	fmt.Fprintf(w, "generating example %d\n", id)

	example, err := Generate(ctx, p.Agent, article, text, id)
	if err != nil {
		return nil, p.releaseClaim(ctx, id, err)
	}
	// The store owns id assignment; the model's echo of it is not trusted.
	example.ID = id

	doc, err := Render(example)
	if err != nil {
		return nil, p.releaseClaim(ctx, id, err)
	}

	if p.Store != nil {
		rec := &store.Record{ID: id, SourceURL: rawURL, Title: example.Title, Document: doc}
		if err := p.Store.Save(ctx, rec); err != nil {
			return nil, p.releaseClaim(ctx, id, err)
		}
	}

	if err := p.writeOutput(doc, w); err != nil {
		return nil, err
	}

	return &Result{Example: example, Document: doc, Article: article}, nil
}

// releaseClaim frees a claimed id after a failed run and passes err
// through, so the id's placeholder row never shadows the URL.
func (p *Pipeline) releaseClaim(ctx context.Context, id int64, err error) error {
	if p.Store == nil {
		return err
	}
	if relErr := p.Store.Release(ctx, id); relErr != nil {
		return errors.Join(err, relErr)
	}
	return err
}

// reuse rebuilds a Result from a stored record.
func (p *Pipeline) reuse(rec *store.Record, rawURL string, w io.Writer) (*Result, error) {
	example, err := Parse(rec.Document)
	if err != nil {
		return nil, err
	}
	if err := p.writeOutput(rec.Document, w); err != nil {
		return nil, err
	}
	return &Result{
		Example:  example,
		Document: rec.Document,
		Article:  types.Article{Title: rec.Title, PDFURL: rawURL},
		Reused:   true,
	}, nil
}

// resolveArticle finds metadata for the URL. A URL that is not a direct
// PDF link is treated as, or scraped as, a publications page; the first
// matching entry with a PDF wins. Failures fall back to a bare article so
// generation can still proceed from the PDF alone.
func (p *Pipeline) resolveArticle(ctx context.Context, rawURL string, w io.Writer) (types.Article, string) {
	direct := types.Article{PDFURL: rawURL, Links: map[string]string{"PDF": rawURL}}

	if p.Scraper == nil || strings.HasSuffix(strings.ToLower(rawURL), ".pdf") {
		return direct, rawURL
	}

	articles, err := p.Scraper.Scrape(ctx)
	if err != nil {
		fmt.Fprintf(w, "warning: scraping %s failed: %v\n", rawURL, err)
		return direct, rawURL
	}

	for _, a := range articles {
		if a.PDFURL == rawURL {
			return a, a.PDFURL
		}
	}
	for _, a := range articles {
		if a.PDFURL != "" {
			return a, a.PDFURL
		}
	}

	fmt.Fprintf(w, "warning: no PDF links found on %s\n", rawURL)
	return direct, rawURL
}

// writeOutput writes the document to the configured output file, if any.
func (p *Pipeline) writeOutput(doc string, w io.Writer) error {
	if p.Config.OutputFile == "" {
		return nil
	}
	if err := os.WriteFile(p.Config.OutputFile, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	fmt.Fprintf(w, "wrote %s\n", p.Config.OutputFile)
	return nil
}
