// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape extracts structured Article metadata from publications
// listing pages.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/TAI-src/retrieve-tailor-example/internal/httputil"
	"github.com/TAI-src/retrieve-tailor-example/pkg/types"
)

// Scraper produces Article metadata from a remote data source.
type Scraper interface {
	Scrape(ctx context.Context) ([]types.Article, error)
}

// PublicationsScraper parses a publications listing page where each entry
// is a <dd> block: an <h4> venue, a bold span holding the title, an italic
// span holding the authors, and anchor links to the PDF and publisher.
type PublicationsScraper struct {
	client *http.Client
	url    string
	cfg    types.ScrapeConfig
}

// NewPublications builds a scraper for the listing page at pageURL.
func NewPublications(client *http.Client, pageURL string, cfg types.ScrapeConfig) *PublicationsScraper {
	return &PublicationsScraper{client: client, url: pageURL, cfg: cfg}
}

var (
	supervisorPattern = regexp.MustCompile(`\s*Supervisors?:`)
	authorSepPattern  = regexp.MustCompile(`,\s*and\s+|,\s*|\s+and\s+`)
)

// Scrape fetches the page and returns one Article per entry that carries a
// title. Entries without a recognizable title are dropped.
func (s *PublicationsScraper) Scrape(ctx context.Context) ([]types.Article, error) {
	resp, err := httputil.Get(ctx, s.client, s.url, s.cfg.HTTPConfig, "")
	if err != nil {
		return nil, &types.FetchError{URL: s.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &types.FetchError{URL: s.url, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &types.FetchError{URL: s.url, Err: fmt.Errorf("parsing HTML: %w", err)}
	}

	base, err := url.Parse(s.url)
	if err != nil {
		return nil, &types.FetchError{URL: s.url, Err: fmt.Errorf("parsing page URL: %w", err)}
	}

	var articles []types.Article
	doc.Find("dd").Each(func(_ int, dd *goquery.Selection) {
		if a, ok := parseEntry(dd, base); ok {
			articles = append(articles, a)
		}
	})
	return articles, nil
}

// parseEntry extracts one Article from a <dd> block. The page marks titles
// with an inline font-weight style and authors with a font-style style.
func parseEntry(dd *goquery.Selection, base *url.URL) (types.Article, bool) {
	venue := strings.TrimSpace(dd.Find("h4").First().Text())

	title := strings.TrimSpace(findStyledSpan(dd, "font-weight").Text())
	if title == "" {
		return types.Article{}, false
	}

	var authors []string
	if authorsText := strings.TrimSpace(findStyledSpan(dd, "font-style").Text()); authorsText != "" {
		authors = SplitAuthors(authorsText)
	}

	links := map[string]string{}
	pdfURL := ""
	dd.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		full := base.ResolveReference(ref).String()
		if label := strings.TrimSpace(a.Text()); label != "" {
			links[label] = full
		}
		if strings.HasSuffix(strings.ToLower(href), ".pdf") {
			pdfURL = full
		}
	})

	return types.Article{
		Title:   title,
		Authors: authors,
		Venue:   venue,
		PDFURL:  pdfURL,
		Links:   links,
	}, true
}

// findStyledSpan returns the first span whose style attribute mentions the
// given CSS property.
func findStyledSpan(dd *goquery.Selection, styleFragment string) *goquery.Selection {
	return dd.Find("span").FilterFunction(func(_ int, s *goquery.Selection) bool {
		style, _ := s.Attr("style")
		return strings.Contains(style, styleFragment)
	}).First()
}

// SplitAuthors breaks an author listing into individual names. Supervisor
// suffixes ("Supervisors: ...") are dropped; names are separated by commas
// and/or "and".
func SplitAuthors(text string) []string {
	text = supervisorPattern.Split(text, 2)[0]

	var authors []string
	for _, part := range authorSepPattern.Split(text, -1) {
		if name := strings.TrimSpace(part); name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}
