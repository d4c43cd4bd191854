// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/TAI-src/retrieve-tailor-example/pkg/types"
)

// SaveArticles writes one YAML metadata file per article into the
// configured articles directory, named after a slug of the title. Existing
// files are overwritten. Per-file status lines go to w.
func SaveArticles(articles []types.Article, cfg types.ScrapeConfig, w io.Writer) error {
	dir := cfg.ArticlesDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating articles directory %s: %w", dir, err)
	}

	for _, a := range articles {
		path := filepath.Join(dir, titleSlug(a.Title)+".yaml")
		data, err := yaml.Marshal(a)
		if err != nil {
			return fmt.Errorf("marshaling article %q: %w", a.Title, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing article %q: %w", a.Title, err)
		}
		fmt.Fprintf(w, "saved: %s\n", filepath.Base(path))
	}
	return nil
}

// LoadArticle reads one Article metadata YAML file.
func LoadArticle(path string) (*types.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading article %s: %w", path, err)
	}
	var a types.Article
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parsing article %s: %w", path, err)
	}
	return &a, nil
}

// titleSlug lowercases a title and squashes runs of non-alphanumerics into
// single hyphens.
func titleSlug(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	s := strings.Trim(b.String(), "-")
	if s == "" {
		return "untitled"
	}
	return s
}
