// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads PDFs and extracts their plain text.
package fetch

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/TAI-src/retrieve-tailor-example/internal/httputil"
	"github.com/TAI-src/retrieve-tailor-example/pkg/types"
)

const rawDir = "papers/raw"

// pdfMagic is the byte signature every PDF starts with.
var pdfMagic = []byte("%PDF-")

// Fetcher retrieves a PDF from a URL and turns it into plain text.
type Fetcher struct {
	client    *http.Client
	extractor TextExtractor
	cfg       types.FetchConfig
}

// New builds a Fetcher around an HTTP client and a text extractor.
func New(client *http.Client, extractor TextExtractor, cfg types.FetchConfig) *Fetcher {
	return &Fetcher{client: client, extractor: extractor, cfg: cfg}
}

// FetchDocument downloads the PDF at rawURL and returns its extracted plain
// text. Per-step status lines go to w. Unreachable resources, non-PDF
// responses, and unreadable PDFs all surface as a FetchError.
func (f *Fetcher) FetchDocument(ctx context.Context, rawURL string, w io.Writer) (string, error) {
	pdfPath, skipped, err := f.DownloadPDF(ctx, rawURL, w)
	if err != nil {
		return "", err
	}
	if skipped {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", filepath.Base(pdfPath))
	}

	text, err := f.extractor.ExtractText(pdfPath)
	if err != nil {
		return "", &types.FetchError{URL: rawURL, Err: fmt.Errorf("extracting text: %w", err)}
	}
	if strings.TrimSpace(text) == "" {
		return "", &types.FetchError{URL: rawURL, Err: fmt.Errorf("PDF produced no text")}
	}
	return text, nil
}

// DownloadPDF fetches rawURL into dataDir/papers/raw/, validating that the
// response is a PDF. If the file already exists on disk the download is
// skipped. The skipped return value reports whether that happened.
func (f *Fetcher) DownloadPDF(ctx context.Context, rawURL string, w io.Writer) (pdfPath string, skipped bool, err error) {
	slug, err := Slug(rawURL)
	if err != nil {
		return "", false, &types.FetchError{URL: rawURL, Err: err}
	}

	dir := filepath.Join(f.cfg.DataDir, rawDir)
	pdfPath = filepath.Join(dir, slug+".pdf")

	if _, err := os.Stat(pdfPath); err == nil {
		return pdfPath, true, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	fmt.Fprintf(w, "downloading: %s\n", slug)

	if err := f.downloadFile(ctx, rawURL, pdfPath); err != nil {
		return "", false, &types.FetchError{URL: rawURL, Err: err}
	}
	return pdfPath, false, nil
}

// downloadFile fetches url to destPath using a temporary file, renamed into
// place only after the body is fully written and validated.
func (f *Fetcher) downloadFile(ctx context.Context, rawURL, destPath string) error {
	resp, err := httputil.Get(ctx, f.client, rawURL, f.cfg.HTTPConfig, "application/pdf")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
	}

	// Validate the magic bytes before committing anything to disk.
	head := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(resp.Body, head); err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if !bytes.Equal(head, pdfMagic) {
		return fmt.Errorf("response is not a PDF (missing %%PDF- signature)")
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, io.MultiReader(bytes.NewReader(head), resp.Body))
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Slug derives a stable filename stem for a URL: the sanitized basename of
// the URL path plus a short hash of the full URL, so distinct URLs with the
// same basename do not collide.
func Slug(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}

	base := strings.TrimSuffix(path.Base(u.Path), ".pdf")
	base = sanitize(base)
	if base == "" || base == "." || base == "/" {
		base = "paper"
	}

	h := sha256.Sum256([]byte(rawURL))
	return fmt.Sprintf("%s-%x", base, h[:6]), nil
}

// sanitize keeps letters, digits, hyphens, and underscores; everything else
// becomes a hyphen.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
