// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
)

const binPdftotext = "pdftotext"

// TextExtractor turns a PDF file into plain text. The production
// implementation shells out to pdftotext; tests supply fakes.
type TextExtractor interface {
	// ExtractText reads the PDF at pdfPath and returns its text with no
	// layout or formatting preserved.
	ExtractText(pdfPath string) (string, error)
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunPiped(name string, args []string, stdout io.Writer) error
}

// PdftotextExtractor extracts text by running the pdftotext binary with
// stdout capture.
type PdftotextExtractor struct {
	exec executor
}

// NewPdftotextExtractor verifies that pdftotext is on PATH and returns an
// extractor using it.
func NewPdftotextExtractor() (*PdftotextExtractor, error) {
	return newPdftotextExtractor(defaultExec)
}

func newPdftotextExtractor(e executor) (*PdftotextExtractor, error) {
	if _, err := e.LookPath(binPdftotext); err != nil {
		return nil, fmt.Errorf("%s not found on PATH: %w", binPdftotext, err)
	}
	return &PdftotextExtractor{exec: e}, nil
}

// ExtractText runs pdftotext on pdfPath, writing text to stdout.
func (p *PdftotextExtractor) ExtractText(pdfPath string) (string, error) {
	var out bytes.Buffer
	args := []string{"-q", pdfPath, "-"}
	if err := p.exec.RunPiped(binPdftotext, args, &out); err != nil {
		return "", fmt.Errorf("running %s on %s: %w", binPdftotext, pdfPath, err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("%s produced empty output for %s", binPdftotext, pdfPath)
	}
	return out.String(), nil
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunPiped(name string, args []string, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	return cmd.Run()
}

var defaultExec = &osExecutor{}
