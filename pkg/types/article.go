// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Article holds structured metadata for a single publication, as scraped
// from a publications listing page or assembled from a direct PDF URL.
type Article struct {
	// Title is the publication title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the publication's authors in listing order.
	Authors []string `json:"authors" yaml:"authors"`

	// Venue is the conference or journal name, when known.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// PDFURL is the direct link to the paper's PDF, when one was found.
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`

	// Links maps link labels (e.g. "pdf", "doi") to resolved URLs.
	Links map[string]string `json:"links,omitempty" yaml:"links,omitempty"`
}
