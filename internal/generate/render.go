// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/TAI-src/retrieve-tailor-example/pkg/types"
)

// noLink is the frontmatter placeholder when no source URL is known.
const noLink = "_No link available_"

// renderedSection pairs a fixed heading with its record field.
type renderedSection struct {
	heading string
	value   func(*types.TailoringExample) string
}

// renderOrder fixes the section sequence of every rendered document.
var renderOrder = []renderedSection{
	{"Problem Description", func(e *types.TailoringExample) string { return e.ProblemDescription }},
	{"Why was tailoring needed?", func(e *types.TailoringExample) string { return e.TailoringRationale }},
	{"Baseline algorithm", func(e *types.TailoringExample) string { return e.BaselineAlgorithm }},
	{"Tailoring process", func(e *types.TailoringExample) string { return e.TailoringProcess }},
	{"What was tailored", func(e *types.TailoringExample) string { return e.WhatWasTailored }},
	{"Main problem characteristics", func(e *types.TailoringExample) string { return e.Characteristics }},
	{"References", func(e *types.TailoringExample) string { return e.References }},
	{"Author", func(e *types.TailoringExample) string { return e.Author }},
}

// Render writes a TailoringExample as a markdown document: YAML frontmatter,
// a linked H1 title, then the eight sections in fixed order. Empty sections
// render as the no-response placeholder, so Render is total and
// deterministic. Render and Parse are inverses for populated records.
func Render(example *types.TailoringExample) (string, error) {
	fm, err := yaml.Marshal(frontmatter{
		Title:   example.Title,
		Authors: example.Authors,
		Date:    example.Date,
		Link:    example.Link,
		ID:      example.ID,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")

	if example.Link != "" && example.Link != noLink {
		fmt.Fprintf(&b, "# [%s](%s)\n", example.Title, example.Link)
	} else {
		fmt.Fprintf(&b, "# %s\n", example.Title)
	}

	for _, sec := range renderOrder {
		text := strings.TrimSpace(sec.value(example))
		if text == "" {
			text = noResponse
		}
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", sec.heading, text)
	}
	return b.String(), nil
}
