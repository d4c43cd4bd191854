// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/TAI-src/retrieve-tailor-example/pkg/types"
)

// noResponse is the placeholder the model writes for sections it cannot
// fill. It maps to an empty record field and back.
const noResponse = "_No response_"

// frontmatter mirrors the YAML block at the top of a generated document.
type frontmatter struct {
	Title   string   `yaml:"title"`
	Authors []string `yaml:"authors"`
	Date    string   `yaml:"date"`
	Link    string   `yaml:"link"`
	ID      int64    `yaml:"id"`
}

// sectionFields maps document headings onto record fields. Headings the
// model must emit are fixed by the prompt exemplar.
var sectionFields = map[string]func(*types.TailoringExample, string){
	"problem description":          func(e *types.TailoringExample, v string) { e.ProblemDescription = v },
	"why was tailoring needed?":    func(e *types.TailoringExample, v string) { e.TailoringRationale = v },
	"baseline algorithm":           func(e *types.TailoringExample, v string) { e.BaselineAlgorithm = v },
	"tailoring process":            func(e *types.TailoringExample, v string) { e.TailoringProcess = v },
	"what was tailored":            func(e *types.TailoringExample, v string) { e.WhatWasTailored = v },
	"main problem characteristics": func(e *types.TailoringExample, v string) { e.Characteristics = v },
	"references":                   func(e *types.TailoringExample, v string) { e.References = v },
	"author":                       func(e *types.TailoringExample, v string) { e.Author = v },
}

// Parse maps a generated document onto a TailoringExample. The document
// must open with a YAML frontmatter block and contain at least one of the
// expected section headings; anything else is a ParseError. Parse never
// reports success for a document it could only partially understand: an
// unreadable frontmatter or an entirely heading-free body is fatal, while
// sections the model left out simply stay empty.
func Parse(raw string) (*types.TailoringExample, error) {
	fmText, body, err := splitFrontmatter(raw)
	if err != nil {
		return nil, err
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(fmText), &fm); err != nil {
		return nil, &types.ParseError{Reason: fmt.Sprintf("decoding frontmatter: %v", err)}
	}

	example := &types.TailoringExample{
		Title:   fm.Title,
		Authors: fm.Authors,
		Date:    fm.Date,
		Link:    fm.Link,
		ID:      fm.ID,
	}

	recognized := 0
	for _, sec := range splitSections(body) {
		assign, ok := sectionFields[strings.ToLower(sec.heading)]
		if !ok {
			continue
		}
		recognized++
		text := strings.TrimSpace(sec.body)
		if text == noResponse {
			text = ""
		}
		assign(example, text)
	}

	if recognized == 0 {
		return nil, &types.ParseError{Reason: "no recognizable sections in reply"}
	}
	return example, nil
}

// splitFrontmatter separates the leading YAML block from the body. The
// document must start with "---" and carry a closing "---" line.
func splitFrontmatter(raw string) (fm, body string, err error) {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "---\n") {
		return "", "", &types.ParseError{Reason: "reply does not start with a frontmatter block"}
	}
	rest := s[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end == -1 {
		return "", "", &types.ParseError{Reason: "unterminated frontmatter block"}
	}
	return rest[:end], rest[end+len("\n---"):], nil
}

// section is one heading-delimited chunk of the document body.
type section struct {
	heading string
	body    string
}

// splitSections chunks the body at "## " heading boundaries. Text before
// the first heading (the linked H1 title line) is dropped.
func splitSections(body string) []section {
	var sections []section
	heading := ""
	var bodyLines []string

	flush := func() {
		if heading != "" {
			sections = append(sections, section{heading: heading, body: strings.Join(bodyLines, "\n")})
		}
		bodyLines = nil
	}

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "## ") {
			flush()
			heading = strings.TrimSpace(strings.TrimPrefix(trimmed, "## "))
			continue
		}
		bodyLines = append(bodyLines, line)
	}
	flush()
	return sections
}
