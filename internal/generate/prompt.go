// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/TAI-src/retrieve-tailor-example/pkg/types"
)

// SystemPrompt steers the model toward emitting only the requested format.
const SystemPrompt = "You are a research assistant that extracts structured information from " +
	"academic papers. You produce output in a specific markdown format. " +
	"Output only the requested format, nothing else."

// promptTmpl carries a complete format exemplar so the model sees exactly
// one document shape. The exemplar text is a real tailoring example; its
// sections double as the schema the reply parser expects.
var promptTmpl = template.Must(template.New("generate").Parse(`Here is an example of the format I need:

<format_example>
---
title: Optimisation for a Fleet of Healthcare Vehicles
authors:
    - Sarah Thomson
date: 2026-01-16
link: https://dl.acm.org/doi/abs/10.1145/3638530.3664137
id: 1
---

# [Optimisation for a Fleet of Healthcare Vehicles](https://dl.acm.org/doi/abs/10.1145/3638530.3664137)

## Problem Description

A healthcare provider in a region of Scotland (Argyll and Bute) wanted to reduce their vehicle fleet size while still being able to cater for all trips. They provided 4 months of historical data about where their existing fleet were based and the trips they conducted, including start and end times and geographic location. We were also given information about the vehicle types and which vehicles were allowed to do which trips.

## Why was tailoring needed?

Not too much tailoring was needed but there were some particulars that had to be accounted for:

1. Jobs (i.e. trips) have a type of vehicle which (historically) executed them, but if needed certain other types of vehicles can do the trip.  For example, a small car originally did the trip, can be done by a van.
2. Vehicles can be swapped between geographical bases if needed and if the swap does not mean that the vehicle home base cannot cover its own trips.
3. It does not make sense to try and remove a type of vehicle from a base if there are none there or maybe if there are a small amount there. This led to a semi-guided mutation design.

## Baseline algorithm

Upper level: stochastic local search; lower level: constructive heuristic.

Motivations for choice: we wanted to keep it simple as possible and explainable for the user. No need to use fancy algorithms if a simple approach can obtain results.

## Tailoring process

Adding in constraints (part of the operators); added additional vehicle/machine swap operation; semi-guided mutation.

## What was tailored

Aspects of the algorithmic operators were tailored. This included the nature of the mutation operator and how it ensured that mutated solutions are feasible within the specific constraints of the problem.

## Main problem characteristics

Choose most important ones: low-dimensional at upper level, high-dimensional at lower level; highly constrained (some soft and some hard); offline; there is an existing solution that works(current fleet); is a simplified version of what is eventually sought (optimising routes, carbon as well); low data sensitivity.

## References

_No response_

## Author

Sarah Thomson
</format_example>

Now, based on the paper I provided, generate a summary in EXACTLY this format. Rules:
- Use the paper's actual title, authors, and date.
- For the "link" field in the YAML frontmatter, use "_No link available_" if you cannot determine a URL.
- Use id: {{.PaperID}}
- Fill in every section based on the paper's content. If a section cannot be filled from the paper, write "_No response_".
- Do NOT include any text before or after the formatted output.
- The output should start with "---" and end with the author names.
{{.MetadataBlock}}`))

// BuildPrompt renders the generation prompt for one paper, embedding the
// assigned id and any metadata already known from scraping.
func BuildPrompt(article types.Article, paperID int64) (string, error) {
	var buf bytes.Buffer
	err := promptTmpl.Execute(&buf, struct {
		PaperID       int64
		MetadataBlock string
	}{
		PaperID:       paperID,
		MetadataBlock: metadataBlock(article),
	})
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return buf.String(), nil
}

// metadataBlock builds an extra instruction block listing metadata the
// scraper already resolved, so the model does not re-derive it. Returns ""
// when nothing useful is known.
func metadataBlock(article types.Article) string {
	if article.Title == "" {
		return ""
	}

	lines := []string{
		"",
		"I already know the following metadata for this paper — use it directly:",
		fmt.Sprintf("- Title: %s", article.Title),
		fmt.Sprintf("- Authors: %s", strings.Join(article.Authors, ", ")),
	}
	if article.Venue != "" {
		lines = append(lines, fmt.Sprintf("- Venue: %s", article.Venue))
	}
	if link := BestLink(article); link != "" {
		lines = append(lines, fmt.Sprintf("- Link: %s", link))
	} else {
		lines = append(lines, "- Link: _No link available_")
	}
	return strings.Join(lines, "\n")
}

// publisherKeywords mark link labels that point at a DOI or publisher page.
var publisherKeywords = []string{"doi", "acm", "springer", "elsevier", "ieee", "online"}

// BestLink picks the most citable link from an Article: DOI/publisher pages
// beat anything else, anything else beats a bare PDF link. Returns "" when
// the article has no links.
func BestLink(article types.Article) string {
	for label, u := range article.Links {
		lower := strings.ToLower(label)
		for _, k := range publisherKeywords {
			if strings.Contains(lower, k) {
				return u
			}
		}
	}
	for label, u := range article.Links {
		if strings.ToLower(label) != "pdf" {
			return u
		}
	}
	for _, u := range article.Links {
		return u
	}
	return ""
}
