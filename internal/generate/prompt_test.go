// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"strings"
	"testing"

	"github.com/TAI-src/retrieve-tailor-example/pkg/types"
)

func TestBuildPrompt(t *testing.T) {
	article := types.Article{
		Title:   "Fleet Optimisation",
		Authors: []string{"A One", "B Two"},
		Venue:   "GECCO 2024",
		Links: map[string]string{
			"DOI": "https://doi.org/10.1145/x",
		},
	}

	prompt, err := BuildPrompt(article, 42)
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}

	for _, want := range []string{
		"<format_example>",
		"## Problem Description",
		"## Why was tailoring needed?",
		"## Main problem characteristics",
		"Use id: 42",
		"- Title: Fleet Optimisation",
		"- Authors: A One, B Two",
		"- Venue: GECCO 2024",
		"- Link: https://doi.org/10.1145/x",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPrompt_NoMetadata(t *testing.T) {
	prompt, err := BuildPrompt(types.Article{}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(prompt, "I already know the following metadata") {
		t.Error("metadata block rendered for an empty article")
	}
	if !strings.Contains(prompt, "Use id: 1") {
		t.Error("id instruction missing")
	}
}

func TestBuildPrompt_NoLink(t *testing.T) {
	prompt, err := BuildPrompt(types.Article{Title: "T"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(prompt, "- Link: _No link available_") {
		t.Error("missing no-link placeholder in metadata block")
	}
}

func TestBestLink(t *testing.T) {
	tests := []struct {
		name    string
		article types.Article
		want    string
	}{
		{
			name: "doi beats pdf",
			article: types.Article{Links: map[string]string{
				"PDF": "https://e.com/a.pdf",
				"DOI": "https://doi.org/10.1/x",
			}},
			want: "https://doi.org/10.1/x",
		},
		{
			name: "publisher label match is case-insensitive",
			article: types.Article{Links: map[string]string{
				"ACM Online": "https://dl.acm.org/x",
			}},
			want: "https://dl.acm.org/x",
		},
		{
			name: "non-pdf beats pdf",
			article: types.Article{Links: map[string]string{
				"PDF":   "https://e.com/a.pdf",
				"Slides": "https://e.com/slides",
			}},
			want: "https://e.com/slides",
		},
		{
			name: "pdf only",
			article: types.Article{Links: map[string]string{
				"PDF": "https://e.com/a.pdf",
			}},
			want: "https://e.com/a.pdf",
		},
		{
			name:    "no links",
			article: types.Article{},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BestLink(tt.article); got != tt.want {
				t.Errorf("BestLink = %q, want %q", got, tt.want)
			}
		})
	}
}
