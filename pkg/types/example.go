// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// TailoringExample is the structured record produced from a paper. It maps
// one-to-one onto the generated document: a YAML frontmatter block followed
// by fixed free-text sections. Every section is optional text; the record
// is write-once and carries no cross-field constraints.
type TailoringExample struct {
	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper's authors.
	Authors []string `json:"authors" yaml:"authors"`

	// Date is the publication date in YYYY-MM-DD format.
	Date string `json:"date" yaml:"date"`

	// Link is the source URL, or "_No link available_" when unknown.
	Link string `json:"link" yaml:"link"`

	// ID is the sequence number assigned by the example store.
	ID int64 `json:"id" yaml:"id"`

	// ProblemDescription describes the real-world problem being solved.
	ProblemDescription string `json:"problem_description" yaml:"problem_description"`

	// TailoringRationale explains why tailoring was needed.
	TailoringRationale string `json:"tailoring_rationale" yaml:"tailoring_rationale"`

	// BaselineAlgorithm names the algorithm that was adapted, and why it
	// was chosen.
	BaselineAlgorithm string `json:"baseline_algorithm" yaml:"baseline_algorithm"`

	// TailoringProcess describes how the adaptation was carried out.
	TailoringProcess string `json:"tailoring_process" yaml:"tailoring_process"`

	// WhatWasTailored identifies the adapted algorithm components.
	WhatWasTailored string `json:"what_was_tailored" yaml:"what_was_tailored"`

	// Characteristics lists the main problem characteristics.
	Characteristics string `json:"characteristics" yaml:"characteristics"`

	// References holds citation text, when provided.
	References string `json:"references" yaml:"references"`

	// Author names the example's author(s), usually the paper authors.
	Author string `json:"author" yaml:"author"`
}

// Classification is the verdict on whether a paper describes a real-world
// application rather than purely theoretical or benchmark work.
type Classification struct {
	IsRealWorldApplication bool   `json:"is_real_world_application" yaml:"is_real_world_application"`
	Reason                 string `json:"reason" yaml:"reason"`
}
