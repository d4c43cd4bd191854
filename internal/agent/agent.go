// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent abstracts the model provider behind a question-answering
// interface so tests and tasks can swap backends.
package agent

import "context"

// DefaultModel is the model used when none is configured.
const DefaultModel = "claude-sonnet-4-5-20250929"

// AskOptions adjusts a single Ask call.
type AskOptions struct {
	// System overrides the default system prompt when non-empty.
	System string

	// MaxTokens caps the response length; 0 means the configured default.
	MaxTokens int
}

// Agent answers a question about a piece of paper text. Implementations
// make exactly one provider call per Ask; retry policy belongs to callers.
type Agent interface {
	Ask(ctx context.Context, text, question string, opts AskOptions) (string, error)
}
