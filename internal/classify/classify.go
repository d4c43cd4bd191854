// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides whether a paper describes a real-world
// application, as opposed to purely theoretical or benchmark work.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/TAI-src/retrieve-tailor-example/internal/agent"
	"github.com/TAI-src/retrieve-tailor-example/pkg/types"
)

const classificationPrompt = `Is this paper primarily about a real-world application (e.g. engineering, healthcare, logistics, energy systems, software engineering on real codebases, etc.) as opposed to being purely theoretical, a benchmark study on synthetic problems, or a survey/editorial?

Respond with ONLY a JSON object in this exact format, no other text:
{"is_real_world_application": true, "reason": "short reason here"}
`

const systemPrompt = "You are a research paper classifier. You classify papers as being about " +
	"real-world applications or not. Respond only with the requested JSON."

const (
	// maxChars bounds the text sent to the model; title, abstract, and
	// introduction carry enough signal.
	maxChars = 3000

	// minChars filters out texts too short to be papers (slides, posters).
	minChars = 5000
)

const classifyMaxTokens = 256

// Classify asks the agent whether the paper text describes a real-world
// application. Texts shorter than minChars are classified false without an
// API call. A reply that cannot be decoded as JSON fails with a ParseError.
func Classify(ctx context.Context, a agent.Agent, text string) (types.Classification, error) {
	if len(text) < minChars {
		return types.Classification{
			IsRealWorldApplication: false,
			Reason:                 "skipped: too short (likely slides/poster)",
		}, nil
	}

	truncated := text
	if len(truncated) > maxChars {
		truncated = truncated[:maxChars]
	}

	raw, err := a.Ask(ctx, truncated, classificationPrompt, agent.AskOptions{
		System:    systemPrompt,
		MaxTokens: classifyMaxTokens,
	})
	if err != nil {
		return types.Classification{}, err
	}

	return parseReply(raw)
}

// parseReply decodes the model's JSON verdict. Models occasionally wrap the
// object in prose; slicing the outermost brace pair recovers those replies.
func parseReply(raw string) (types.Classification, error) {
	var c types.Classification
	if err := json.Unmarshal([]byte(raw), &c); err == nil {
		return c, nil
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return types.Classification{}, &types.ParseError{
			Reason: fmt.Sprintf("no JSON object in classification reply: %.200s", raw),
		}
	}

	if err := json.Unmarshal([]byte(raw[start:end+1]), &c); err != nil {
		return types.Classification{}, &types.ParseError{
			Reason: fmt.Sprintf("decoding classification reply: %v", err),
		}
	}
	return c, nil
}
