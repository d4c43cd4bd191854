// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/TAI-src/retrieve-tailor-example/pkg/types"
)

// apiURL is the Anthropic messages API endpoint. Package-level var for
// test substitution.
var apiURL = "https://api.anthropic.com/v1/messages"

// defaultSystemPrompt is used when AskOptions.System is empty.
const defaultSystemPrompt = "You are a helpful research assistant. Answer questions about the provided paper concisely and accurately."

const defaultMaxTokens = 4096

// AnthropicAgent implements Agent against the Anthropic messages API.
type AnthropicAgent struct {
	cfg    types.AIConfig
	client *http.Client
}

// NewAnthropic builds an agent for the configured model and key. A nil
// client falls back to http.DefaultClient.
func NewAnthropic(cfg types.AIConfig, client *http.Client) *AnthropicAgent {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &AnthropicAgent{cfg: cfg, client: client}
}

// anthropicRequest is the request body for the messages API.
type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

// anthropicMessage is a single message in the conversation.
type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// anthropicResponse is the response body from the messages API.
type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

// anthropicContent is a content block in the API response.
type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Ask sends the paper text and question as a single user message. The text
// is wrapped in <paper> tags so the question can refer to "the paper".
// Provider failures of any kind surface as an ExtractionError; there is no
// automatic retry.
func (a *AnthropicAgent) Ask(ctx context.Context, text, question string, opts AskOptions) (string, error) {
	system := opts.System
	if system == "" {
		system = defaultSystemPrompt
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = a.cfg.MaxTokens
	}

	reqBody := anthropicRequest{
		Model:     a.cfg.Model,
		MaxTokens: maxTokens,
		System:    system,
		Messages: []anthropicMessage{
			{Role: "user", Content: fmt.Sprintf("<paper>\n%s\n</paper>\n\n%s", text, question)},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", &types.ExtractionError{Err: fmt.Errorf("marshaling request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", &types.ExtractionError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.cfg.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", &types.ExtractionError{Err: fmt.Errorf("calling Anthropic API: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &types.ExtractionError{Err: fmt.Errorf("Anthropic API returned %d: %s", resp.StatusCode, string(body))}
	}

	var aResp anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&aResp); err != nil {
		return "", &types.ExtractionError{Err: fmt.Errorf("decoding response: %w", err)}
	}

	for _, block := range aResp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", &types.ExtractionError{Err: fmt.Errorf("no text content in API response")}
}
