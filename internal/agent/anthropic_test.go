// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TAI-src/retrieve-tailor-example/pkg/types"
)

// withTestServer points apiURL at a test server for the duration of fn.
func withTestServer(t *testing.T, handler http.HandlerFunc, fn func(ts *httptest.Server)) {
	t.Helper()
	ts := httptest.NewServer(handler)
	defer ts.Close()

	orig := apiURL
	apiURL = ts.URL
	defer func() { apiURL = orig }()

	fn(ts)
}

func textResponse(text string) string {
	return fmt.Sprintf(`{"content":[{"type":"text","text":%q}]}`, text)
}

func TestAsk_RequestShape(t *testing.T) {
	var gotReq anthropicRequest
	var gotKey, gotVersion string

	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		fmt.Fprint(w, textResponse("the answer"))
	}, func(ts *httptest.Server) {
		a := NewAnthropic(types.AIConfig{Model: "test-model", APIKey: "sk-test"}, ts.Client())
		answer, err := a.Ask(context.Background(), "paper body", "what is it about?", AskOptions{})
		if err != nil {
			t.Fatalf("Ask: %v", err)
		}
		if answer != "the answer" {
			t.Errorf("answer = %q", answer)
		}
	})

	if gotKey != "sk-test" {
		t.Errorf("x-api-key = %q", gotKey)
	}
	if gotVersion != "2023-06-01" {
		t.Errorf("anthropic-version = %q", gotVersion)
	}
	if gotReq.Model != "test-model" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if gotReq.MaxTokens != defaultMaxTokens {
		t.Errorf("max_tokens = %d", gotReq.MaxTokens)
	}
	if gotReq.System != defaultSystemPrompt {
		t.Errorf("system = %q", gotReq.System)
	}
	if len(gotReq.Messages) != 1 {
		t.Fatalf("messages = %v", gotReq.Messages)
	}
	content := gotReq.Messages[0].Content
	if !strings.Contains(content, "<paper>\npaper body\n</paper>") {
		t.Errorf("content does not wrap the paper text: %q", content)
	}
	if !strings.HasSuffix(content, "what is it about?") {
		t.Errorf("content does not end with the question: %q", content)
	}
}

func TestAsk_OptionsOverride(t *testing.T) {
	var gotReq anthropicRequest
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		fmt.Fprint(w, textResponse("ok"))
	}, func(ts *httptest.Server) {
		a := NewAnthropic(types.AIConfig{APIKey: "k"}, ts.Client())
		_, err := a.Ask(context.Background(), "t", "q", AskOptions{System: "terse", MaxTokens: 256})
		if err != nil {
			t.Fatal(err)
		}
	})

	if gotReq.System != "terse" {
		t.Errorf("system = %q", gotReq.System)
	}
	if gotReq.MaxTokens != 256 {
		t.Errorf("max_tokens = %d", gotReq.MaxTokens)
	}
	if gotReq.Model != DefaultModel {
		t.Errorf("model = %q, want default", gotReq.Model)
	}
}

func TestAsk_APIError(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"type":"api_error"}}`)
	}, func(ts *httptest.Server) {
		a := NewAnthropic(types.AIConfig{APIKey: "k"}, ts.Client())
		_, err := a.Ask(context.Background(), "t", "q", AskOptions{})
		var exErr *types.ExtractionError
		if !errors.As(err, &exErr) {
			t.Fatalf("error %v is not an ExtractionError", err)
		}
	})
}

func TestAsk_SingleAttempt(t *testing.T) {
	var calls int
	withTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}, func(ts *httptest.Server) {
		a := NewAnthropic(types.AIConfig{APIKey: "k"}, ts.Client())
		if _, err := a.Ask(context.Background(), "t", "q", AskOptions{}); err == nil {
			t.Fatal("expected error")
		}
	})

	if calls != 1 {
		t.Errorf("provider called %d times, want exactly 1", calls)
	}
}

func TestAsk_NoTextContent(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"content":[{"type":"tool_use"}]}`)
	}, func(ts *httptest.Server) {
		a := NewAnthropic(types.AIConfig{APIKey: "k"}, ts.Client())
		_, err := a.Ask(context.Background(), "t", "q", AskOptions{})
		var exErr *types.ExtractionError
		if !errors.As(err, &exErr) {
			t.Fatalf("error %v is not an ExtractionError", err)
		}
	})
}

func TestAsk_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	ts.Close()

	orig := apiURL
	apiURL = ts.URL
	defer func() { apiURL = orig }()

	a := NewAnthropic(types.AIConfig{APIKey: "k"}, http.DefaultClient)
	_, err := a.Ask(context.Background(), "t", "q", AskOptions{})
	var exErr *types.ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("error %v is not an ExtractionError", err)
	}
}
