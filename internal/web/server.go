// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the browser front-end: a form that accepts a paper
// URL and returns the generated tailoring example, plus pages listing
// previously generated examples.
package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/TAI-src/retrieve-tailor-example/internal/agent"
	"github.com/TAI-src/retrieve-tailor-example/internal/generate"
	"github.com/TAI-src/retrieve-tailor-example/internal/scrape"
	"github.com/TAI-src/retrieve-tailor-example/internal/store"
	"github.com/TAI-src/retrieve-tailor-example/pkg/types"
)

// AgentFactory builds an agent for the model chosen in the form.
type AgentFactory func(model string) agent.Agent

// Server handles the web front-end. Each request runs its own pipeline;
// the only shared state is the example store, which serializes its own
// access.
type Server struct {
	newAgent AgentFactory
	fetcher  generate.Fetcher
	store    *store.Store
	client   *http.Client
	httpCfg  types.HTTPConfig
	mux      *http.ServeMux
}

// New wires a Server from its collaborators. client and httpCfg are used
// to scrape submitted publications pages; a nil client falls back to
// http.DefaultClient.
func New(newAgent AgentFactory, fetcher generate.Fetcher, st *store.Store, client *http.Client, httpCfg types.HTTPConfig) *Server {
	if client == nil {
		client = http.DefaultClient
	}
	s := &Server{
		newAgent: newAgent,
		fetcher:  fetcher,
		store:    st,
		client:   client,
		httpCfg:  httpCfg,
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

// Router returns the handler for mounting or testing.
func (s *Server) Router() http.Handler { return s.mux }

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleHome)
	s.mux.HandleFunc("/generate", s.handleGenerate)
	s.mux.HandleFunc("/examples", s.handleExamples)
	s.mux.HandleFunc("/examples/", s.handleExampleByID)
	s.mux.HandleFunc("/about", s.handleAbout)
}

// generateResponse is the JSON reply of POST /generate.
type generateResponse struct {
	Success          bool              `json:"success"`
	GeneratedContent string            `json:"generated_content,omitempty"`
	Metadata         *generateMetadata `json:"metadata,omitempty"`
	Error            string            `json:"error,omitempty"`
}

type generateMetadata struct {
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
	Date    string   `json:"date,omitempty"`
	Venue   string   `json:"venue,omitempty"`
	URL     string   `json:"url"`
}

// GET /
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	renderPage(w, homeTmpl, map[string]any{"DefaultModel": agent.DefaultModel})
}

// POST /generate
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Errorf("parsing form: %w", err))
		return
	}

	url := strings.TrimSpace(r.PostFormValue("url"))
	if url == "" {
		writeJSONError(w, http.StatusBadRequest, fmt.Errorf("missing url field"))
		return
	}
	model := strings.TrimSpace(r.PostFormValue("model"))
	force := r.PostFormValue("force") != "" && r.PostFormValue("force") != "false"

	p := &generate.Pipeline{
		Agent:   s.newAgent(model),
		Fetcher: s.fetcher,
		Store:   s.store,
		Config: types.GenerateConfig{
			AIConfig: types.AIConfig{Model: model},
			Force:    force,
		},
	}
	// A non-PDF URL is treated as a publications page to scrape for links.
	if !strings.HasSuffix(strings.ToLower(url), ".pdf") {
		p.Scraper = scrape.NewPublications(s.client, url, types.ScrapeConfig{HTTPConfig: s.httpCfg})
	}

	var progress strings.Builder
	res, err := p.GenerateFromURL(r.Context(), url, &progress)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Success:          true,
		GeneratedContent: res.Document,
		Metadata: &generateMetadata{
			Title:   res.Example.Title,
			Authors: res.Example.Authors,
			Date:    res.Example.Date,
			Venue:   res.Article.Venue,
			URL:     url,
		},
	})
}

// GET /examples
func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	renderPage(w, examplesTmpl, map[string]any{"Records": records})
}

// GET /examples/{id}
func (s *Server) handleExampleByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/examples/"), "/")
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		http.Error(w, "invalid example id", http.StatusBadRequest)
		return
	}

	rec, err := s.store.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rec == nil {
		http.NotFound(w, r)
		return
	}

	body, err := markdownToHTML(rec.Document)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	renderPage(w, exampleTmpl, map[string]any{"Record": rec, "Body": body})
}

// GET /about
func (s *Server) handleAbout(w http.ResponseWriter, _ *http.Request) {
	renderPage(w, aboutTmpl, nil)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, generateResponse{Success: false, Error: err.Error()})
}
