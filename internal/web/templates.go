// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
)

// pageTmpl is the shared page frame; content templates fill the "content"
// block.
const pageFrame = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>retrieve-tailor-example</title>
<style>
body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
nav a { margin-right: 1rem; }
label { display: block; margin-top: 0.75rem; }
input[type=url], input[type=text] { width: 100%; padding: 0.4rem; }
button { margin-top: 1rem; padding: 0.5rem 1.25rem; }
pre { background: #f6f6f6; padding: 1rem; overflow-x: auto; white-space: pre-wrap; }
table { border-collapse: collapse; width: 100%; }
td, th { border-bottom: 1px solid #ddd; padding: 0.4rem; text-align: left; }
</style>
</head>
<body>
<nav><a href="/">Generate</a><a href="/examples">Examples</a><a href="/about">About</a></nav>
{{template "content" .}}
</body>
</html>`

var (
	homeTmpl     = mustPage("home", homeContent)
	examplesTmpl = mustPage("examples", examplesContent)
	exampleTmpl  = mustPage("example", exampleContent)
	aboutTmpl    = mustPage("about", aboutContent)
)

const homeContent = `{{define "content"}}
<h1>Generate a tailoring example</h1>
<p>Paste the URL of a paper PDF (or a publications page) to generate a structured tailoring example.</p>
<form id="generate-form" method="post" action="/generate">
<label>Paper URL <input type="url" name="url" required placeholder="https://example.com/paper.pdf"></label>
<label>Model <input type="text" name="model" value="{{.DefaultModel}}"></label>
<label><input type="checkbox" name="force" value="true"> Generate even if not classified as a real-world application</label>
<button type="submit">Generate</button>
</form>
<script>
document.getElementById("generate-form").addEventListener("submit", async (e) => {
  e.preventDefault();
  const form = e.target;
  const button = form.querySelector("button");
  button.disabled = true;
  button.textContent = "Generating…";
  try {
    const resp = await fetch("/generate", { method: "POST", body: new URLSearchParams(new FormData(form)) });
    const data = await resp.json();
    const out = document.getElementById("result");
    out.textContent = data.success ? data.generated_content : "Error: " + data.error;
  } finally {
    button.disabled = false;
    button.textContent = "Generate";
  }
});
</script>
<pre id="result"></pre>
{{end}}`

const examplesContent = `{{define "content"}}
<h1>Generated examples</h1>
{{if .Records}}
<table>
<tr><th>ID</th><th>Title</th><th>Source</th><th>Created</th></tr>
{{range .Records}}
<tr>
<td><a href="/examples/{{.ID}}">{{.ID}}</a></td>
<td><a href="/examples/{{.ID}}">{{.Title}}</a></td>
<td><a href="{{.SourceURL}}">{{.SourceURL}}</a></td>
<td>{{.CreatedAt.Format "2006-01-02"}}</td>
</tr>
{{end}}
</table>
{{else}}
<p>No examples generated yet.</p>
{{end}}
{{end}}`

const exampleContent = `{{define "content"}}
<p><a href="/examples">&larr; all examples</a></p>
<article>{{.Body}}</article>
{{end}}`

const aboutContent = `{{define "content"}}
<h1>About</h1>
<p>This tool downloads a paper PDF, extracts its text, and asks a language
model to summarize how an optimization algorithm was tailored for a
real-world use case. The result is a structured markdown document with a
fixed set of sections, suitable for a tailoring-example collection.</p>
<p>It can also scrape a publications listing page for paper metadata, and
classify papers as real-world applications before generating.</p>
{{end}}`

func mustPage(name, content string) *template.Template {
	return template.Must(template.Must(template.New(name).Parse(pageFrame)).Parse(content))
}

func renderPage(w http.ResponseWriter, t *template.Template, data any) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		http.Error(w, fmt.Sprintf("rendering page: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// markdownToHTML renders a stored markdown document for the browser. The
// output is our own rendering of model output, so it is trusted as HTML.
// The YAML frontmatter block is dropped; the body carries the same fields.
func markdownToHTML(doc string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(stripFrontmatter(doc)), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// stripFrontmatter removes a leading "---" fenced YAML block, if present.
func stripFrontmatter(doc string) string {
	if !strings.HasPrefix(doc, "---\n") {
		return doc
	}
	rest := doc[len("---\n"):]
	if end := strings.Index(rest, "\n---"); end != -1 {
		return strings.TrimLeft(rest[end+len("\n---"):], "-\n")
	}
	return doc
}
