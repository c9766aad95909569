// Package extract turns uploaded documents into plain text. PDF pages are
// emitted in order, each followed by a newline.
package extract

import (
	"context"
	"path/filepath"
	"strings"
)

// Document is one uploaded file.
type Document struct {
	Name    string
	Content []byte
}

// BaseName is the name the document is cached under: the final path
// element of Name, so "/tmp/x/report.pdf" and "report.pdf" are the same
// document.
func (d Document) BaseName() string {
	name := strings.ReplaceAll(d.Name, `\`, "/")
	return filepath.Base(name)
}

type Extractor interface {
	Extract(ctx context.Context, doc Document) (string, error)
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(ctx context.Context, doc Document) (string, error)

func (f ExtractorFunc) Extract(ctx context.Context, doc Document) (string, error) {
	return f(ctx, doc)
}

// Router picks an extractor by file extension and falls back to a default.
type Router struct {
	byExt    map[string]Extractor
	fallback Extractor
}

func NewRouter(fallback Extractor) *Router {
	return &Router{byExt: map[string]Extractor{}, fallback: fallback}
}

// Handle registers e for the given extensions (".txt", "md", ...).
func (r *Router) Handle(e Extractor, exts ...string) *Router {
	for _, ext := range exts {
		r.byExt[normalizeExt(ext)] = e
	}
	return r
}

func (r *Router) Extract(ctx context.Context, doc Document) (string, error) {
	if e, ok := r.byExt[normalizeExt(filepath.Ext(doc.BaseName()))]; ok {
		return e.Extract(ctx, doc)
	}
	return r.fallback.Extract(ctx, doc)
}

// NewDefault routes .txt and .md files to PlainText and everything else to PDF.
func NewDefault() *Router {
	return NewRouter(PDF{}).Handle(PlainText{}, ".txt", ".md")
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
