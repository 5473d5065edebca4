// Package render turns a parsed schema into HTML pages and an XML document.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"sync"
)

// Renderer handles template parsing and rendering with caching
type Renderer struct {
	cache map[string]*template.Template
	mu    sync.RWMutex // Protect cache for concurrent access
}

// NewRenderer creates a renderer with an empty template cache
func NewRenderer() *Renderer {
	return &Renderer{
		cache: make(map[string]*template.Template),
	}
}

// RenderFS renders a template read from fsys. Parsed templates are cached by
// path.
func (r *Renderer) RenderFS(fsys fs.FS, path string, data any) ([]byte, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[path]
	r.mu.RUnlock()

	if !ok {
		b, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read template '%s': %w", path, err)
		}
		tmpl, err = template.New(path).Parse(string(b))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template '%s': %w", path, err)
		}

		r.mu.Lock()
		r.cache[path] = tmpl
		r.mu.Unlock()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", path, err)
	}
	return buf.Bytes(), nil
}

// reservedPages are the site pages that table pages must not overwrite.
var reservedPages = map[string]bool{"index": true, "sequences": true}

// PageNames assigns each table its HTML file name. Runes outside
// [A-Za-z0-9_.-] become underscores. Names that still clash, ignoring case,
// get a numeric suffix in table order: "a b" and "a_b" map to a_b.html and
// a_b_2.html.
func PageNames(tables []string) map[string]string {
	pages := make(map[string]string, len(tables))
	used := make(map[string]bool, len(tables)+len(reservedPages))
	for name := range reservedPages {
		used[name] = true
	}

	for _, table := range tables {
		if _, done := pages[table]; done {
			continue
		}
		stem := pageStem(table)
		candidate := stem
		for n := 2; used[strings.ToLower(candidate)]; n++ {
			candidate = fmt.Sprintf("%s_%d", stem, n)
		}
		used[strings.ToLower(candidate)] = true
		pages[table] = candidate + ".html"
	}
	return pages
}

func pageStem(table string) string {
	var b strings.Builder
	for _, r := range table {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '_', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := b.String()
	if name == "" || strings.Trim(name, ".") == "" {
		name = "_" + name
	}
	if reservedPages[strings.ToLower(name)] {
		name += "_table"
	}
	return name
}

// Default returns def when val is empty after trimming
func Default(def, val string) string {
	if strings.TrimSpace(val) == "" {
		return def
	}
	return val
}
