// Package site plans the files of the generated documentation.
package site

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/simonhull/dfdoc/internal/generator"
	"github.com/simonhull/dfdoc/internal/render"
	"github.com/simonhull/dfdoc/internal/schema"
)

// Options controls where and how the site is written.
type Options struct {
	Dir     string // HTML output directory
	XMLFile string // XML document path; empty skips it
	Page    render.PageOptions
	XML     render.XMLOptions
}

// Build renders every page and the XML document and returns the write
// operations in order: index, sequences, one page per table, XML.
func Build(s *schema.Schema, opts Options) ([]generator.Operation, error) {
	if opts.Dir == "" {
		return nil, fmt.Errorf("output directory is required")
	}

	r := render.NewRenderer()
	var ops []generator.Operation
	add := func(path string, content []byte) {
		ops = append(ops, &generator.WriteFileOp{Path: path, Content: content, Mode: 0644})
	}

	index, err := r.Index(s, opts.Page)
	if err != nil {
		return nil, fmt.Errorf("rendering index page: %w", err)
	}
	add(filepath.Join(opts.Dir, "index.html"), index)

	seqs, err := r.Sequences(s)
	if err != nil {
		return nil, fmt.Errorf("rendering sequences page: %w", err)
	}
	add(filepath.Join(opts.Dir, "sequences.html"), seqs)

	pages := render.PageNames(s.TableNames())
	for _, t := range s.Tables() {
		page, err := r.Table(t, opts.Page)
		if err != nil {
			return nil, fmt.Errorf("rendering table %q: %w", t.Name, err)
		}
		add(filepath.Join(opts.Dir, pages[t.Name]), page)
	}

	if opts.XMLFile != "" {
		var buf bytes.Buffer
		if err := render.EncodeXML(&buf, s, opts.XML); err != nil {
			return nil, err
		}
		add(opts.XMLFile, buf.Bytes())
	}

	return ops, nil
}
