package render

import (
	"embed"
	"html/template"
	"strings"

	"github.com/simonhull/dfdoc/internal/schema"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// PageOptions controls page rendering.
type PageOptions struct {
	Title    string // <title> of the index page
	Heading  string // <h1> of the index page
	Markdown bool   // render descriptions as Markdown
}

type tableRow struct {
	Name        string
	Page        string
	Description template.HTML
	Fields      []schema.Field
}

type indexData struct {
	Title     string
	Heading   string
	Sequences []string
	Tables    []tableRow
}

// Index renders the site overview page. Table links follow PageNames.
func (r *Renderer) Index(s *schema.Schema, opts PageOptions) ([]byte, error) {
	data := indexData{
		Title:     Default("DF Overview", opts.Title),
		Heading:   Default("DF Overview", opts.Heading),
		Sequences: s.Sequences,
	}
	pages := PageNames(s.TableNames())
	for _, t := range s.Tables() {
		row, err := newTableRow(t, opts)
		if err != nil {
			return nil, err
		}
		row.Page = pages[t.Name]
		data.Tables = append(data.Tables, row)
	}
	return r.RenderFS(templateFS, "templates/index.html.tmpl", data)
}

// Sequences renders the sequence list page.
func (r *Renderer) Sequences(s *schema.Schema) ([]byte, error) {
	return r.RenderFS(templateFS, "templates/sequences.html.tmpl", struct {
		Sequences []string
	}{s.Sequences})
}

// Table renders the page of one table.
func (r *Renderer) Table(t schema.Table, opts PageOptions) ([]byte, error) {
	row, err := newTableRow(t, opts)
	if err != nil {
		return nil, err
	}
	return r.RenderFS(templateFS, "templates/table.html.tmpl", row)
}

func newTableRow(t schema.Table, opts PageOptions) (tableRow, error) {
	desc, err := Description(t.Description, opts.Markdown)
	if err != nil {
		return tableRow{}, err
	}
	return tableRow{Name: t.Name, Description: desc, Fields: t.Fields}, nil
}

// Description renders description text as safe HTML. Plain text is escaped
// and keeps its line breaks.
func Description(text string, markdown bool) (template.HTML, error) {
	if markdown {
		return Markdown(text)
	}
	escaped := template.HTMLEscapeString(text)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>\n")), nil
}
