package render

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/simonhull/dfdoc/internal/schema"
)

// XMLOptions controls the XML document.
type XMLOptions struct {
	Indent       string // empty writes a compact document
	FieldDetails bool   // add columnLabel and help attributes to Field
}

type xmlSchema struct {
	XMLName   xml.Name     `xml:"DFSchema"`
	Sequences xmlSequences `xml:"Sequences"`
	Tables    xmlTables    `xml:"Tables"`
}

type xmlSequences struct {
	Sequence []string `xml:"Sequence"`
}

type xmlTables struct {
	Table []xmlTable `xml:"Table"`
}

type xmlTable struct {
	Name        string     `xml:"name,attr"`
	Description string     `xml:"description,attr"`
	Fields      []xmlField `xml:"Field"`
}

type xmlField struct {
	Name        string `xml:"name,attr"`
	Type        string `xml:"type,attr"`
	ColumnLabel string `xml:"columnLabel,attr,omitempty"`
	Help        string `xml:"help,attr,omitempty"`
}

// EncodeXML writes the schema document: a DFSchema root holding Sequences
// and Tables, tables in first-appearance order.
func EncodeXML(w io.Writer, s *schema.Schema, opts XMLOptions) error {
	doc := xmlSchema{}
	doc.Sequences.Sequence = s.Sequences

	for _, t := range s.Tables() {
		xt := xmlTable{Name: t.Name, Description: t.Description}
		for _, f := range t.Fields {
			xf := xmlField{Name: f.Name, Type: f.Type}
			if opts.FieldDetails {
				xf.ColumnLabel = f.ColumnLabel
				xf.Help = f.Help
			}
			xt.Fields = append(xt.Fields, xf)
		}
		doc.Tables.Table = append(doc.Tables.Table, xt)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("writing xml header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", opts.Indent)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding xml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding xml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
