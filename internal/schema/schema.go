package schema

// Field is one ADD FIELD declaration.
type Field struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	ColumnLabel string `json:"columnLabel" yaml:"column_label"`
	Help        string `json:"help" yaml:"help"`
}

// Table is a read-only view of a parsed table.
type Table struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Fields      []Field `json:"fields" yaml:"fields"`
	// Implicit is set when the table was never declared with ADD TABLE and
	// only exists because an ADD FIELD referenced it.
	Implicit bool `json:"implicit,omitempty" yaml:"implicit,omitempty"`
}

// Stats holds simple counts for reporting.
type Stats struct {
	Sequences int
	Tables    int
	Fields    int
}

// Schema is the result of one parse pass.
//
// Tables keep first-appearance order. After Finish, every table has a
// description entry, possibly empty.
type Schema struct {
	Sequences []string

	order        []string
	fields       map[string][]Field
	descriptions map[string]string
	declared     map[string]bool
}

// New returns an empty schema.
func New() *Schema {
	return &Schema{
		Sequences:    make([]string, 0),
		order:        make([]string, 0),
		fields:       make(map[string][]Field),
		descriptions: make(map[string]string),
		declared:     make(map[string]bool),
	}
}

// ensureTable creates the field list for name if it does not exist yet.
func (s *Schema) ensureTable(name string) {
	if _, ok := s.fields[name]; ok {
		return
	}
	s.fields[name] = make([]Field, 0)
	s.order = append(s.order, name)
}

// TableNames returns table names in the order they first appeared.
func (s *Schema) TableNames() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// HasTable reports whether name was declared or referenced.
func (s *Schema) HasTable(name string) bool {
	_, ok := s.fields[name]
	return ok
}

// Fields returns the fields of a table in declaration order.
func (s *Schema) Fields(table string) []Field {
	return s.fields[table]
}

// Description returns the description of a table and whether one is recorded.
func (s *Schema) Description(table string) (string, bool) {
	d, ok := s.descriptions[table]
	return d, ok
}

// Table returns a view of one table.
func (s *Schema) Table(name string) (Table, bool) {
	if !s.HasTable(name) {
		return Table{}, false
	}
	return Table{
		Name:        name,
		Description: s.descriptions[name],
		Fields:      s.fields[name],
		Implicit:    !s.declared[name],
	}, true
}

// Tables returns every table in first-appearance order.
func (s *Schema) Tables() []Table {
	tables := make([]Table, 0, len(s.order))
	for _, name := range s.order {
		t, _ := s.Table(name)
		tables = append(tables, t)
	}
	return tables
}

// FieldsByTable returns the table name to fields mapping.
func (s *Schema) FieldsByTable() map[string][]Field {
	m := make(map[string][]Field, len(s.fields))
	for k, v := range s.fields {
		m[k] = v
	}
	return m
}

// Descriptions returns the table name to description mapping.
func (s *Schema) Descriptions() map[string]string {
	m := make(map[string]string, len(s.descriptions))
	for k, v := range s.descriptions {
		m[k] = v
	}
	return m
}

// Stats counts sequences, tables and fields.
func (s *Schema) Stats() Stats {
	st := Stats{Sequences: len(s.Sequences), Tables: len(s.order)}
	for _, f := range s.fields {
		st.Fields += len(f)
	}
	return st
}

// normalize gives every table a description entry.
func (s *Schema) normalize() {
	for name := range s.fields {
		if _, ok := s.descriptions[name]; !ok {
			s.descriptions[name] = ""
		}
	}
}
