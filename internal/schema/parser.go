package schema

import (
	"regexp"
	"strings"

	"github.com/simonhull/dfdoc/internal/logger"
)

var (
	sequenceLine    = regexp.MustCompile(`^\s*ADD SEQUENCE\s+"([^"]+)"`)
	tableLine       = regexp.MustCompile(`^\s*ADD TABLE\s+"([^"]+)"`)
	descriptionLine = regexp.MustCompile(`^\s*DESCRIPTION\s+"(.*)`)
	fieldLine       = regexp.MustCompile(`^\s*ADD FIELD\s+"([^"]+)"\s+OF\s+"([^"]+)"\s+AS\s+(\w+)`)
	columnLabelLine = regexp.MustCompile(`^\s*COLUMN-LABEL\s+"(.*)"`)
	helpLine        = regexp.MustCompile(`^\s*HELP\s+"(.*)"`)
	indexLine       = regexp.MustCompile(`^\s*ADD INDEX\s+"([^"]+)"\s+ON\s+"([^"]+)"`)
)

// fieldRef points at a field by owning table and position in its field list.
type fieldRef struct {
	table string
	index int
	ok    bool
}

// Parser is the line state machine. Feed it lines in order, then call Finish.
// A Parser is not safe for concurrent use.
type Parser struct {
	schema *Schema
	log    logger.Logger
	line   int

	currentTable  string // "" when no table is open
	inTableBlock  bool
	inDescription bool
	pending       string
	last          fieldRef
}

// NewParser returns a parser with an empty schema.
func NewParser(log logger.Logger) *Parser {
	if log == nil {
		log = logger.NewSilent()
	}
	return &Parser{schema: New(), log: log}
}

// Feed processes one line. The line must not contain its terminator.
// Exactly one rule applies per line; lines no rule accepts are dropped.
func (p *Parser) Feed(line string) {
	p.line++

	switch {
	case p.sequence(line):
	case p.table(line):
	case p.description(line):
	case p.continuation(line):
	case p.field(line):
	case p.columnLabel(line):
	case p.help(line):
	case p.index(line):
	default:
		if p.log.Enabled(logger.LevelDebug) && strings.TrimSpace(line) != "" {
			p.log.Debug("skipped line", logger.F("line", p.line), logger.F("text", preview(line)))
		}
	}
}

// Finish normalises and returns the schema. It may be called again after more
// lines are fed.
func (p *Parser) Finish() *Schema {
	if p.inDescription {
		p.log.Debug("unterminated description dropped",
			logger.F("table", p.currentTable), logger.F("line", p.line))
	}
	p.schema.normalize()
	return p.schema
}

func (p *Parser) sequence(line string) bool {
	m := sequenceLine.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	p.schema.Sequences = append(p.schema.Sequences, m[1])
	p.currentTable = ""
	p.last = fieldRef{}
	p.inTableBlock = false
	return true
}

func (p *Parser) table(line string) bool {
	m := tableLine.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	name := m[1]
	p.schema.ensureTable(name)
	p.schema.declared[name] = true
	p.currentTable = name
	p.last = fieldRef{}
	p.inDescription = false
	p.pending = ""
	p.inTableBlock = true
	return true
}

func (p *Parser) description(line string) bool {
	if p.currentTable == "" || !p.inTableBlock {
		return false
	}
	m := descriptionLine.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	text := m[1]
	if strings.HasSuffix(text, `"`) {
		p.inDescription = false
		p.pending = ""
		p.schema.descriptions[p.currentTable] = strings.TrimSpace(text[:len(text)-1])
		return true
	}
	p.inDescription = true
	p.pending = text
	return true
}

func (p *Parser) continuation(line string) bool {
	if !p.inDescription {
		return false
	}
	switch {
	case strings.TrimSpace(line) == `"`:
		p.commitDescription()
	case strings.HasSuffix(line, `"`):
		p.pending += "\n" + line[:len(line)-1]
		p.commitDescription()
	default:
		p.pending += "\n" + line
	}
	return true
}

// commitDescription stores the accumulated text. A sequence line in the
// middle of the text closed the table, so the text then has no owner.
func (p *Parser) commitDescription() {
	if p.currentTable == "" {
		p.log.Debug("description without table dropped", logger.F("line", p.line))
	} else {
		p.schema.descriptions[p.currentTable] = strings.TrimSpace(p.pending)
	}
	p.inDescription = false
	p.pending = ""
}

func (p *Parser) field(line string) bool {
	m := fieldLine.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	p.inTableBlock = false

	name, table, typ := m[1], m[2], m[3]
	p.schema.ensureTable(table)
	p.schema.fields[table] = append(p.schema.fields[table], Field{Name: name, Type: typ})
	p.last = fieldRef{table: table, index: len(p.schema.fields[table]) - 1, ok: true}
	return true
}

func (p *Parser) columnLabel(line string) bool {
	if !p.last.ok {
		return false
	}
	m := columnLabelLine.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	p.lastField().ColumnLabel = strings.TrimSpace(m[1])
	return true
}

func (p *Parser) help(line string) bool {
	if !p.last.ok {
		return false
	}
	m := helpLine.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	p.lastField().Help = strings.TrimSpace(m[1])
	return true
}

func (p *Parser) index(line string) bool {
	if !indexLine.MatchString(line) {
		return false
	}
	p.inTableBlock = false
	return true
}

func (p *Parser) lastField() *Field {
	return &p.schema.fields[p.last.table][p.last.index]
}

func preview(line string) string {
	line = strings.TrimSpace(line)
	if r := []rune(line); len(r) > 60 {
		return string(r[:60]) + "..."
	}
	return line
}
