package schema

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/dfdoc/internal/logger"
)

func parseLines(t *testing.T, lines ...string) *Schema {
	t.Helper()
	p := NewParser(nil)
	for _, l := range lines {
		p.Feed(l)
	}
	return p.Finish()
}

func TestParser_EndToEndExample(t *testing.T) {
	s := parseLines(t,
		`ADD SEQUENCE "seq1"`,
		`ADD TABLE "Tbl"`,
		`DESCRIPTION "desc1"`,
		`ADD FIELD "f1" OF "Tbl" AS INTEGER`,
	)

	assert.Equal(t, []string{"seq1"}, s.Sequences)
	assert.Equal(t, map[string][]Field{
		"Tbl": {{Name: "f1", Type: "INTEGER"}},
	}, s.FieldsByTable())
	assert.Equal(t, map[string]string{"Tbl": "desc1"}, s.Descriptions())
}

func TestParser_FieldWithLabelAndHelp(t *testing.T) {
	s := parseLines(t,
		`ADD TABLE "T1"`,
		`ADD FIELD "F1" OF "T1" AS CHARACTER`,
		`COLUMN-LABEL "Label1"`,
		`HELP "Help1"`,
	)

	require.Len(t, s.Fields("T1"), 1)
	assert.Equal(t, Field{Name: "F1", Type: "CHARACTER", ColumnLabel: "Label1", Help: "Help1"}, s.Fields("T1")[0])
}

func TestParser_SingleLineDescriptionIsTrimmed(t *testing.T) {
	s := parseLines(t,
		`ADD TABLE "T"`,
		`  DESCRIPTION "   spaced out   "`,
	)

	d, ok := s.Description("T")
	require.True(t, ok)
	assert.Equal(t, "spaced out", d)
}

func TestParser_MultiLineDescription(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name: "closing quote on its own line",
			lines: []string{
				`ADD TABLE "T"`,
				`  DESCRIPTION "First line`,
				`second line`,
				`  "`,
			},
			want: "First line\nsecond line",
		},
		{
			name: "closing quote ends the last line",
			lines: []string{
				`ADD TABLE "T"`,
				`DESCRIPTION "First line`,
				`  second line`,
				`third line"`,
			},
			want: "First line\n  second line\nthird line",
		},
		{
			name: "opening line holds only the quote",
			lines: []string{
				`ADD TABLE "T"`,
				`DESCRIPTION "`,
				`body`,
				`"`,
			},
			want: "body",
		},
		{
			name: "statements inside the text are swallowed",
			lines: []string{
				`ADD TABLE "T"`,
				`DESCRIPTION "Looks like`,
				`ADD FIELD "x" OF "T" AS integer`,
				`end"`,
			},
			want: "Looks like\nADD FIELD \"x\" OF \"T\" AS integer\nend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parseLines(t, tt.lines...)
			d, _ := s.Description("T")
			assert.Equal(t, tt.want, d)
			assert.Empty(t, s.Fields("T"))
		})
	}
}

func TestParser_DescriptionAfterFieldIsIgnored(t *testing.T) {
	s := parseLines(t,
		`ADD TABLE "T"`,
		`ADD FIELD "f" OF "T" AS integer`,
		`  DESCRIPTION "field level text"`,
	)

	d, ok := s.Description("T")
	require.True(t, ok)
	assert.Equal(t, "", d)
}

func TestParser_DescriptionAfterIndexIsIgnored(t *testing.T) {
	s := parseLines(t,
		`ADD TABLE "T"`,
		`ADD INDEX "i" ON "T"`,
		`DESCRIPTION "too late"`,
	)

	d, _ := s.Description("T")
	assert.Equal(t, "", d)
}

func TestParser_DescriptionWithoutTableIsIgnored(t *testing.T) {
	s := parseLines(t,
		`DESCRIPTION "orphan"`,
		`ADD SEQUENCE "s"`,
		`DESCRIPTION "after sequence"`,
	)

	assert.Empty(t, s.TableNames())
	assert.Empty(t, s.Descriptions())
}

func TestParser_ImplicitTable(t *testing.T) {
	s := parseLines(t,
		`ADD FIELD "f" OF "Ghost" AS logical`,
	)

	assert.Equal(t, []string{"Ghost"}, s.TableNames())
	d, ok := s.Description("Ghost")
	require.True(t, ok)
	assert.Equal(t, "", d)

	tbl, ok := s.Table("Ghost")
	require.True(t, ok)
	assert.True(t, tbl.Implicit)
}

func TestParser_LabelWithoutFieldIsIgnored(t *testing.T) {
	s := parseLines(t,
		`COLUMN-LABEL "nobody"`,
		`HELP "nobody"`,
		`ADD TABLE "T"`,
		`COLUMN-LABEL "still nobody"`,
		`ADD FIELD "f" OF "T" AS integer`,
	)

	require.Len(t, s.Fields("T"), 1)
	assert.Equal(t, "", s.Fields("T")[0].ColumnLabel)
	assert.Equal(t, "", s.Fields("T")[0].Help)
}

func TestParser_NewTableResetsLastField(t *testing.T) {
	s := parseLines(t,
		`ADD TABLE "A"`,
		`ADD FIELD "a1" OF "A" AS integer`,
		`ADD TABLE "B"`,
		`HELP "belongs to nobody"`,
	)

	assert.Equal(t, "", s.Fields("A")[0].Help)
	assert.Empty(t, s.Fields("B"))
}

func TestParser_SequenceResetsLastField(t *testing.T) {
	s := parseLines(t,
		`ADD FIELD "a1" OF "A" AS integer`,
		`ADD SEQUENCE "s"`,
		`COLUMN-LABEL "lost"`,
	)

	assert.Equal(t, "", s.Fields("A")[0].ColumnLabel)
}

func TestParser_LabelAfterIndexStillTargetsLastField(t *testing.T) {
	s := parseLines(t,
		`ADD TABLE "A"`,
		`ADD FIELD "a1" OF "A" AS integer`,
		`ADD INDEX "i" ON "A"`,
		`HELP "kept"`,
	)

	assert.Equal(t, "kept", s.Fields("A")[0].Help)
}

func TestParser_FieldForOtherTable(t *testing.T) {
	s := parseLines(t,
		`ADD TABLE "A"`,
		`ADD FIELD "b1" OF "B" AS integer`,
		`COLUMN-LABEL "B one"`,
		`ADD FIELD "a1" OF "A" AS character`,
		`ADD FIELD "b2" OF "B" AS decimal`,
		`HELP "B two"`,
	)

	assert.Equal(t, []string{"A", "B"}, s.TableNames())
	assert.Equal(t, []Field{{Name: "a1", Type: "character"}}, s.Fields("A"))
	assert.Equal(t, []Field{
		{Name: "b1", Type: "integer", ColumnLabel: "B one"},
		{Name: "b2", Type: "decimal", Help: "B two"},
	}, s.Fields("B"))
}

func TestParser_RedeclaredTableKeepsFields(t *testing.T) {
	s := parseLines(t,
		`ADD TABLE "A"`,
		`ADD FIELD "a1" OF "A" AS integer`,
		`ADD TABLE "A"`,
		`DESCRIPTION "second time"`,
	)

	assert.Equal(t, []string{"A"}, s.TableNames())
	assert.Len(t, s.Fields("A"), 1)
	d, _ := s.Description("A")
	assert.Equal(t, "second time", d)
}

func TestParser_NewTableAbandonsPendingDescription(t *testing.T) {
	s := parseLines(t,
		`ADD TABLE "A"`,
		`DESCRIPTION "never closed`,
		`ADD TABLE "B"`,
		`ADD FIELD "b" OF "B" AS integer`,
	)

	a, _ := s.Description("A")
	assert.Equal(t, "", a)
	assert.Len(t, s.Fields("B"), 1)
}

func TestParser_SequenceKeepsPendingDescriptionOpen(t *testing.T) {
	s := parseLines(t,
		`ADD TABLE "A"`,
		`DESCRIPTION "open`,
		`ADD SEQUENCE "s"`,
		`ADD FIELD "f" OF "A" AS integer`,
		`"`,
		`ADD TABLE "B"`,
	)

	assert.Equal(t, []string{"s"}, s.Sequences)
	assert.Empty(t, s.Fields("A"))
	a, _ := s.Description("A")
	assert.Equal(t, "", a)
	assert.Equal(t, []string{"A", "B"}, s.TableNames())
	_, ok := s.Description("")
	assert.False(t, ok)
}

func TestSchema_TableLookup(t *testing.T) {
	s := parseLines(t, `ADD TABLE "A"`)

	_, ok := s.Table("A")
	assert.True(t, ok)
	_, ok = s.Table("missing")
	assert.False(t, ok)
	assert.False(t, s.HasTable("missing"))
}

func TestParser_TypeTokenStopsAtNonWord(t *testing.T) {
	s := parseLines(t,
		`ADD FIELD "ts" OF "T" AS datetime-tz`,
		`ADD FIELD "broken" OF "T" AS`,
	)

	require.Len(t, s.Fields("T"), 1)
	assert.Equal(t, "datetime", s.Fields("T")[0].Type)
}

func TestParser_SequencesKeepOrderAndDuplicates(t *testing.T) {
	s := parseLines(t,
		`ADD SEQUENCE "b"`,
		`  ADD SEQUENCE "a"`,
		`ADD SEQUENCE "b"`,
		`ADD SEQUENCE ""`,
	)

	assert.Equal(t, []string{"b", "a", "b"}, s.Sequences)
}

func TestParser_GarbageNeverFails(t *testing.T) {
	s := parseLines(t,
		``,
		`"`,
		`ADD`,
		`add table "lowercase"`,
		`ADD TABLE unquoted`,
		`ADD FIELD "x" OF "T"`,
		`HELP "no field"`,
		`.`,
		`PSC`,
	)

	assert.Empty(t, s.Sequences)
	assert.Empty(t, s.TableNames())
}

func TestParser_EveryTableHasDescription(t *testing.T) {
	s := parseLines(t,
		`ADD TABLE "A"`,
		`DESCRIPTION "a"`,
		`ADD TABLE "B"`,
		`ADD FIELD "c" OF "C" AS integer`,
		`ADD INDEX "i" ON "D"`,
	)

	descs := s.Descriptions()
	for name := range s.FieldsByTable() {
		_, ok := descs[name]
		assert.True(t, ok, "table %s has no description entry", name)
	}
	// ADD INDEX never creates a table
	assert.False(t, s.HasTable("D"))
}

func TestParser_LogsSkippedLinesAtDebug(t *testing.T) {
	var buf bytes.Buffer
	p := NewParser(logger.New(logger.LevelDebug, &buf))
	p.Feed(`ADD TABLE "T"`)
	p.Feed(`  DUMP-NAME "t"`)
	p.Finish()

	assert.Contains(t, buf.String(), "skipped line")
	assert.Contains(t, buf.String(), "line=2")
	assert.NotContains(t, buf.String(), "line=1")
}

func TestParser_FinishIsRepeatable(t *testing.T) {
	p := NewParser(nil)
	p.Feed(`ADD TABLE "A"`)
	first := p.Finish()
	p.Feed(`ADD FIELD "b" OF "B" AS integer`)
	second := p.Finish()

	assert.Same(t, first, second)
	_, ok := second.Description("B")
	assert.True(t, ok)
}

func TestSchema_Stats(t *testing.T) {
	s := parseLines(t, strings.Split(`ADD SEQUENCE "s"
ADD TABLE "A"
ADD FIELD "a1" OF "A" AS integer
ADD FIELD "a2" OF "A" AS integer
ADD FIELD "b1" OF "B" AS integer`, "\n")...)

	assert.Equal(t, Stats{Sequences: 1, Tables: 2, Fields: 3}, s.Stats())
}
