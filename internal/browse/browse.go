// Package browse is an interactive terminal viewer for a parsed schema.
package browse

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/simonhull/dfdoc/internal/schema"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("white")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	implicitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
)

const (
	headerHeight = 2
	footerHeight = 2
)

// Model is the bubbletea model: a table list, and a scrollable detail view
// of the selected table.
type Model struct {
	tables    []schema.Table
	sequences []string

	cursor   int
	offset   int
	detail   bool
	viewport viewport.Model
	width    int
	height   int
}

// New builds the model for s.
func New(s *schema.Schema) Model {
	return Model{
		tables:    s.Tables(),
		sequences: s.Sequences,
		viewport:  viewport.New(76, 20),
		width:     80,
		height:    24,
	}
}

// Run shows the browser until the user quits or ctx is done.
func Run(ctx context.Context, s *schema.Schema, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(s), opts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}

// Selected returns the table under the cursor.
func (m Model) Selected() (schema.Table, bool) {
	if len(m.tables) == 0 {
		return schema.Table{}, false
	}
	return m.tables[m.cursor], true
}

// InDetail reports whether the detail view is open.
func (m Model) InDetail() bool { return m.detail }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = max(1, msg.Width-4)
		m.viewport.Height = max(1, msg.Height-headerHeight-footerHeight)
		if m.detail {
			m.viewport.SetContent(m.detailContent())
		}
		m.clampOffset()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
		if m.detail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg), nil
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tables)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(0, len(m.tables)-1)
	case "enter":
		if len(m.tables) > 0 {
			m.detail = true
			m.viewport.SetContent(m.detailContent())
			m.viewport.GotoTop()
		}
	}
	m.clampOffset()
	return m
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.detail = false
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// clampOffset keeps the cursor inside the visible window of the list.
func (m *Model) clampOffset() {
	rows := m.listRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

func (m Model) listRows() int {
	return max(1, m.height-headerHeight-footerHeight)
}

func (m Model) View() string {
	if m.detail {
		t := m.tables[m.cursor]
		var b strings.Builder
		b.WriteString(titleStyle.Render("Table: "+t.Name) + "\n\n")
		b.WriteString(m.viewport.View() + "\n")
		b.WriteString(mutedStyle.Render("[↑/↓] Scroll    [Esc] Back    [q] Quit"))
		return b.String()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%d tables, %d sequences", len(m.tables), len(m.sequences))) + "\n\n")
	if len(m.tables) == 0 {
		b.WriteString(mutedStyle.Render("  (no tables)") + "\n")
	}
	end := min(len(m.tables), m.offset+m.listRows())
	for i := m.offset; i < end; i++ {
		t := m.tables[i]
		line := fmt.Sprintf("%s (%d)", t.Name, len(t.Fields))
		if t.Implicit {
			line += " " + implicitStyle.Render("implicit")
		}
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n" + mutedStyle.Render("[↑/↓] Navigate    [Enter] Open    [q] Quit"))
	return b.String()
}

// detailContent renders the description and the field grid of the
// selected table.
func (m Model) detailContent() string {
	t := m.tables[m.cursor]
	var b strings.Builder
	if t.Description != "" {
		b.WriteString(lipgloss.NewStyle().Width(m.viewport.Width).Render(t.Description) + "\n\n")
	}
	if len(t.Fields) == 0 {
		b.WriteString(mutedStyle.Render("no fields"))
		return b.String()
	}

	headers := []string{"Field", "Type", "Label", "Help"}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, f := range t.Fields {
		for i, v := range fieldColumns(f) {
			widths[i] = max(widths[i], lipgloss.Width(v))
		}
	}

	row := func(cols []string) string {
		parts := make([]string, len(cols))
		for i, c := range cols {
			parts[i] = c + strings.Repeat(" ", widths[i]-lipgloss.Width(c))
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}
	b.WriteString(titleStyle.Render(row(headers)) + "\n")
	for _, f := range t.Fields {
		b.WriteString(row(fieldColumns(f)) + "\n")
	}
	return b.String()
}

func fieldColumns(f schema.Field) []string {
	return []string{f.Name, f.Type, f.ColumnLabel, f.Help}
}
