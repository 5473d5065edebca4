package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/simonhull/dfdoc/internal/schema"
)

// DefaultWidth is used when the terminal size is unknown.
const DefaultWidth = 80

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	implicitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
)

// TerminalWidth returns the column count of f, or DefaultWidth when f is
// not a terminal.
func TerminalWidth(f *os.File) int {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return DefaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

// Summary prints one line per table with its field count and description,
// cut to width. Implicit tables are marked with *.
func Summary(w io.Writer, s *schema.Schema, width int) {
	if width <= 0 {
		width = DefaultWidth
	}
	st := s.Stats()
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%d sequences, %d tables, %d fields", st.Sequences, st.Tables, st.Fields)))

	tables := s.Tables()
	nameWidth := 0
	for _, t := range tables {
		nameWidth = max(nameWidth, len([]rune(t.Name))+2)
	}

	for _, t := range tables {
		name := t.Name
		if t.Implicit {
			name += " " + implicitStyle.Render("*")
		}
		pad := nameWidth - len([]rune(t.Name))
		if t.Implicit {
			pad -= 2
		}
		line := fmt.Sprintf("  %s%s  %-9s", name, strings.Repeat(" ", pad), fieldCount(len(t.Fields)))

		desc := strings.Join(strings.Fields(t.Description), " ")
		if room := width - lipgloss.Width(line) - 2; desc != "" && room > 0 {
			line += "  " + Truncate(desc, room)
		}
		fmt.Fprintln(w, line)
	}
}

func fieldCount(n int) string {
	if n == 1 {
		return "1 field"
	}
	return fmt.Sprintf("%d fields", n)
}

// Truncate shortens s to at most n runes, marking a cut with "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
