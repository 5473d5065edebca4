package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

var (
	promptStyle = infoStyle.Bold(true)
	hintStyle   = stepStyle
)

// Prompter asks the user questions on a terminal. One Prompter must be used
// for a whole conversation since it buffers its input.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter reads answers from in and writes questions to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Prompt asks for text input. An empty answer, or no input at all, returns
// defaultValue.
//
// Example:
//
//	title := p.Prompt("Site title", "DF Overview")
//	// Displays: Site title (DF Overview): _
func (p *Prompter) Prompt(message, defaultValue string) string {
	if defaultValue != "" {
		fmt.Fprint(p.out, promptStyle.Render(message)+" "+
			hintStyle.Render(fmt.Sprintf("(%s)", defaultValue))+": ")
	} else {
		fmt.Fprint(p.out, promptStyle.Render(message)+": ")
	}

	answer, err := p.in.ReadString('\n')
	answer = strings.TrimSpace(answer)
	if answer == "" || (err != nil && err != io.EOF) {
		return defaultValue
	}
	return answer
}

// Confirm asks a yes/no question. Only y or yes (any case) count as yes.
// An empty answer returns defaultYes.
func (p *Prompter) Confirm(message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprint(p.out, promptStyle.Render(message)+" "+hintStyle.Render(hint)+": ")

	answer, err := p.in.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "" || (err != nil && err != io.EOF) {
		return defaultYes
	}
	return answer == "y" || answer == "yes"
}
