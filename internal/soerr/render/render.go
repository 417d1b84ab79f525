// Package render layers lipgloss box-and-color styling on top of
// soerr.Error's plain two-line gutter-and-caret rendering, for terminal
// hosts (the CLI) that want a boxed diagnostic instead of the bare ANSI
// used by Error.Format(true).
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/eddndev/achronyme-go/internal/soerr"
)

var (
	tagStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203"))

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	gutterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	caretStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203"))

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")).
			Italic(true)
)

// Pretty renders a *soerr.Error as a bordered, colorized diagnostic box for
// an interactive terminal. Non-interactive hosts (pipes, log files) should
// use Error.Format(false) instead.
func Pretty(err *soerr.Error) string {
	var body strings.Builder

	header := tagStyle.Render(fmt.Sprintf("[%s]", err.Kind))
	if err.HasPos {
		loc := fmt.Sprintf("%d:%d", err.Pos.Line, err.Pos.Column)
		if err.File != "" {
			loc = err.File + ":" + loc
		}
		header += " " + gutterStyle.Render(loc)
	}
	body.WriteString(header)
	body.WriteString("\n")
	body.WriteString(err.Message)

	if err.HasPos {
		if line := sourceLine(err.Source, err.Pos.Line); line != "" {
			gutter := fmt.Sprintf("%4d │ ", err.Pos.Line)
			body.WriteString("\n")
			body.WriteString(gutterStyle.Render(gutter))
			body.WriteString(line)
			pad := strings.Repeat(" ", lipgloss.Width(gutter)+max0(err.Pos.Column-1))
			body.WriteString("\n")
			body.WriteString(pad)
			body.WriteString(caretStyle.Render("^"))
		}
	}

	if err.Suggestion != "" {
		body.WriteString("\n")
		body.WriteString(suggestionStyle.Render("did you mean: " + err.Suggestion + "?"))
	}

	return frameStyle.Render(body.String())
}

func sourceLine(source string, line int) string {
	if line <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
