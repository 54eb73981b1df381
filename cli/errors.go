package cli

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	source []byte
}

// NewErrorRenderer creates a renderer with source content for context.
func NewErrorRenderer(source []byte) *ErrorRenderer {
	return &ErrorRenderer{source: source}
}

// Render formats a single error with styling and context.
func (r *ErrorRenderer) Render(err error) string {
	if e, ok := err.(interface {
		GetPosition() lexer.Position
		Error() string
	}); ok && r.source != nil {
		return r.renderWithSourceContext(e.GetPosition(), e.Error())
	}

	return err.Error()
}

// renderWithSourceContext shows the error message followed by the
// source lines around the error position, with a caret pointing at the
// error column.
func (r *ErrorRenderer) renderWithSourceContext(pos lexer.Position, message string) string {
	var buf strings.Builder

	buf.WriteString(message)
	buf.WriteString("\n\n")

	sourceLines := strings.Split(string(r.source), "\n")

	// Show 2 lines before and 1 line after the error line.
	startLine := pos.Line - 3
	endLine := pos.Line + 1

	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(sourceLines) {
		endLine = len(sourceLines) - 1
	}

	for i := startLine; i <= endLine; i++ {
		if i >= len(sourceLines) {
			break
		}
		buf.WriteString("   ")
		buf.WriteString(errContextStyle.Render(sourceLines[i]))
		buf.WriteByte('\n')

		// Caret under the error column, wide-rune aware.
		if i == pos.Line-1 && pos.Column > 0 {
			buf.WriteString("   ")
			buf.WriteString(strings.Repeat(" ", caretOffset(sourceLines[i], pos.Column)))
			buf.WriteString(errCaretStyle.Render("^"))
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

// caretOffset returns the display width of the line content before the
// given 1-indexed rune column, so the caret lines up under wide runes.
func caretOffset(line string, column int) int {
	runes := []rune(line)
	if column-1 < len(runes) {
		runes = runes[:column-1]
	}
	return runewidth.StringWidth(string(runes))
}

// RenderAll formats multiple errors, separating them with blank lines.
func (r *ErrorRenderer) RenderAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf strings.Builder
	for i, err := range errs {
		buf.WriteString(r.Render(err))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}
