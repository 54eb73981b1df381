package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/robinvdvleuten/m4/parser"
)

func TestErrorRenderer_RenderParseErrorWithSourceContext(t *testing.T) {
	sourceContent := "define(greet, `hello $1')\n" +
		"greet(world)\n" +
		"`this quote never closes\n" +
		"more text"

	parseErr := &parser.ParseError{
		Pos: lexer.Position{
			Filename: "test.m4",
			Line:     3,
			Column:   1,
		},
		Message: "unterminated string",
	}

	renderer := NewErrorRenderer([]byte(sourceContent))
	output := renderer.Render(parseErr)

	// Verify the output contains the error message
	assert.Contains(t, output, "unterminated string")

	// Verify the output contains the filename and position
	assert.Contains(t, output, "test.m4:3")

	// Verify the output contains the offending source line
	assert.Contains(t, output, "this quote never closes")

	// Verify the caret is present
	assert.Contains(t, output, "^")

	// Verify the source lines are indented with 3 spaces
	lines := strings.Split(output, "\n")
	foundIndentedLine := false
	for _, line := range lines {
		if strings.HasPrefix(line, "   ") && strings.Contains(line, "this quote never closes") {
			foundIndentedLine = true
			break
		}
	}
	assert.True(t, foundIndentedLine, "Expected indented source lines")
}

func TestErrorRenderer_RenderWithoutSource(t *testing.T) {
	parseErr := &parser.ParseError{
		Pos: lexer.Position{
			Filename: "test.m4",
			Line:     3,
			Column:   1,
		},
		Message: "unterminated string",
	}

	// Without source content the renderer falls back to the error's
	// own formatting.
	renderer := NewErrorRenderer(nil)
	output := renderer.Render(parseErr)

	assert.Equal(t, parseErr.Error(), output)
}

func TestErrorRenderer_RenderPlainError(t *testing.T) {
	renderer := NewErrorRenderer([]byte("some source"))
	output := renderer.Render(errors.New("plain failure"))

	assert.Equal(t, "plain failure", output)
}

func TestErrorRenderer_CaretPosition(t *testing.T) {
	sourceContent := "abc `def"

	pos := lexer.Position{Filename: "test.m4", Line: 1, Column: 5}

	renderer := NewErrorRenderer([]byte(sourceContent))
	output := renderer.renderWithSourceContext(pos, "unterminated string")

	lines := strings.Split(output, "\n")
	var caretLine string
	for _, line := range lines {
		if strings.Contains(line, "^") {
			caretLine = line
			break
		}
	}
	assert.NotZero(t, caretLine, "Expected a caret line")

	// 3-space indent plus 4 columns of preceding content.
	assert.True(t, strings.Contains(caretLine, "       ^") || strings.HasSuffix(stripANSI(caretLine), "    ^"),
		"caret should sit under column 5, got: %q", caretLine)
}

func TestErrorRenderer_BoundsChecking(t *testing.T) {
	sourceContent := "`oops"

	// Error on the first and only line; the 2-before/1-after window
	// must clamp to the file.
	pos := lexer.Position{Filename: "test.m4", Line: 1, Column: 1}

	renderer := NewErrorRenderer([]byte(sourceContent))
	output := renderer.renderWithSourceContext(pos, "unterminated string")

	assert.Contains(t, output, "`oops")
	assert.Contains(t, output, "^")
}

func TestErrorRenderer_RenderAll(t *testing.T) {
	renderer := NewErrorRenderer(nil)

	assert.Equal(t, "", renderer.RenderAll(nil))

	errs := []error{errors.New("first"), errors.New("second")}
	output := renderer.RenderAll(errs)

	assert.Contains(t, output, "first")
	assert.Contains(t, output, "second")
	assert.Contains(t, output, "\n\n")
}

// stripANSI removes terminal escape sequences so layout assertions see
// only visible characters.
func stripANSI(s string) string {
	var buf strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
