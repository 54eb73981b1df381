package parser

// Lexer implements a character-level scanner for macro input.
//
// Unlike a fixed-grammar lexer this one is stateful for the whole run:
// the quote delimiters are reconfigurable mid-stream (changequote),
// and macro expansions are pushed back onto the underlying Reader to
// be rescanned. Tokens are therefore pulled one at a time rather than
// scanned in a single batch, and the scanner never looks further ahead
// than the token it is producing.

import (
	"unicode"

	"github.com/alecthomas/participle/v2/lexer"
)

// Default quote delimiters, restored by changequote with no arguments.
const (
	DefaultStartQuote = "`"
	DefaultEndQuote   = "'"
)

// Lexer tokenizes macro source text.
type Lexer struct {
	reader     *Reader
	filename   string // Filename for error reporting
	startQuote []rune
	endQuote   []rune
	buf        []rune // Accumulation buffer, reused across tokens
	interner   *Interner
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source, filename string) *Lexer {
	// Macro input repeats a small vocabulary; a modest pool covers
	// the macro names plus the common single-character tokens.
	internerCap := len(source) / 40
	if internerCap < 256 {
		internerCap = 256
	}

	return &Lexer{
		reader:     NewReader(source),
		filename:   filename,
		startQuote: []rune(DefaultStartQuote),
		endQuote:   []rune(DefaultEndQuote),
		interner:   NewInterner(internerCap),
	}
}

// Interner returns the string interner, useful for the expander.
func (l *Lexer) Interner() *Interner {
	return l.interner
}

// SetQuotes reconfigures the quote delimiters from this point forward.
// An empty delimiter falls back to the default for that side, so
// SetQuotes("", "") restores backtick/apostrophe.
func (l *Lexer) SetQuotes(start, end string) {
	if start == "" {
		start = DefaultStartQuote
	}
	if end == "" {
		end = DefaultEndQuote
	}
	l.startQuote = []rune(start)
	l.endQuote = []rune(end)
}

// Quotes returns the current start and end quote delimiters.
func (l *Lexer) Quotes() (start, end string) {
	return string(l.startQuote), string(l.endQuote)
}

// PeekChar returns the next raw, not-yet-tokenized character without
// consuming it. The expander uses this to test for an argument list
// immediately following a macro name.
func (l *Lexer) PeekChar() rune {
	return l.reader.Peek()
}

// NextChar consumes and returns the next raw character.
func (l *Lexer) NextChar() rune {
	return l.reader.Next()
}

// Insert pushes text onto the front of the pending input so it is
// rescanned before anything else.
func (l *Lexer) Insert(text string) {
	l.reader.Insert(text)
}

// DiscardLine consumes raw characters through and including the next
// newline, bypassing tokenization entirely. The discarded region is
// never rescanned, even if it straddles a quote or macro boundary.
func (l *Lexer) DiscardLine() {
	for {
		ch := l.reader.Next()
		if ch == '\n' || ch == eof {
			return
		}
	}
}

// Position returns the lexer's current position in the original source.
func (l *Lexer) Position() lexer.Position {
	return lexer.Position{
		Filename: l.filename,
		Line:     l.reader.Line(),
		Column:   l.reader.Column(),
	}
}

// Next scans and returns the next token. At end of input it returns an
// EOF token; an unterminated quoted string is a fatal ParseError.
func (l *Lexer) Next() (Token, error) {
	line, col := l.reader.Line(), l.reader.Column()

	ch := l.reader.Peek()
	if ch == eof {
		return Token{Type: EOF, Line: line, Column: col}, nil
	}

	// Quote detection runs before everything else, so delimiters set
	// by changequote win over identifier and comment rules.
	if ch == l.startQuote[0] {
		if l.scanQuoteStart() {
			return l.scanString(line, col)
		}
		// Partial match was pushed back; fall through and scan the
		// first character by the ordinary rules.
	}

	switch {
	case isIdentStart(ch):
		return l.scanIdentifier(line, col), nil
	case ch == '#':
		return l.scanComment(line, col), nil
	default:
		l.reader.Next()
		return Token{
			Type:   CHAR,
			Value:  l.interner.Intern(string(ch)),
			Line:   line,
			Column: col,
		}, nil
	}
}

// scanQuoteStart attempts to consume the full start-quote sequence.
// On a partial match the consumed characters are reinserted and the
// caller scans them as ordinary input instead.
func (l *Lexer) scanQuoteStart() bool {
	matched := 0
	for matched < len(l.startQuote) && l.reader.Peek() == l.startQuote[matched] {
		l.reader.Next()
		matched++
	}
	if matched == len(l.startQuote) {
		return true
	}
	l.reader.Insert(string(l.startQuote[:matched]))
	return false
}

// scanString accumulates quoted text. The opening delimiter has
// already been consumed. When the delimiters differ, a nested start
// delimiter increments the nesting level so quoting composes; the
// token is emitted only when nesting returns to zero, with both
// delimiter sequences stripped.
func (l *Lexer) scanString(line, col int) (Token, error) {
	nesting := 1
	sameQuotes := string(l.startQuote) == string(l.endQuote)
	l.buf = l.buf[:0]

	for {
		ch := l.reader.Next()
		if ch == eof {
			pos := lexer.Position{Filename: l.filename, Line: line, Column: col}
			return Token{}, errorf(pos, "unterminated string")
		}
		l.buf = append(l.buf, ch)

		if hasSuffix(l.buf, l.endQuote) {
			nesting--
			if nesting == 0 {
				value := string(l.buf[:len(l.buf)-len(l.endQuote)])
				return Token{Type: STRING, Value: value, Line: line, Column: col}, nil
			}
			continue
		}
		if !sameQuotes && hasSuffix(l.buf, l.startQuote) {
			nesting++
		}
	}
}

// scanIdentifier accumulates an alphanumeric/underscore run. The
// terminating character is left unconsumed for the next scan.
func (l *Lexer) scanIdentifier(line, col int) Token {
	l.buf = append(l.buf[:0], l.reader.Next())
	for isIdentRune(l.reader.Peek()) {
		l.buf = append(l.buf, l.reader.Next())
	}
	return Token{
		Type:   IDENT,
		Value:  l.interner.InternRunes(l.buf),
		Line:   line,
		Column: col,
	}
}

// scanComment accumulates through but not including the next newline.
// The newline itself is left unconsumed.
func (l *Lexer) scanComment(line, col int) Token {
	l.buf = append(l.buf[:0], l.reader.Next())
	for {
		ch := l.reader.Peek()
		if ch == '\n' || ch == eof {
			break
		}
		l.buf = append(l.buf, l.reader.Next())
	}
	return Token{
		Type:   COMMENT,
		Value:  string(l.buf),
		Line:   line,
		Column: col,
	}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentRune(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

func hasSuffix(rs, suffix []rune) bool {
	if len(rs) < len(suffix) {
		return false
	}
	off := len(rs) - len(suffix)
	for i, r := range suffix {
		if rs[off+i] != r {
			return false
		}
	}
	return true
}
