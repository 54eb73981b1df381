// Package parser implements the macro processor: a stateful
// character-level lexer with runtime-reconfigurable quoting, and an
// expansion engine that recursively reinjects macro output back into
// the scanning pipeline.
package parser

import (
	"context"
	"io"
	"strings"

	"github.com/robinvdvleuten/m4/telemetry"
)

// tokenStream is a thin peekable wrapper over the Lexer's output. It
// also forwards the raw-character peek used for argument list
// detection; that peek is only meaningful while no token is buffered,
// which holds everywhere the expander uses it.
type tokenStream struct {
	lexer  *Lexer
	peeked *Token
}

func newTokenStream(l *Lexer) *tokenStream {
	return &tokenStream{lexer: l}
}

// Peek returns the next token without consuming it.
func (s *tokenStream) Peek() (Token, error) {
	if s.peeked == nil {
		tok, err := s.lexer.Next()
		if err != nil {
			return Token{}, err
		}
		s.peeked = &tok
	}
	return *s.peeked, nil
}

// Next consumes and returns the next token.
func (s *tokenStream) Next() (Token, error) {
	if s.peeked != nil {
		tok := *s.peeked
		s.peeked = nil
		return tok, nil
	}
	return s.lexer.Next()
}

// PeekChar returns the next raw, not-yet-tokenized character.
func (s *tokenStream) PeekChar() rune {
	return s.lexer.PeekChar()
}

// builtinKind identifies a natively implemented macro.
type builtinKind uint8

const (
	userDefined builtinKind = iota
	builtinDefine
	builtinDnl
	builtinChangequote
	builtinDivert
	builtinIfelse
	builtinIfdef
)

// macro is a table entry: either a builtin or a user-defined body
// template registered by define. Redefinition overwrites; entries are
// never removed for the duration of a run.
type macro struct {
	builtin builtinKind
	body    string
}

// requiresArgs reports whether the macro is recognized only when an
// argument list follows. Builtins whose first argument is mandatory
// pass through as plain text when invoked bare, so their names can be
// used as data, e.g. ifdef(define,yes).
func (m macro) requiresArgs() bool {
	switch m.builtin {
	case builtinDefine, builtinIfelse, builtinIfdef:
		return true
	}
	return false
}

// Parser expands macro input into text. All mutable state for one run
// belongs to the Parser instance — lexer state and quote delimiters,
// the macro table, diversion buffers and the current diversion — so
// independent parses never share state. A Parser is single-use.
type Parser struct {
	lexer  *Lexer
	tokens *tokenStream
	macros map[string]macro
	out    *diversions
}

// New creates a parser for the given source. The filename is used for
// error reporting only.
func New(source, filename string) *Parser {
	l := NewLexer(source, filename)
	return &Parser{
		lexer:  l,
		tokens: newTokenStream(l),
		macros: map[string]macro{
			"define":      {builtin: builtinDefine},
			"dnl":         {builtin: builtinDnl},
			"changequote": {builtin: builtinChangequote},
			"divert":      {builtin: builtinDivert},
			"ifelse":      {builtin: builtinIfelse},
			"ifdef":       {builtin: builtinIfdef},
		},
	}
}

// Run consumes the entire input, writing expanded output to w with
// diversion-0 content streamed as it is produced, followed by the
// ascending-order flush of diversions >= 1. A structural failure
// aborts the run; whatever was already streamed stays written.
func (p *Parser) Run(ctx context.Context, w io.Writer) error {
	p.out = newDiversions(w)

	expandTimer := telemetry.StartTimer(ctx, "parser.expand")
	for {
		tok, err := p.next()
		if err != nil {
			expandTimer.End()
			return err
		}
		if tok.Type == EOF {
			break
		}
		if err := p.out.Write(tok.Value); err != nil {
			expandTimer.End()
			return err
		}
	}
	expandTimer.End()

	flushTimer := telemetry.StartTimer(ctx, "parser.flush")
	err := p.out.Flush()
	flushTimer.End()
	return err
}

// next returns the next fully expanded token. Identifiers naming a
// table entry are invoked — with an argument list when a '(' follows
// immediately — and their replacement text is reinserted at the front
// of the input for rescanning, so expansions can themselves contain
// further invocations, quoting, or comments, with no fixed recursion
// depth limit.
func (p *Parser) next() (Token, error) {
	for {
		tok, err := p.tokens.Next()
		if err != nil || tok.Type != IDENT {
			return tok, err
		}
		entry, ok := p.macros[tok.Value]
		if !ok {
			return tok, nil
		}
		if entry.requiresArgs() && p.tokens.PeekChar() != '(' {
			return tok, nil
		}

		args, err := p.parseArgs()
		if err != nil {
			return Token{}, err
		}
		result, err := p.invoke(tok.Value, entry, args)
		if err != nil {
			return Token{}, err
		}
		if result != "" {
			p.lexer.Insert(result)
		}
	}
}

// parseArgs parses a parenthesized argument list if one immediately
// follows the macro name. Returns nil when the next raw character is
// not '(' (a zero-argument invocation). Arguments are macro-expanded
// as they are scanned, split on top-level commas, and terminated at
// the matching top-level ')'. Parenthesis depth counts CHAR tokens
// only, so quoted parentheses are inert. Each argument is left-trimmed
// of leading whitespace characters but never right-trimmed.
func (p *Parser) parseArgs() ([]string, error) {
	if p.tokens.PeekChar() != '(' {
		return nil, nil
	}
	start := p.lexer.Position()
	p.lexer.NextChar() // consume '('

	var args []string
	var cur strings.Builder
	depth := 1
	leading := true

	push := func() {
		args = append(args, cur.String())
		cur.Reset()
		leading = true
	}

	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return nil, errorf(start, "unexpected end of input in argument list")
		}

		if tok.Type == CHAR {
			switch tok.Value {
			case "(":
				depth++
			case ")":
				depth--
				if depth == 0 {
					push()
					return args, nil
				}
			case ",":
				if depth == 1 {
					push()
					continue
				}
			}
		}

		if leading && tok.Type == CHAR && strings.TrimSpace(tok.Value) == "" {
			continue
		}
		leading = false
		cur.WriteString(tok.Value)
	}
}

// Macros returns the names currently defined in the macro table.
// Useful for diagnostics.
func (p *Parser) Macros() []string {
	names := make([]string, 0, len(p.macros))
	for name := range p.macros {
		names = append(names, name)
	}
	return names
}
