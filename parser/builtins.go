package parser

import (
	"strconv"
	"strings"
)

// invoke dispatches a macro invocation and returns its replacement
// text. An empty result means nothing is reinserted; builtins that
// only have side effects (define, dnl, changequote, divert) always
// return empty.
func (p *Parser) invoke(name string, m macro, args []string) (string, error) {
	switch m.builtin {
	case builtinDefine:
		p.define(args)
		return "", nil
	case builtinDnl:
		p.lexer.DiscardLine()
		return "", nil
	case builtinChangequote:
		p.changequote(args)
		return "", nil
	case builtinDivert:
		p.divert(args)
		return "", nil
	case builtinIfelse:
		return ifelse(args), nil
	case builtinIfdef:
		return p.ifdef(args)
	default:
		return substitute(name, m.body, args), nil
	}
}

// define registers or overwrites a user macro. With no arguments it is
// a no-op; with one argument the body is empty.
func (p *Parser) define(args []string) {
	if len(args) == 0 {
		return
	}
	body := ""
	if len(args) >= 2 {
		body = args[1]
	}
	p.macros[args[0]] = macro{body: body}
}

// changequote replaces both quote delimiters from this point forward.
// Missing or empty arguments restore the default for that side.
func (p *Parser) changequote(args []string) {
	var start, end string
	if len(args) >= 1 {
		start = args[0]
	}
	if len(args) >= 2 {
		end = args[1]
	}
	p.lexer.SetQuotes(start, end)
}

// divert selects the current diversion. A non-numeric argument is
// silently ignored, leaving the current diversion unchanged.
func (p *Parser) divert(args []string) {
	if len(args) == 0 {
		p.out.Divert(0)
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return
	}
	p.out.Divert(n)
}

// ifelse compares argument pairs for exact string equality in
// left-to-right triples (string1, string2, result) and returns the
// first matching triple's result. A single argument trailing the last
// complete triple is that triple's not-equal fallback. With no match
// and no fallback it returns nothing.
func ifelse(args []string) string {
	i := 0
	for i+2 < len(args) {
		if args[i] == args[i+1] {
			return args[i+2]
		}
		if len(args)-i == 4 {
			return args[i+3]
		}
		i += 3
	}
	return ""
}

// ifdef returns its second argument if the named macro is currently
// defined (builtin or user, including ifdef itself) and that argument
// is non-empty, the third argument if the name is undefined and a
// non-empty third argument was given, and nothing otherwise. Any
// argument count outside 2..3 is fatal.
func (p *Parser) ifdef(args []string) (string, error) {
	if len(args) < 2 || len(args) > 3 {
		return "", errorf(p.lexer.Position(), "ifdef: expected 2 or 3 arguments, got %d", len(args))
	}
	if _, defined := p.macros[args[0]]; defined {
		if args[1] != "" {
			return args[1], nil
		}
		return "", nil
	}
	if len(args) == 3 && args[2] != "" {
		return args[2], nil
	}
	return "", nil
}

// substitute expands a user-defined macro body. A '$' followed by a
// run of digits is a positional placeholder: $0 is the invocation
// name, $N (1-indexed) is the Nth supplied argument. A reference past
// the supplied arguments is left literally in place rather than
// treated as an error.
func substitute(name, body string, args []string) string {
	if !strings.ContainsRune(body, '$') {
		return body
	}

	var out strings.Builder
	out.Grow(len(body))
	rs := []rune(body)
	for i := 0; i < len(rs); {
		if rs[i] != '$' || i+1 >= len(rs) || !isPlaceholderDigit(rs[i+1]) {
			out.WriteRune(rs[i])
			i++
			continue
		}
		j := i + 1
		for j < len(rs) && isPlaceholderDigit(rs[j]) {
			j++
		}
		n, err := strconv.Atoi(string(rs[i+1 : j]))
		switch {
		case err != nil:
			// Digit run too long to parse; keep it literal.
			out.WriteString(string(rs[i:j]))
		case n == 0:
			out.WriteString(name)
		case n <= len(args):
			out.WriteString(args[n-1])
		default:
			out.WriteString(string(rs[i:j]))
		}
		i = j
	}
	return out.String()
}

func isPlaceholderDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
