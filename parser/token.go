package parser

// TokenType represents the type of token scanned from the input.
type TokenType uint8

const (
	// Special tokens
	EOF TokenType = iota

	// CHAR is a single passthrough character: punctuation, whitespace,
	// digits, anything the scanner has no further interest in.
	CHAR

	// IDENT is a run of alphanumeric/underscore characters starting
	// with a letter or underscore. Identifiers are eligible for macro
	// dispatch.
	IDENT

	// STRING is quoted text with the quote delimiters stripped.
	// Quoted content is never expanded.
	STRING

	// COMMENT is a '#' through (but not including) the next newline.
	COMMENT
)

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	CHAR:    "CHAR",
	IDENT:   "IDENT",
	STRING:  "STRING",
	COMMENT: "COMMENT",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token represents a lexical token. Unlike a fixed-buffer scanner we
// cannot store byte offsets, because token text may originate from
// reinjected macro expansions that never existed in the source, so the
// value is materialized eagerly.
type Token struct {
	Type   TokenType
	Value  string
	Line   int // Line in the original source (1-indexed)
	Column int // Column in the original source (1-indexed)
}

// Equal reports whether two tokens have the same type and value.
// Positions are ignored; a token produced by reinjection compares
// equal to the same token scanned from the source.
func (t Token) Equal(other Token) bool {
	return t.Type == other.Type && t.Value == other.Value
}

// Len returns the length of the token value in bytes.
func (t Token) Len() int {
	return len(t.Value)
}
