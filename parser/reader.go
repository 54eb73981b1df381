package parser

// eof is the end-of-input sentinel returned by Reader.Peek and
// Reader.Next once the source and all reinjected text are exhausted.
const eof rune = -1

// Reader is a peekable character stream with push-front insertion.
//
// Insertion is the mechanism that makes recursive macro expansion
// possible: expansion results are pushed onto the front of the pending
// stream and rescanned before any of the original remaining input.
// Nested insertions compose LIFO at the insertion boundary, so an
// expansion produced while scanning a previous expansion is read
// first, without a parallel call stack per recursion level.
type Reader struct {
	pending []rune // reinjected text, consumed before src
	src     []rune
	pos     int
	line    int
	column  int
}

// NewReader creates a reader over the given source text.
func NewReader(source string) *Reader {
	return &Reader{
		src:    []rune(source),
		line:   1,
		column: 1,
	}
}

// Peek returns the next character without consuming it, or eof.
func (r *Reader) Peek() rune {
	if len(r.pending) > 0 {
		return r.pending[0]
	}
	if r.pos < len(r.src) {
		return r.src[r.pos]
	}
	return eof
}

// Next consumes and returns the next character, or eof.
// Line/column tracking advances only for characters drawn from the
// original source; reinjected characters report the position at which
// they were inserted.
func (r *Reader) Next() rune {
	if len(r.pending) > 0 {
		ch := r.pending[0]
		r.pending = r.pending[1:]
		return ch
	}
	if r.pos >= len(r.src) {
		return eof
	}
	ch := r.src[r.pos]
	r.pos++
	if ch == '\n' {
		r.line++
		r.column = 1
	} else {
		r.column++
	}
	return ch
}

// Insert pushes text onto the front of the pending stream, ahead of
// anything previously inserted or yet to come from the source.
func (r *Reader) Insert(text string) {
	if text == "" {
		return
	}
	runes := []rune(text)
	if len(r.pending) == 0 {
		r.pending = runes
		return
	}
	r.pending = append(runes, r.pending...)
}

// Line returns the current line in the original source (1-indexed).
func (r *Reader) Line() int { return r.line }

// Column returns the current column in the original source (1-indexed).
func (r *Reader) Column() int { return r.column }
