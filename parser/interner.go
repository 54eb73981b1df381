package parser

// Interner implements string interning to reduce allocations.
//
// Macro-heavy input repeats the same small vocabulary over and over:
// macro names on every invocation, and single-character tokens for
// whitespace and punctuation on nearly every line. By maintaining a
// pool of canonical strings, the lexer reuses one string instance for
// all occurrences instead of allocating per token.
type Interner struct {
	pool map[string]string
}

// NewInterner creates a new string interner with the given initial capacity.
func NewInterner(capacity int) *Interner {
	return &Interner{
		pool: make(map[string]string, capacity),
	}
}

// Intern returns the canonical version of the string.
func (i *Interner) Intern(s string) string {
	if interned, ok := i.pool[s]; ok {
		return interned
	}
	i.pool[s] = s
	return s
}

// InternRunes converts a rune slice to a string and interns it.
// This is the common case when finishing a token from the scan buffer.
// The temporary string used for the map lookup is optimized away by
// the compiler in the hit path.
func (i *Interner) InternRunes(rs []rune) string {
	s := string(rs)
	if interned, ok := i.pool[s]; ok {
		return interned
	}
	i.pool[s] = s
	return s
}

// Size returns the number of unique strings in the intern pool.
// Useful for diagnostics and testing.
func (i *Interner) Size() int {
	return len(i.pool)
}

// Reset clears the intern pool.
func (i *Interner) Reset() {
	i.pool = make(map[string]string)
}
